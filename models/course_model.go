package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Code        string    `gorm:"size:20;not null;unique" json:"code"`
	Description *string   `gorm:"type:text" json:"description"`

	// Default TotalFee for new enrollments; an enrollment may override it.
	Fee           float64 `gorm:"type:numeric(10,2);not null;default:0.00" json:"fee"`
	DurationWeeks int     `gorm:"not null;default:0" json:"duration_weeks"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
