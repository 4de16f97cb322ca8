package models

import (
	"time"

	"github.com/google/uuid"
)

type Trainer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null;unique" json:"user_id"`

	Specialization string  `gorm:"size:255" json:"specialization"`
	Bio            *string `gorm:"type:text" json:"bio"`
	Status         string  `gorm:"size:20;not null;default:'active'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
