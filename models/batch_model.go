package models

import (
	"time"

	"github.com/google/uuid"
)

type Batch struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`

	CourseID  uuid.UUID  `gorm:"not null" json:"course_id"`
	TrainerID *uuid.UUID `json:"trainer_id"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Schedule  *string   `gorm:"size:255" json:"schedule"`

	MaxStudents     int    `gorm:"not null;default:30" json:"max_students"`
	CurrentStudents int    `gorm:"not null;default:0" json:"current_students"`
	Status          string `gorm:"size:20;not null;default:'upcoming'" json:"status"`

	Course  Course   `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	Trainer *Trainer `gorm:"foreignkey:TrainerID" json:"trainer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressPercent reports how far through its scheduled run the batch is,
// clamped to [0, 100]. Any batch past its end date reads as 100, including
// one with a degenerate single-day schedule.
func (b *Batch) ProgressPercent(now time.Time) float64 {
	if !now.Before(b.EndDate) {
		return 100
	}
	total := b.EndDate.Sub(b.StartDate)
	if total <= 0 {
		return 0
	}
	elapsed := now.Sub(b.StartDate)
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(total) * 100
}

// HasCapacity reports whether the batch can seat another enrollment.
func (b *Batch) HasCapacity() bool {
	return b.CurrentStudents < b.MaxStudents
}
