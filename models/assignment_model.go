package models

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID uuid.UUID `gorm:"not null;index" json:"batch_id"`

	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	MaxScore    int       `gorm:"not null;default:100" json:"max_score"`

	Batch Batch `gorm:"foreignkey:BatchID" json:"batch,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Submission struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AssignmentID uuid.UUID `gorm:"not null;index" json:"assignment_id"`
	StudentID    uuid.UUID `gorm:"not null;index" json:"student_id"`

	ContentURL  *string    `gorm:"size:255" json:"content_url"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Score       *int       `json:"score"`
	Feedback    *string    `gorm:"type:text" json:"feedback"`
	GradedAt    *time.Time `json:"graded_at"`

	Assignment Assignment `gorm:"foreignkey:AssignmentID" json:"assignment,omitempty"`
	Student    Student    `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
