package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    *string   `gorm:"size:255" json:"email"`
	Phone    string    `gorm:"size:20;not null" json:"phone"`
	Address  *string   `gorm:"type:text" json:"address"`

	CourseID *uuid.UUID `json:"course_id"`
	BatchID  *uuid.UUID `json:"batch_id"`
	LeadID   *uuid.UUID `gorm:"unique" json:"lead_id"`

	// Ledger fields. FeeDue is always max(0, TotalFee-FeePaid); mutate only
	// through the ledger service so the payment row and these stay in step.
	TotalFee float64 `gorm:"type:numeric(10,2);not null;default:0.00" json:"total_fee"`
	FeePaid  float64 `gorm:"type:numeric(10,2);not null;default:0.00" json:"fee_paid"`
	FeeDue   float64 `gorm:"type:numeric(10,2);not null;default:0.00" json:"fee_due"`

	Status         string    `gorm:"size:20;not null;default:'active'" json:"status"`
	EnrollmentDate time.Time `json:"enrollment_date"`

	Course *Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	Batch  *Batch  `gorm:"foreignkey:BatchID" json:"batch,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
