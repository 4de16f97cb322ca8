package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`

	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
	PaymentMethod string    `gorm:"size:20;not null" json:"payment_method"`
	Status        string    `gorm:"size:20;not null;default:'completed'" json:"status"`

	TransactionReference *string `gorm:"size:255" json:"transaction_reference"`
	Notes                *string `gorm:"type:text" json:"notes"`
	ReceiptNumber        string  `gorm:"size:20;unique" json:"receipt_number"`
	ReceiptURL           *string `gorm:"size:255" json:"receipt_url"`

	RecordedByID *uuid.UUID `json:"recorded_by_id"`

	Student    Student `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	RecordedBy *User   `gorm:"foreignkey:RecordedByID" json:"recorded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
