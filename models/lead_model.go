package models

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Phone    string    `gorm:"size:20;not null" json:"phone"`
	Email    *string   `gorm:"size:255" json:"email"`
	Source   string    `gorm:"size:50;not null;default:'walk_in'" json:"source"`
	Status   string    `gorm:"size:20;not null;default:'new'" json:"status"`
	Notes    *string   `gorm:"type:text" json:"notes"`

	InterestedCourseID *uuid.UUID `json:"interested_course_id"`
	AssignedToID       *uuid.UUID `json:"assigned_to_id"`
	FollowUpDate       *time.Time `json:"follow_up_date"`
	ConvertedStudentID *uuid.UUID `gorm:"unique" json:"converted_student_id"`

	InterestedCourse *Course `gorm:"foreignkey:InterestedCourseID" json:"interested_course,omitempty"`
	AssignedTo       *User   `gorm:"foreignkey:AssignedToID" json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
