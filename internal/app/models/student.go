package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the student profile based on the 'students' table
type Student struct {
	ID             uuid.UUID `json:"student_id" db:"student_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	RollNumber     string    `json:"roll_number" db:"roll_number"`
	Department     string    `json:"department" db:"department"`
	Semester       int       `json:"semester" db:"semester"`
	BatchYear      int       `json:"batch_year" db:"batch_year"`
	EnrollmentDate time.Time `json:"enrollment_date" db:"enrollment_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Relation, populated when needed
	User *User `json:"user,omitempty"`
}
