package models

import (
	"time"

	"github.com/google/uuid"
)

// Faculty defines the faculty profile based on the 'faculty' table
type Faculty struct {
	ID             uuid.UUID `json:"faculty_id" db:"faculty_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	EmployeeID     string    `json:"employee_id" db:"employee_id"`
	Department     string    `json:"department" db:"department"`
	Designation    string    `json:"designation" db:"designation"`
	Specialization *string   `json:"specialization,omitempty" db:"specialization"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Relation, populated when needed
	User *User `json:"user,omitempty"`
}
