package models

import (
	"time"

	"github.com/google/uuid"
)

// Course defines the course model based on the 'courses' table
type Course struct {
	ID           uuid.UUID `json:"course_id" db:"course_id"`
	CourseCode   string    `json:"course_code" db:"course_code"`
	CourseName   string    `json:"course_name" db:"course_name"`
	Department   string    `json:"department" db:"department"`
	Semester     int       `json:"semester" db:"semester"`
	Credits      int       `json:"credits" db:"credits"`
	TotalClasses int       `json:"total_classes" db:"total_classes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CourseEnrollment binds one student to one course for one academic year.
// Attendance records and summaries key off the enrollment.
type CourseEnrollment struct {
	ID             uuid.UUID  `json:"enrollment_id" db:"enrollment_id"`
	StudentID      uuid.UUID  `json:"student_id" db:"student_id"`
	CourseID       uuid.UUID  `json:"course_id" db:"course_id"`
	FacultyID      *uuid.UUID `json:"faculty_id,omitempty" db:"faculty_id"`
	AcademicYear   string     `json:"academic_year" db:"academic_year"`
	EnrollmentDate time.Time  `json:"enrollment_date" db:"enrollment_date"`
}
