package dto

import (
	"github.com/google/uuid"
)

// CreateCourseRequest is the payload for course creation.
type CreateCourseRequest struct {
	CourseCode   string `json:"course_code" binding:"required"`
	CourseName   string `json:"course_name" binding:"required"`
	Department   string `json:"department" binding:"required"`
	Semester     int    `json:"semester" binding:"required,min=1"`
	Credits      int    `json:"credits" binding:"required,min=1"`
	TotalClasses int    `json:"total_classes"`
}

// UpdateCourseRequest is the payload for a partial course update.
type UpdateCourseRequest struct {
	CourseCode   *string `json:"course_code,omitempty"`
	CourseName   *string `json:"course_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Semester     *int    `json:"semester,omitempty"`
	Credits      *int    `json:"credits,omitempty"`
	TotalClasses *int    `json:"total_classes,omitempty"`
}

// EnrollRequest enrolls a student into a course by identifiers.
type EnrollRequest struct {
	StudentID    uuid.UUID  `json:"student_id" binding:"required"`
	CourseID     uuid.UUID  `json:"course_id" binding:"required"`
	FacultyID    *uuid.UUID `json:"faculty_id,omitempty"`
	AcademicYear string     `json:"academic_year" binding:"required"`
}

// CourseStudentEntry is one enrolled student on the marking screen.
type CourseStudentEntry struct {
	StudentID            uuid.UUID `json:"student_id"`
	EnrollmentID         uuid.UUID `json:"enrollment_id"`
	RollNumber           string    `json:"roll_number"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	Department           string    `json:"department"`
	Semester             int       `json:"semester"`
	AttendancePercentage float64   `json:"attendance_percentage"`
	ShortageStatus       bool      `json:"shortage_status"`
}

// EnrollByRollNumberRequest enrolls a student into a course by roll number;
// the enrolling faculty is resolved from the caller.
type EnrollByRollNumberRequest struct {
	RollNumber   string    `json:"roll_number" binding:"required"`
	CourseID     uuid.UUID `json:"course_id" binding:"required"`
	AcademicYear string    `json:"academic_year" binding:"required"`
}
