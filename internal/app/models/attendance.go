package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one attendance event per (enrollment, class date).
type AttendanceRecord struct {
	ID           uuid.UUID        `json:"attendance_id" db:"attendance_id"`
	EnrollmentID uuid.UUID        `json:"enrollment_id" db:"enrollment_id"`
	ClassDate    time.Time        `json:"class_date" db:"class_date"`
	Status       AttendanceStatus `json:"status" db:"status"`
	MarkedBy     *uuid.UUID       `json:"marked_by,omitempty" db:"marked_by"`
	MarkedAt     time.Time        `json:"marked_at" db:"marked_at"`
	Remarks      *string          `json:"remarks,omitempty" db:"remarks"`
}

// AttendanceSummary is the cached aggregate of a single enrollment's
// attendance history. It is fully overwritten on every recompute.
type AttendanceSummary struct {
	ID                   uuid.UUID `json:"summary_id" db:"summary_id"`
	EnrollmentID         uuid.UUID `json:"enrollment_id" db:"enrollment_id"`
	TotalClasses         int       `json:"total_classes" db:"total_classes"`
	ClassesAttended      int       `json:"classes_attended" db:"classes_attended"`
	ClassesAbsent        int       `json:"classes_absent" db:"classes_absent"`
	ClassesLate          int       `json:"classes_late" db:"classes_late"`
	ClassesExcused       int       `json:"classes_excused" db:"classes_excused"`
	AttendancePercentage float64   `json:"attendance_percentage" db:"attendance_percentage"`
	ShortageStatus       bool      `json:"shortage_status" db:"shortage_status"`
	LastUpdated          time.Time `json:"last_updated" db:"last_updated"`
}

// ShortageThreshold configures minimum and warning percentages per
// department and/or course. A row with neither set is the global default.
type ShortageThreshold struct {
	ID                uuid.UUID  `json:"threshold_id" db:"threshold_id"`
	Department        *string    `json:"department,omitempty" db:"department"`
	CourseID          *uuid.UUID `json:"course_id,omitempty" db:"course_id"`
	MinimumPercentage float64    `json:"minimum_percentage" db:"minimum_percentage"`
	WarningPercentage float64    `json:"warning_percentage" db:"warning_percentage"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// ShortageReport records a shortage event for an enrollment.
type ShortageReport struct {
	ID                   uuid.UUID    `json:"report_id" db:"report_id"`
	EnrollmentID         uuid.UUID    `json:"enrollment_id" db:"enrollment_id"`
	ReportDate           time.Time    `json:"report_date" db:"report_date"`
	AttendancePercentage float64      `json:"attendance_percentage" db:"attendance_percentage"`
	ShortageType         ShortageType `json:"shortage_type" db:"shortage_type"`
	NotificationSent     bool         `json:"notification_sent" db:"notification_sent"`
	CreatedAt            time.Time    `json:"created_at" db:"created_at"`
}
