package models

import (
	"time"

	"github.com/google/uuid"
)

// Read models produced by repository joins.

// StatusCounts is the per-status breakdown of an enrollment's records.
type StatusCounts struct {
	Total   int
	Present int
	Absent  int
	Late    int
	Excused int
}

// EnrollmentMeta carries the context needed to recompute a summary.
type EnrollmentMeta struct {
	EnrollmentID     uuid.UUID
	StudentID        uuid.UUID
	StudentUserID    uuid.UUID
	CourseID         uuid.UUID
	CourseCode       string
	CourseName       string
	CourseDepartment string
}

// EnrollmentSummaryRow is a summary joined with its course and enrollment.
type EnrollmentSummaryRow struct {
	Summary      AttendanceSummary
	CourseCode   string
	CourseName   string
	AcademicYear string
}

// CourseStatsRow aggregates enrollment counts and average attendance per course.
type CourseStatsRow struct {
	CourseID      uuid.UUID
	CourseCode    string
	CourseName    string
	StudentCount  int
	AvgAttendance float64
}

// DailyActivityRow counts present/absent marks on one class date.
type DailyActivityRow struct {
	Date    time.Time
	Present int
	Absent  int
}

// DailyTrendRow counts attended vs total marks on one class date.
type DailyTrendRow struct {
	Date     time.Time
	Total    int
	Attended int
}

// StudentRecordRow is an attendance record joined with course and marker.
type StudentRecordRow struct {
	Record      AttendanceRecord
	CourseCode  string
	CourseName  string
	FacultyName string
}

// MarkingSessionRow groups a faculty's marks by (class date, course).
type MarkingSessionRow struct {
	ClassDate   time.Time
	CourseID    uuid.UUID
	CourseName  string
	CourseCode  string
	MarkedCount int
}

// StudentDirectoryRow is a student joined with its user account.
type StudentDirectoryRow struct {
	StudentID  uuid.UUID
	UserID     uuid.UUID
	RollNumber string
	FullName   string
	Email      string
	Department string
	Semester   int
}

// CourseStudentRow is an enrolled student joined with account and summary.
type CourseStudentRow struct {
	StudentID            uuid.UUID
	EnrollmentID         uuid.UUID
	RollNumber           string
	FullName             string
	Email                string
	Department           string
	Semester             int
	AttendancePercentage float64
	ShortageStatus       bool
}

// DeptCountRow counts students per department.
type DeptCountRow struct {
	Department string
	Count      int
}

// CoursePerformanceRow is the average summary percentage per course.
type CoursePerformanceRow struct {
	CourseCode    string
	AvgPercentage float64
}
