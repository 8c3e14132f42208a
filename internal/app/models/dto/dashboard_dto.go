package dto

import (
	"github.com/google/uuid"
)

// CourseAttendance is a per-course row on the student dashboard.
type CourseAttendance struct {
	CourseName   string  `json:"course_name"`
	CourseCode   string  `json:"course_code"`
	Percentage   float64 `json:"percentage"`
	Shortage     bool    `json:"shortage"`
	TotalClasses int     `json:"total_classes"`
	Attended     int     `json:"attended"`
	AcademicYear string  `json:"academic_year,omitempty"`
}

// StudentInfo is the identity block on the student dashboard.
type StudentInfo struct {
	FullName   string `json:"full_name,omitempty"`
	RollNumber string `json:"roll_number"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
}

// StudentDashboardResponse is the student dashboard payload.
type StudentDashboardResponse struct {
	OverallPercentage float64            `json:"overall_percentage"`
	Courses           []CourseAttendance `json:"courses"`
	StudentInfo       StudentInfo        `json:"student_info"`
	AcademicYear      string             `json:"academic_year,omitempty"`
	StudentID         *uuid.UUID         `json:"student_id,omitempty"`
}

// FacultyInfo is the identity block on the faculty dashboard.
type FacultyInfo struct {
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
}

// FacultyCourseStats is a per-course row on the faculty dashboard.
type FacultyCourseStats struct {
	CourseID      uuid.UUID `json:"course_id"`
	CourseName    string    `json:"course_name"`
	CourseCode    string    `json:"course_code"`
	StudentCount  int       `json:"student_count"`
	AvgAttendance float64   `json:"avg_attendance"`
}

// FacultyStats is the aggregate block on the faculty dashboard.
type FacultyStats struct {
	TotalStudents int     `json:"total_students"`
	AvgAttendance float64 `json:"avg_attendance"`
	TotalCourses  int     `json:"total_courses"`
}

// DayActivity is one day on the faculty activity trend.
type DayActivity struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// FacultyDashboardResponse is the faculty dashboard payload.
type FacultyDashboardResponse struct {
	FacultyInfo   FacultyInfo          `json:"faculty_info"`
	Courses       []FacultyCourseStats `json:"courses"`
	Stats         FacultyStats         `json:"stats"`
	DailyActivity []DayActivity        `json:"daily_activity"`
}

// AdminStats is the totals block on the admin dashboard.
type AdminStats struct {
	TotalStudents  int `json:"total_students"`
	TotalFaculty   int `json:"total_faculty"`
	TotalCourses   int `json:"total_courses"`
	ShortageAlerts int `json:"shortage_alerts"`
}

// NameValue is a generic chart datapoint.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CoursePerformance is a per-course present/absent split for charts.
type CoursePerformance struct {
	Name    string  `json:"name"`
	Present float64 `json:"present"`
	Absent  float64 `json:"absent"`
}

// AdminDashboardResponse is the admin dashboard payload.
type AdminDashboardResponse struct {
	Stats             AdminStats          `json:"stats"`
	DeptDistribution  []NameValue         `json:"dept_distribution"`
	CoursePerformance []CoursePerformance `json:"course_performance"`
}

// TrendPoint is one day on the student attendance trend.
type TrendPoint struct {
	Name       string  `json:"name"`
	Attendance float64 `json:"attendance"`
	FullDate   string  `json:"fullDate"`
}

// AttendanceEntry is one row in a student's attendance history.
type AttendanceEntry struct {
	ID      uuid.UUID `json:"id"`
	Date    string    `json:"date"`
	Course  string    `json:"course"`
	Status  string    `json:"status"`
	Faculty string    `json:"faculty,omitempty"`
}

// MarkingSession is one row in a faculty's marking history.
type MarkingSession struct {
	Date        string    `json:"date"`
	CourseName  string    `json:"course_name"`
	CourseCode  string    `json:"course_code"`
	CourseID    uuid.UUID `json:"course_id"`
	MarkedCount int       `json:"marked_count"`
}

// StudentDirectoryEntry is one row in the student directory for
// faculty/admin enrollment screens.
type StudentDirectoryEntry struct {
	StudentID  uuid.UUID `json:"student_id"`
	UserID     uuid.UUID `json:"user_id"`
	RollNumber string    `json:"roll_number"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Semester   int       `json:"semester"`
}
