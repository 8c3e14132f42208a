package dto

import (
	"github.com/google/uuid"
)

// AttendanceMark is one (student, status) tuple in a bulk marking request.
type AttendanceMark struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Status    string    `json:"status" binding:"required,oneof=present absent late excused"`
	Remarks   *string   `json:"remarks,omitempty"`
}

// BulkAttendanceRequest marks attendance for a list of students in a course
// on a single class date.
type BulkAttendanceRequest struct {
	CourseID       uuid.UUID        `json:"course_id" binding:"required"`
	ClassDate      string           `json:"class_date" binding:"required,datetime=2006-01-02"`
	AttendanceData []AttendanceMark `json:"attendance_data" binding:"required,min=1,dive"`
}

// SendReminderRequest fans a notification out to every student enrolled in
// a course.
type SendReminderRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Title    string    `json:"title" binding:"required"`
	Message  string    `json:"message" binding:"required"`
}

// UpdateSettingsRequest toggles per-user preferences.
type UpdateSettingsRequest struct {
	NotificationsEnabled *bool `json:"notifications_enabled" binding:"required"`
}
