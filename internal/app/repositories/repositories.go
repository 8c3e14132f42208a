package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all data access objects for dependency wiring.
type Repositories struct {
	User               *UserRepository
	Student            *StudentRepository
	Faculty            *FacultyRepository
	Course             *CourseRepository
	Enrollment         *EnrollmentRepository
	Attendance         *AttendanceRepository
	Summary            *SummaryRepository
	Threshold          *ThresholdRepository
	ShortageReport     *ShortageReportRepository
	Notification       *NotificationRepository
	Settings           *SettingsRepository
	PasswordResetToken *PasswordResetTokenRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:               NewUserRepository(db),
		Student:            NewStudentRepository(db),
		Faculty:            NewFacultyRepository(db),
		Course:             NewCourseRepository(db),
		Enrollment:         NewEnrollmentRepository(db),
		Attendance:         NewAttendanceRepository(db),
		Summary:            NewSummaryRepository(db),
		Threshold:          NewThresholdRepository(db),
		ShortageReport:     NewShortageReportRepository(db),
		Notification:       NewNotificationRepository(db),
		Settings:           NewSettingsRepository(db),
		PasswordResetToken: NewPasswordResetTokenRepository(db),
	}
}
