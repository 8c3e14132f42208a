package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/repositories"
	"github.com/attendlink/attendlink/internal/config"
	"github.com/attendlink/attendlink/internal/db"
	"github.com/attendlink/attendlink/internal/pkg/auth"
)

// Store interfaces are defined on the consumer side so services can be
// tested against fakes. Each is satisfied by the matching repository.

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore is the users table surface used by services.
type UserStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePasswordTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, passwordHash string) error
}

// StudentStore is the students table surface used by services.
type StudentStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	ListDirectory(ctx context.Context) ([]models.StudentDirectoryRow, error)
	CountAll(ctx context.Context) (int, error)
	CountByDepartment(ctx context.Context) ([]models.DeptCountRow, error)
}

// FacultyStore is the faculty table surface used by services.
type FacultyStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, faculty *models.Faculty) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Faculty, error)
	CountAll(ctx context.Context) (int, error)
}

// CourseStore is the courses table surface used by services.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFaculty(ctx context.Context, facultyID uuid.UUID) ([]models.Course, error)
	StatsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]models.CourseStatsRow, error)
	CountAll(ctx context.Context) (int, error)
	Performance(ctx context.Context) ([]models.CoursePerformanceRow, error)
}

// EnrollmentStore is the course_enrollments table surface used by services.
type EnrollmentStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.CourseEnrollment) error
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.CourseEnrollment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.CourseEnrollment, error)
	GetMeta(ctx context.Context, enrollmentID uuid.UUID) (*models.EnrollmentMeta, error)
	ListStudentUserIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	ListCourseStudents(ctx context.Context, courseID uuid.UUID) ([]models.CourseStudentRow, error)
	Delete(ctx context.Context, studentID, courseID uuid.UUID) error
}

// AttendanceStore is the attendance_records table surface used by services.
type AttendanceStore interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	ExistsForCourseDate(ctx context.Context, courseID uuid.UUID, classDate time.Time) (bool, error)
	ListByCourseDate(ctx context.Context, courseID uuid.UUID, classDate time.Time) ([]models.AttendanceRecord, error)
	CountByStatus(ctx context.Context, enrollmentID uuid.UUID) (*models.StatusCounts, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.StudentRecordRow, error)
	ActivityByMarker(ctx context.Context, markedBy uuid.UUID, from, to time.Time) ([]models.DailyActivityRow, error)
	TrendByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]models.DailyTrendRow, error)
	MarkingHistory(ctx context.Context, markedBy uuid.UUID) ([]models.MarkingSessionRow, error)
}

// SummaryStore is the attendance_summary table surface used by services.
type SummaryStore interface {
	InitTx(ctx context.Context, tx pgx.Tx, enrollmentID uuid.UUID) error
	Upsert(ctx context.Context, summary *models.AttendanceSummary) error
	GetByEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*models.AttendanceSummary, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.EnrollmentSummaryRow, error)
	CountShortages(ctx context.Context) (int, error)
}

// ThresholdStore resolves shortage thresholds.
type ThresholdStore interface {
	Resolve(ctx context.Context, courseID uuid.UUID, department string) (minimum, warning float64, found bool, err error)
}

// ShortageReportStore records shortage events.
type ShortageReportStore interface {
	Create(ctx context.Context, report *models.ShortageReport) error
}

// NotificationStore is the notifications table surface used by services.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}

// SettingsStore is the user_settings table surface used by services.
type SettingsStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	SetNotificationsEnabled(ctx context.Context, userID uuid.UUID, enabled bool) (*models.UserSettings, error)
	NotificationsEnabled(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ResetTokenStore is the password_reset_tokens table surface used by services.
type ResetTokenStore interface {
	Create(ctx context.Context, t *models.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkUsedTx(ctx context.Context, tx pgx.Tx, tokenID uuid.UUID) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *models.User) (token string, expiresIn int, err error)
}

// Services bundles all business services for dependency wiring.
type Services struct {
	Auth         *AuthService
	Attendance   *AttendanceService
	Course       *CourseService
	Dashboard    *DashboardService
	Notification *NotificationService
	Report       *ReportService
}

// NewServices wires all services against the repositories and shared
// infrastructure.
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, jwtService *auth.JWTService, cfg *config.Config) *Services {
	attendance := NewAttendanceService(
		repos.Course, repos.Enrollment, repos.Attendance, repos.Summary,
		repos.Threshold, repos.ShortageReport, repos.Notification, repos.Settings,
	)

	return &Services{
		Auth: NewAuthService(
			database, repos.User, repos.Student, repos.Faculty, repos.Settings,
			repos.PasswordResetToken, jwtService,
			config.ParseDuration(cfg.Auth.ResetTokenTTL, 30*time.Minute),
		),
		Attendance: attendance,
		Course: NewCourseService(
			database, repos.Course, repos.Student, repos.Faculty,
			repos.Enrollment, repos.Summary,
		),
		Dashboard: NewDashboardService(
			repos.User, repos.Student, repos.Faculty, repos.Course,
			repos.Attendance, repos.Summary,
		),
		Notification: NewNotificationService(
			repos.Notification, repos.Settings, repos.Enrollment, repos.Course,
		),
		Report: NewReportService(repos.User, repos.Student, repos.Attendance, repos.Summary),
	}
}
