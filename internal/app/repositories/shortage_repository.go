package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendlink/attendlink/internal/app/models"
)

// ThresholdRepository manages rows in the 'shortage_thresholds' table.
type ThresholdRepository struct {
	db *pgxpool.Pool
}

// NewThresholdRepository creates a new ThresholdRepository
func NewThresholdRepository(db *pgxpool.Pool) *ThresholdRepository {
	return &ThresholdRepository{db: db}
}

// Resolve picks the most specific active threshold for a course in a
// department: course-level beats department-level beats global default.
// found is false when no active row matches at any level.
func (r *ThresholdRepository) Resolve(ctx context.Context, courseID uuid.UUID, department string) (minimum, warning float64, found bool, err error) {
	query := `
		SELECT minimum_percentage, warning_percentage
		FROM shortage_thresholds
		WHERE is_active
		  AND (course_id = $1
		       OR (course_id IS NULL AND department = $2)
		       OR (course_id IS NULL AND department IS NULL))
		ORDER BY (course_id IS NOT NULL) DESC, (department IS NOT NULL) DESC
		LIMIT 1
	`

	err = r.db.QueryRow(ctx, query, courseID, department).Scan(&minimum, &warning)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, false, nil
		}
		return 0, 0, false, fmt.Errorf("error resolving threshold: %w", err)
	}
	return minimum, warning, true, nil
}

// Create inserts a threshold row.
func (r *ThresholdRepository) Create(ctx context.Context, t *models.ShortageThreshold) error {
	t.ID = uuid.New()

	query := `
		INSERT INTO shortage_thresholds (threshold_id, department, course_id, minimum_percentage, warning_percentage, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, t.ID, t.Department, t.CourseID,
		t.MinimumPercentage, t.WarningPercentage, t.IsActive).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating threshold: %w", err)
	}
	return nil
}

// GlobalExists reports whether an active global default threshold exists.
func (r *ThresholdRepository) GlobalExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM shortage_thresholds
			WHERE is_active AND course_id IS NULL AND department IS NULL
		)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking global threshold: %w", err)
	}
	return exists, nil
}

// ShortageReportRepository manages rows in the 'shortage_reports' table.
type ShortageReportRepository struct {
	db *pgxpool.Pool
}

// NewShortageReportRepository creates a new ShortageReportRepository
func NewShortageReportRepository(db *pgxpool.Pool) *ShortageReportRepository {
	return &ShortageReportRepository{db: db}
}

// Create records a shortage event.
func (r *ShortageReportRepository) Create(ctx context.Context, report *models.ShortageReport) error {
	report.ID = uuid.New()

	query := `
		INSERT INTO shortage_reports (report_id, enrollment_id, report_date, attendance_percentage, shortage_type, notification_sent)
		VALUES ($1, $2, CURRENT_DATE, $3, $4, $5)
		RETURNING report_date, created_at
	`

	err := r.db.QueryRow(ctx, query, report.ID, report.EnrollmentID,
		report.AttendancePercentage, report.ShortageType, report.NotificationSent).
		Scan(&report.ReportDate, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating shortage report: %w", err)
	}
	return nil
}
