package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

// SummaryRepository manages rows in the 'attendance_summary' table.
type SummaryRepository struct {
	db *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// InitTx creates a zeroed summary row for a fresh enrollment within the
// same transaction that created the enrollment.
func (r *SummaryRepository) InitTx(ctx context.Context, tx pgx.Tx, enrollmentID uuid.UUID) error {
	query := `
		INSERT INTO attendance_summary (summary_id, enrollment_id)
		VALUES ($1, $2)
		ON CONFLICT (enrollment_id) DO NOTHING
	`

	if _, err := tx.Exec(ctx, query, uuid.New(), enrollmentID); err != nil {
		return fmt.Errorf("error initializing summary: %w", err)
	}
	return nil
}

// Upsert overwrites the cached aggregate for an enrollment.
func (r *SummaryRepository) Upsert(ctx context.Context, s *models.AttendanceSummary) error {
	query := `
		INSERT INTO attendance_summary (summary_id, enrollment_id, total_classes, classes_attended,
			classes_absent, classes_late, classes_excused, attendance_percentage, shortage_status, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (enrollment_id)
		DO UPDATE SET total_classes = EXCLUDED.total_classes,
		              classes_attended = EXCLUDED.classes_attended,
		              classes_absent = EXCLUDED.classes_absent,
		              classes_late = EXCLUDED.classes_late,
		              classes_excused = EXCLUDED.classes_excused,
		              attendance_percentage = EXCLUDED.attendance_percentage,
		              shortage_status = EXCLUDED.shortage_status,
		              last_updated = now()
		RETURNING summary_id, last_updated
	`

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, s.ID, s.EnrollmentID, s.TotalClasses, s.ClassesAttended,
		s.ClassesAbsent, s.ClassesLate, s.ClassesExcused, s.AttendancePercentage,
		s.ShortageStatus).Scan(&s.ID, &s.LastUpdated)
	if err != nil {
		return fmt.Errorf("error saving summary: %w", err)
	}
	return nil
}

const summaryColumns = `summary_id, enrollment_id, total_classes, classes_attended, classes_absent,
	classes_late, classes_excused, attendance_percentage, shortage_status, last_updated`

// GetByEnrollment retrieves the summary of an enrollment.
func (r *SummaryRepository) GetByEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*models.AttendanceSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM attendance_summary WHERE enrollment_id = $1`

	var s models.AttendanceSummary
	err := r.db.QueryRow(ctx, query, enrollmentID).Scan(&s.ID, &s.EnrollmentID, &s.TotalClasses,
		&s.ClassesAttended, &s.ClassesAbsent, &s.ClassesLate, &s.ClassesExcused,
		&s.AttendancePercentage, &s.ShortageStatus, &s.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading summary: %w", err)
	}
	return &s, nil
}

// ListByStudent returns all of a student's summaries joined with course
// identity, ordered by course code.
func (r *SummaryRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.EnrollmentSummaryRow, error) {
	query := `
		SELECT s.summary_id, s.enrollment_id, s.total_classes, s.classes_attended, s.classes_absent,
		       s.classes_late, s.classes_excused, s.attendance_percentage, s.shortage_status, s.last_updated,
		       c.course_code, c.course_name, ce.academic_year
		FROM attendance_summary s
		JOIN course_enrollments ce ON ce.enrollment_id = s.enrollment_id
		JOIN courses c ON c.course_id = ce.course_id
		WHERE ce.student_id = $1
		ORDER BY c.course_code
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing summaries: %w", err)
	}
	defer rows.Close()

	var result []models.EnrollmentSummaryRow
	for rows.Next() {
		var row models.EnrollmentSummaryRow
		if err := rows.Scan(&row.Summary.ID, &row.Summary.EnrollmentID, &row.Summary.TotalClasses,
			&row.Summary.ClassesAttended, &row.Summary.ClassesAbsent, &row.Summary.ClassesLate,
			&row.Summary.ClassesExcused, &row.Summary.AttendancePercentage, &row.Summary.ShortageStatus,
			&row.Summary.LastUpdated, &row.CourseCode, &row.CourseName, &row.AcademicYear); err != nil {
			return nil, fmt.Errorf("error scanning summary row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountShortages returns how many summaries are currently flagged.
func (r *SummaryRepository) CountShortages(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_summary WHERE shortage_status`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting shortages: %w", err)
	}
	return count, nil
}
