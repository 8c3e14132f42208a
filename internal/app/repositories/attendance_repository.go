package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendlink/attendlink/internal/app/models"
)

// AttendanceRepository manages rows in the 'attendance_records' table.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts a record, or overwrites status/remarks/marker when one
// already exists for the same (enrollment, class date).
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	record.ID = uuid.New()

	query := `
		INSERT INTO attendance_records (attendance_id, enrollment_id, class_date, status, marked_by, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (enrollment_id, class_date)
		DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by,
		              remarks = EXCLUDED.remarks, marked_at = now()
		RETURNING attendance_id, marked_at
	`

	err := r.db.QueryRow(ctx, query, record.ID, record.EnrollmentID, record.ClassDate,
		record.Status, record.MarkedBy, record.Remarks).Scan(&record.ID, &record.MarkedAt)
	if err != nil {
		return fmt.Errorf("error saving attendance record: %w", err)
	}
	return nil
}

// ExistsForCourseDate reports whether any record exists for the course on
// the given class date.
func (r *AttendanceRepository) ExistsForCourseDate(ctx context.Context, courseID uuid.UUID, classDate time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendance_records ar
			JOIN course_enrollments ce ON ce.enrollment_id = ar.enrollment_id
			WHERE ce.course_id = $1 AND ar.class_date = $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, courseID, classDate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course records: %w", err)
	}
	return exists, nil
}

// CountByStatus breaks an enrollment's records down per status.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, enrollmentID uuid.UUID) (*models.StatusCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'present'),
		       COUNT(*) FILTER (WHERE status = 'absent'),
		       COUNT(*) FILTER (WHERE status = 'late'),
		       COUNT(*) FILTER (WHERE status = 'excused')
		FROM attendance_records
		WHERE enrollment_id = $1
	`

	var c models.StatusCounts
	err := r.db.QueryRow(ctx, query, enrollmentID).Scan(&c.Total, &c.Present, &c.Absent, &c.Late, &c.Excused)
	if err != nil {
		return nil, fmt.Errorf("error counting attendance records: %w", err)
	}
	return &c, nil
}

// ListByStudent returns a student's full history joined with course and
// marker, newest class date first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.StudentRecordRow, error) {
	query := `
		SELECT ar.attendance_id, ar.enrollment_id, ar.class_date, ar.status, ar.marked_by,
		       ar.marked_at, ar.remarks, c.course_code, c.course_name, COALESCE(fu.full_name, '')
		FROM attendance_records ar
		JOIN course_enrollments ce ON ce.enrollment_id = ar.enrollment_id
		JOIN courses c ON c.course_id = ce.course_id
		LEFT JOIN faculty f ON f.faculty_id = ce.faculty_id
		LEFT JOIN users fu ON fu.user_id = f.user_id
		WHERE ce.student_id = $1
		ORDER BY ar.class_date DESC, ar.marked_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	var result []models.StudentRecordRow
	for rows.Next() {
		var row models.StudentRecordRow
		if err := rows.Scan(&row.Record.ID, &row.Record.EnrollmentID, &row.Record.ClassDate,
			&row.Record.Status, &row.Record.MarkedBy, &row.Record.MarkedAt, &row.Record.Remarks,
			&row.CourseCode, &row.CourseName, &row.FacultyName); err != nil {
			return nil, fmt.Errorf("error scanning attendance record: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListByCourseDate returns every record of a course for one class date.
func (r *AttendanceRepository) ListByCourseDate(ctx context.Context, courseID uuid.UUID, classDate time.Time) ([]models.AttendanceRecord, error) {
	query := `
		SELECT ar.attendance_id, ar.enrollment_id, ar.class_date, ar.status, ar.marked_by,
		       ar.marked_at, ar.remarks
		FROM attendance_records ar
		JOIN course_enrollments ce ON ce.enrollment_id = ar.enrollment_id
		WHERE ce.course_id = $1 AND ar.class_date = $2
		ORDER BY ar.marked_at
	`

	rows, err := r.db.Query(ctx, query, courseID, classDate)
	if err != nil {
		return nil, fmt.Errorf("error listing course records: %w", err)
	}
	defer rows.Close()

	var result []models.AttendanceRecord
	for rows.Next() {
		var record models.AttendanceRecord
		if err := rows.Scan(&record.ID, &record.EnrollmentID, &record.ClassDate, &record.Status,
			&record.MarkedBy, &record.MarkedAt, &record.Remarks); err != nil {
			return nil, fmt.Errorf("error scanning course record: %w", err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// ActivityByMarker counts present and absent marks per class date made by
// the given faculty user within the date range.
func (r *AttendanceRepository) ActivityByMarker(ctx context.Context, markedBy uuid.UUID, from, to time.Time) ([]models.DailyActivityRow, error) {
	query := `
		SELECT class_date,
		       COUNT(*) FILTER (WHERE status IN ('present', 'late')),
		       COUNT(*) FILTER (WHERE status = 'absent')
		FROM attendance_records
		WHERE marked_by = $1 AND class_date BETWEEN $2 AND $3
		GROUP BY class_date
		ORDER BY class_date
	`

	rows, err := r.db.Query(ctx, query, markedBy, from, to)
	if err != nil {
		return nil, fmt.Errorf("error loading marking activity: %w", err)
	}
	defer rows.Close()

	var result []models.DailyActivityRow
	for rows.Next() {
		var row models.DailyActivityRow
		if err := rows.Scan(&row.Date, &row.Present, &row.Absent); err != nil {
			return nil, fmt.Errorf("error scanning marking activity: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// TrendByStudent counts a student's attended vs total marks per class date
// within the date range, across all enrollments.
func (r *AttendanceRepository) TrendByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]models.DailyTrendRow, error) {
	query := `
		SELECT ar.class_date,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE ar.status IN ('present', 'late'))
		FROM attendance_records ar
		JOIN course_enrollments ce ON ce.enrollment_id = ar.enrollment_id
		WHERE ce.student_id = $1 AND ar.class_date BETWEEN $2 AND $3
		GROUP BY ar.class_date
		ORDER BY ar.class_date
	`

	rows, err := r.db.Query(ctx, query, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error loading attendance trend: %w", err)
	}
	defer rows.Close()

	var result []models.DailyTrendRow
	for rows.Next() {
		var row models.DailyTrendRow
		if err := rows.Scan(&row.Date, &row.Total, &row.Attended); err != nil {
			return nil, fmt.Errorf("error scanning attendance trend: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// MarkingHistory groups a faculty user's marks into (class date, course)
// sessions, newest first.
func (r *AttendanceRepository) MarkingHistory(ctx context.Context, markedBy uuid.UUID) ([]models.MarkingSessionRow, error) {
	query := `
		SELECT ar.class_date, c.course_id, c.course_name, c.course_code, COUNT(*)
		FROM attendance_records ar
		JOIN course_enrollments ce ON ce.enrollment_id = ar.enrollment_id
		JOIN courses c ON c.course_id = ce.course_id
		WHERE ar.marked_by = $1
		GROUP BY ar.class_date, c.course_id, c.course_name, c.course_code
		ORDER BY ar.class_date DESC
	`

	rows, err := r.db.Query(ctx, query, markedBy)
	if err != nil {
		return nil, fmt.Errorf("error loading marking history: %w", err)
	}
	defer rows.Close()

	var result []models.MarkingSessionRow
	for rows.Next() {
		var row models.MarkingSessionRow
		if err := rows.Scan(&row.ClassDate, &row.CourseID, &row.CourseName,
			&row.CourseCode, &row.MarkedCount); err != nil {
			return nil, fmt.Errorf("error scanning marking session: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
