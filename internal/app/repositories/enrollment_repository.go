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
	"github.com/attendlink/attendlink/internal/pkg/dberrors"
)

// EnrollmentRepository manages rows in the 'course_enrollments' table.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `enrollment_id, student_id, course_id, faculty_id, academic_year, enrollment_date`

func scanEnrollment(row pgx.Row) (*models.CourseEnrollment, error) {
	var e models.CourseEnrollment
	err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.FacultyID, &e.AcademicYear, &e.EnrollmentDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error scanning enrollment: %w", err)
	}
	return &e, nil
}

// CreateTx inserts an enrollment within a transaction. The summary row for
// the new enrollment is initialized in the same transaction by the caller.
func (r *EnrollmentRepository) CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.CourseEnrollment) error {
	enrollment.ID = uuid.New()

	query := `
		INSERT INTO course_enrollments (enrollment_id, student_id, course_id, faculty_id, academic_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING enrollment_date
	`

	err := tx.QueryRow(ctx, query, enrollment.ID, enrollment.StudentID, enrollment.CourseID,
		enrollment.FacultyID, enrollment.AcademicYear).Scan(&enrollment.EnrollmentDate)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetByStudentAndCourse retrieves the enrollment binding a student to a course.
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.CourseEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE student_id = $1 AND course_id = $2`
	return scanEnrollment(r.db.QueryRow(ctx, query, studentID, courseID))
}

// ListByCourse returns all enrollments of a course.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.CourseEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE course_id = $1`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.CourseEnrollment
	for rows.Next() {
		var e models.CourseEnrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.FacultyID,
			&e.AcademicYear, &e.EnrollmentDate); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// GetMeta loads the enrollment together with its student and course context.
func (r *EnrollmentRepository) GetMeta(ctx context.Context, enrollmentID uuid.UUID) (*models.EnrollmentMeta, error) {
	query := `
		SELECT ce.enrollment_id, ce.student_id, st.user_id, c.course_id, c.course_code, c.course_name, c.department
		FROM course_enrollments ce
		JOIN students st ON st.student_id = ce.student_id
		JOIN courses c ON c.course_id = ce.course_id
		WHERE ce.enrollment_id = $1
	`

	var m models.EnrollmentMeta
	err := r.db.QueryRow(ctx, query, enrollmentID).Scan(&m.EnrollmentID, &m.StudentID,
		&m.StudentUserID, &m.CourseID, &m.CourseCode, &m.CourseName, &m.CourseDepartment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error loading enrollment context: %w", err)
	}
	return &m, nil
}

// ListStudentUserIDs returns the user account IDs of every student
// enrolled in a course, for notification fan-out.
func (r *EnrollmentRepository) ListStudentUserIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT st.user_id
		FROM course_enrollments ce
		JOIN students st ON st.student_id = ce.student_id
		WHERE ce.course_id = $1
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled users: %w", err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning enrolled user: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// ListCourseStudents joins a course's enrollments with the student
// account and current summary, ordered by roll number.
func (r *EnrollmentRepository) ListCourseStudents(ctx context.Context, courseID uuid.UUID) ([]models.CourseStudentRow, error) {
	query := `
		SELECT st.student_id, ce.enrollment_id, st.roll_number, u.full_name, u.email,
		       st.department, st.semester,
		       COALESCE(s.attendance_percentage, 0), COALESCE(s.shortage_status, false)
		FROM course_enrollments ce
		JOIN students st ON st.student_id = ce.student_id
		JOIN users u ON u.user_id = st.user_id
		LEFT JOIN attendance_summary s ON s.enrollment_id = ce.enrollment_id
		WHERE ce.course_id = $1
		ORDER BY st.roll_number
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course students: %w", err)
	}
	defer rows.Close()

	var result []models.CourseStudentRow
	for rows.Next() {
		var row models.CourseStudentRow
		if err := rows.Scan(&row.StudentID, &row.EnrollmentID, &row.RollNumber, &row.FullName,
			&row.Email, &row.Department, &row.Semester, &row.AttendancePercentage,
			&row.ShortageStatus); err != nil {
			return nil, fmt.Errorf("error scanning course student: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Delete removes an enrollment and, via cascade, its records and summary.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM course_enrollments WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
