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

// CourseRepository manages rows in the 'courses' table.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `course_id, course_code, course_name, department, semester, credits, total_classes, created_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.Department, &c.Semester,
		&c.Credits, &c.TotalClasses, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error scanning course: %w", err)
	}
	return &c, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	course.ID = uuid.New()

	query := `
		INSERT INTO courses (course_id, course_code, course_name, department, semester, credits, total_classes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, course.ID, course.CourseCode, course.CourseName,
		course.Department, course.Semester, course.Credits, course.TotalClasses).Scan(&course.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("course code already exists")
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE course_id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

// List returns all courses ordered by course code.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY course_code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.Department, &c.Semester,
			&c.Credits, &c.TotalClasses, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Update persists changed course fields.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET course_code = $1, course_name = $2, department = $3, semester = $4, credits = $5, total_classes = $6
		WHERE course_id = $7
	`

	tag, err := r.db.Exec(ctx, query, course.CourseCode, course.CourseName, course.Department,
		course.Semester, course.Credits, course.TotalClasses, course.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("course code already exists")
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course and, via cascade, its enrollments and records.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE course_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListByFaculty returns courses the given faculty teaches at least one
// enrollment of.
func (r *CourseRepository) ListByFaculty(ctx context.Context, facultyID uuid.UUID) ([]models.Course, error) {
	query := `
		SELECT DISTINCT c.course_id, c.course_code, c.course_name, c.department, c.semester,
		       c.credits, c.total_classes, c.created_at
		FROM courses c
		JOIN course_enrollments ce ON ce.course_id = c.course_id
		WHERE ce.faculty_id = $1
		ORDER BY c.course_code
	`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.Department, &c.Semester,
			&c.Credits, &c.TotalClasses, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// StatsByFaculty aggregates enrollment counts and average attendance for
// each course the faculty teaches.
func (r *CourseRepository) StatsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]models.CourseStatsRow, error) {
	query := `
		SELECT c.course_id, c.course_code, c.course_name,
		       COUNT(ce.enrollment_id),
		       COALESCE(AVG(s.attendance_percentage), 0)
		FROM courses c
		JOIN course_enrollments ce ON ce.course_id = c.course_id
		LEFT JOIN attendance_summary s ON s.enrollment_id = ce.enrollment_id
		WHERE ce.faculty_id = $1
		GROUP BY c.course_id, c.course_code, c.course_name
		ORDER BY c.course_code
	`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error loading course stats: %w", err)
	}
	defer rows.Close()

	var stats []models.CourseStatsRow
	for rows.Next() {
		var row models.CourseStatsRow
		if err := rows.Scan(&row.CourseID, &row.CourseCode, &row.CourseName,
			&row.StudentCount, &row.AvgAttendance); err != nil {
			return nil, fmt.Errorf("error scanning course stats: %w", err)
		}
		stats = append(stats, row)
	}
	return stats, rows.Err()
}

// CountAll returns the number of courses.
func (r *CourseRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// Performance returns the campus-wide average summary percentage per course.
func (r *CourseRepository) Performance(ctx context.Context) ([]models.CoursePerformanceRow, error) {
	query := `
		SELECT c.course_code, COALESCE(AVG(s.attendance_percentage), 0)
		FROM courses c
		JOIN course_enrollments ce ON ce.course_id = c.course_id
		JOIN attendance_summary s ON s.enrollment_id = ce.enrollment_id
		GROUP BY c.course_code
		ORDER BY c.course_code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error loading course performance: %w", err)
	}
	defer rows.Close()

	var result []models.CoursePerformanceRow
	for rows.Next() {
		var row models.CoursePerformanceRow
		if err := rows.Scan(&row.CourseCode, &row.AvgPercentage); err != nil {
			return nil, fmt.Errorf("error scanning course performance: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
