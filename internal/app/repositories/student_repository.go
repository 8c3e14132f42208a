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

// StudentRepository manages rows in the 'students' table.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `student_id, user_id, roll_number, department, semester, batch_year, enrollment_date, created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.UserID, &s.RollNumber, &s.Department, &s.Semester,
		&s.BatchYear, &s.EnrollmentDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return &s, nil
}

// CreateTx inserts a student profile within a transaction.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	student.ID = uuid.New()

	query := `
		INSERT INTO students (student_id, user_id, roll_number, department, semester, batch_year, enrollment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query, student.ID, student.UserID, student.RollNumber,
		student.Department, student.Semester, student.BatchYear, student.EnrollmentDate).Scan(&student.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a student profile by user ID.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, userID))
}

// GetByID retrieves a student profile by student ID.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByRollNumber retrieves a student profile by roll number.
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE roll_number = $1`
	return scanStudent(r.db.QueryRow(ctx, query, rollNumber))
}

// ListDirectory lists all students joined with their user account, for
// faculty/admin enrollment screens.
func (r *StudentRepository) ListDirectory(ctx context.Context) ([]models.StudentDirectoryRow, error) {
	query := `
		SELECT s.student_id, s.user_id, s.roll_number, u.full_name, u.email, s.department, s.semester
		FROM students s
		JOIN users u ON u.user_id = s.user_id
		ORDER BY s.roll_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var result []models.StudentDirectoryRow
	for rows.Next() {
		var row models.StudentDirectoryRow
		if err := rows.Scan(&row.StudentID, &row.UserID, &row.RollNumber, &row.FullName,
			&row.Email, &row.Department, &row.Semester); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountAll returns the number of student profiles.
func (r *StudentRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountByDepartment groups student counts per department.
func (r *StudentRepository) CountByDepartment(ctx context.Context) ([]models.DeptCountRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT department, COUNT(*) FROM students GROUP BY department ORDER BY department`)
	if err != nil {
		return nil, fmt.Errorf("error counting students by department: %w", err)
	}
	defer rows.Close()

	var result []models.DeptCountRow
	for rows.Next() {
		var row models.DeptCountRow
		if err := rows.Scan(&row.Department, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning department count: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
