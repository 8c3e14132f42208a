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

// FacultyRepository manages rows in the 'faculty' table.
type FacultyRepository struct {
	db *pgxpool.Pool
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{db: db}
}

const facultyColumns = `faculty_id, user_id, employee_id, department, designation, specialization, created_at`

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var f models.Faculty
	err := row.Scan(&f.ID, &f.UserID, &f.EmployeeID, &f.Department, &f.Designation,
		&f.Specialization, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error scanning faculty: %w", err)
	}
	return &f, nil
}

// CreateTx inserts a faculty profile within a transaction.
func (r *FacultyRepository) CreateTx(ctx context.Context, tx pgx.Tx, faculty *models.Faculty) error {
	faculty.ID = uuid.New()

	query := `
		INSERT INTO faculty (faculty_id, user_id, employee_id, department, designation, specialization)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query, faculty.ID, faculty.UserID, faculty.EmployeeID,
		faculty.Department, faculty.Designation, faculty.Specialization).Scan(&faculty.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating faculty profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a faculty profile by user ID.
func (r *FacultyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Faculty, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculty WHERE user_id = $1`
	return scanFaculty(r.db.QueryRow(ctx, query, userID))
}

// GetByID retrieves a faculty profile by faculty ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Faculty, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculty WHERE faculty_id = $1`
	return scanFaculty(r.db.QueryRow(ctx, query, id))
}

// CountAll returns the number of faculty profiles.
func (r *FacultyRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM faculty`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting faculty: %w", err)
	}
	return count, nil
}
