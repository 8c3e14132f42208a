package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

// CourseService handles course management and enrollment.
type CourseService struct {
	tx          TxRunner
	courses     CourseStore
	students    StudentStore
	faculty     FacultyStore
	enrollments EnrollmentStore
	summaries   SummaryStore
}

// NewCourseService creates a new CourseService
func NewCourseService(tx TxRunner, courses CourseStore, students StudentStore, faculty FacultyStore,
	enrollments EnrollmentStore, summaries SummaryStore) *CourseService {
	return &CourseService{
		tx:          tx,
		courses:     courses,
		students:    students,
		faculty:     faculty,
		enrollments: enrollments,
		summaries:   summaries,
	}
}

// Create adds a new course.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		CourseCode:   req.CourseCode,
		CourseName:   req.CourseName,
		Department:   req.Department,
		Semester:     req.Semester,
		Credits:      req.Credits,
		TotalClasses: req.TotalClasses,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().Str("courseCode", course.CourseCode).Msg("Course created")
	return course, nil
}

// Get retrieves one course.
func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

// Update applies a partial update to a course.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CourseCode != nil {
		course.CourseCode = *req.CourseCode
	}
	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.TotalClasses != nil {
		course.TotalClasses = *req.TotalClasses
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course together with its enrollments and records.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("courseId", id.String()).Msg("Course deleted")
	return nil
}

// Enroll binds a student to a course and initializes the summary row in
// the same transaction.
func (s *CourseService) Enroll(ctx context.Context, req *dto.EnrollRequest) (*models.CourseEnrollment, error) {
	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	enrollment := &models.CourseEnrollment{
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		FacultyID:    req.FacultyID,
		AcademicYear: req.AcademicYear,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.enrollments.CreateTx(ctx, tx, enrollment); err != nil {
			return err
		}
		return s.summaries.InitTx(ctx, tx, enrollment.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("studentId", req.StudentID.String()).
		Str("courseId", req.CourseID.String()).Msg("Student enrolled")
	return enrollment, nil
}

// EnrollByRollNumber enrolls a student identified by roll number, with
// the calling faculty user recorded as the enrolling faculty.
func (s *CourseService) EnrollByRollNumber(ctx context.Context, facultyUserID uuid.UUID, req *dto.EnrollByRollNumberRequest) (*models.CourseEnrollment, error) {
	student, err := s.students.GetByRollNumber(ctx, req.RollNumber)
	if err != nil {
		return nil, err
	}

	faculty, err := s.faculty.GetByUserID(ctx, facultyUserID)
	if err != nil {
		return nil, err
	}

	return s.Enroll(ctx, &dto.EnrollRequest{
		StudentID:    student.ID,
		CourseID:     req.CourseID,
		FacultyID:    &faculty.ID,
		AcademicYear: req.AcademicYear,
	})
}

// Unenroll removes a student from a course. The cascade drops the
// enrollment's records and summary with it.
func (s *CourseService) Unenroll(ctx context.Context, studentID, courseID uuid.UUID) error {
	return s.enrollments.Delete(ctx, studentID, courseID)
}

// ListByFaculty returns the courses a faculty user teaches.
func (s *CourseService) ListByFaculty(ctx context.Context, facultyUserID uuid.UUID) ([]models.Course, error) {
	faculty, err := s.faculty.GetByUserID(ctx, facultyUserID)
	if err != nil {
		return nil, err
	}
	return s.courses.ListByFaculty(ctx, faculty.ID)
}

// CourseStudents returns the students enrolled in a course together with
// their current summary percentage, for the marking screen.
func (s *CourseService) CourseStudents(ctx context.Context, courseID uuid.UUID) ([]dto.CourseStudentEntry, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	rows, err := s.enrollments.ListCourseStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.CourseStudentEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.CourseStudentEntry{
			StudentID:            row.StudentID,
			EnrollmentID:         row.EnrollmentID,
			RollNumber:           row.RollNumber,
			FullName:             row.FullName,
			Email:                row.Email,
			Department:           row.Department,
			Semester:             row.Semester,
			AttendancePercentage: row.AttendancePercentage,
			ShortageStatus:       row.ShortageStatus,
		})
	}
	return entries, nil
}
