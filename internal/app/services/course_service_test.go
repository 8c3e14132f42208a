package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

type courseFixture struct {
	svc         *CourseService
	courses     *fakeCourseStore
	students    *fakeStudentStore
	faculty     *fakeFacultyStore
	enrollments *fakeEnrollmentStore
	summaries   *fakeSummaryStore
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		courses:     newFakeCourseStore(),
		students:    &fakeStudentStore{},
		faculty:     &fakeFacultyStore{},
		enrollments: newFakeEnrollmentStore(),
		summaries:   newFakeSummaryStore(),
	}
	f.svc = NewCourseService(fakeTxRunner{}, f.courses, f.students, f.faculty,
		f.enrollments, f.summaries)
	return f
}

func (f *courseFixture) addStudent(t *testing.T, rollNumber string) *models.Student {
	t.Helper()
	student := &models.Student{
		UserID:     uuid.New(),
		RollNumber: rollNumber,
		Department: "Computer Science",
		Semester:   5,
	}
	require.NoError(t, f.students.CreateTx(context.Background(), nil, student))
	return student
}

func (f *courseFixture) addCourse(t *testing.T) *models.Course {
	t.Helper()
	course, err := f.svc.Create(context.Background(), &dto.CreateCourseRequest{
		CourseCode: "CS301",
		CourseName: "Operating Systems",
		Department: "Computer Science",
		Semester:   5,
		Credits:    4,
	})
	require.NoError(t, err)
	return course
}

func TestCourseUpdateAppliesOnlyProvidedFields(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)

	newName := "Advanced Operating Systems"
	newCredits := 5
	updated, err := f.svc.Update(context.Background(), course.ID, &dto.UpdateCourseRequest{
		CourseName: &newName,
		Credits:    &newCredits,
	})
	require.NoError(t, err)

	assert.Equal(t, "Advanced Operating Systems", updated.CourseName)
	assert.Equal(t, 5, updated.Credits)
	assert.Equal(t, "CS301", updated.CourseCode)
	assert.Equal(t, "Computer Science", updated.Department)
}

func TestCourseUpdateUnknownCourse(t *testing.T) {
	f := newCourseFixture()

	name := "Ghost Course"
	_, err := f.svc.Update(context.Background(), uuid.New(), &dto.UpdateCourseRequest{CourseName: &name})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollInitializesSummary(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)
	student := f.addStudent(t, "STU11112222")

	enrollment, err := f.svc.Enroll(context.Background(), &dto.EnrollRequest{
		StudentID:    student.ID,
		CourseID:     course.ID,
		AcademicYear: "2026-2027",
	})
	require.NoError(t, err)

	summary, err := f.summaries.GetByEnrollment(context.Background(), enrollment.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalClasses)
	assert.False(t, summary.ShortageStatus)
}

func TestEnrollDuplicate(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)
	student := f.addStudent(t, "STU11112222")

	req := &dto.EnrollRequest{
		StudentID:    student.ID,
		CourseID:     course.ID,
		AcademicYear: "2026-2027",
	}
	_, err := f.svc.Enroll(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollUnknownStudent(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)

	_, err := f.svc.Enroll(context.Background(), &dto.EnrollRequest{
		StudentID:    uuid.New(),
		CourseID:     course.ID,
		AcademicYear: "2026-2027",
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestEnrollByRollNumberRecordsFaculty(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)
	student := f.addStudent(t, "STU11112222")

	facultyUserID := uuid.New()
	faculty := &models.Faculty{UserID: facultyUserID, EmployeeID: "FACAB12CD34"}
	require.NoError(t, f.faculty.CreateTx(context.Background(), nil, faculty))

	enrollment, err := f.svc.EnrollByRollNumber(context.Background(), facultyUserID, &dto.EnrollByRollNumberRequest{
		RollNumber:   "STU11112222",
		CourseID:     course.ID,
		AcademicYear: "2026-2027",
	})
	require.NoError(t, err)

	assert.Equal(t, student.ID, enrollment.StudentID)
	require.NotNil(t, enrollment.FacultyID)
	assert.Equal(t, faculty.ID, *enrollment.FacultyID)
}

func TestEnrollByRollNumberUnknownRoll(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)

	_, err := f.svc.EnrollByRollNumber(context.Background(), uuid.New(), &dto.EnrollByRollNumberRequest{
		RollNumber:   "STU00000000",
		CourseID:     course.ID,
		AcademicYear: "2026-2027",
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUnenrollRemovesEnrollment(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)
	student := f.addStudent(t, "STU11112222")

	_, err := f.svc.Enroll(context.Background(), &dto.EnrollRequest{
		StudentID:    student.ID,
		CourseID:     course.ID,
		AcademicYear: "2026-2027",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Unenroll(context.Background(), student.ID, course.ID))

	err = f.svc.Unenroll(context.Background(), student.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestCourseStudentsUnknownCourse(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.CourseStudents(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseStudentsMapsRows(t *testing.T) {
	f := newCourseFixture()
	course := f.addCourse(t)

	f.enrollments.courseRows = []models.CourseStudentRow{
		{
			StudentID:            uuid.New(),
			EnrollmentID:         uuid.New(),
			RollNumber:           "STU11112222",
			FullName:             "Maya Patel",
			AttendancePercentage: 68.5,
			ShortageStatus:       true,
		},
	}

	entries, err := f.svc.CourseStudents(context.Background(), course.ID)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "Maya Patel", entries[0].FullName)
	assert.InDelta(t, 68.5, entries[0].AttendancePercentage, 0.001)
	assert.True(t, entries[0].ShortageStatus)
}
