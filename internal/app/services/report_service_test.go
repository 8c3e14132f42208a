package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

type reportFixture struct {
	svc       *ReportService
	users     *fakeUserStore
	students  *fakeStudentStore
	records   *fakeAttendanceStore
	summaries *fakeSummaryStore
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		users:     newFakeUserStore(),
		students:  &fakeStudentStore{},
		records:   newFakeAttendanceStore(),
		summaries: newFakeSummaryStore(),
	}
	f.svc = NewReportService(f.users, f.students, f.records, f.summaries)
	return f
}

func (f *reportFixture) addStudent(t *testing.T) (*models.User, *models.Student) {
	t.Helper()

	user := &models.User{Email: "maya@college.edu", Role: models.RoleStudent, FullName: "Maya Patel"}
	require.NoError(t, f.users.CreateTx(context.Background(), nil, user))

	student := &models.Student{
		UserID:     user.ID,
		RollNumber: "STU12AB34CD",
		Department: "Computer Science",
		Semester:   5,
	}
	require.NoError(t, f.students.CreateTx(context.Background(), nil, student))
	return user, student
}

func TestStudentPDFProducesDocument(t *testing.T) {
	f := newReportFixture()
	_, student := f.addStudent(t)

	f.summaries.studentRows = []models.EnrollmentSummaryRow{
		summaryRow("CS301", "Operating Systems", 20, 14, 1, 75, false),
	}
	f.records.studentRows = []models.StudentRecordRow{
		{
			Record: models.AttendanceRecord{
				ClassDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
				Status:    models.StatusPresent,
			},
			CourseCode: "CS301",
		},
	}

	content, filename, err := f.svc.StudentPDF(context.Background(), uuid.New(), models.RoleAdmin, student.ID)
	require.NoError(t, err)

	assert.Equal(t, "attendance_STU12AB34CD.pdf", filename)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestStudentExcelProducesWorkbook(t *testing.T) {
	f := newReportFixture()
	_, student := f.addStudent(t)

	content, filename, err := f.svc.StudentExcel(context.Background(), uuid.New(), models.RoleFaculty, student.ID)
	require.NoError(t, err)

	assert.Equal(t, "attendance_STU12AB34CD.xlsx", filename)
	// XLSX files are ZIP archives
	assert.True(t, bytes.HasPrefix(content, []byte("PK")))
}

func TestStudentReportOwnReportAllowed(t *testing.T) {
	f := newReportFixture()
	user, student := f.addStudent(t)

	_, _, err := f.svc.StudentPDF(context.Background(), user.ID, models.RoleStudent, student.ID)
	assert.NoError(t, err)
}

func TestStudentReportForeignReportDenied(t *testing.T) {
	f := newReportFixture()
	user, _ := f.addStudent(t)

	_, _, err := f.svc.StudentPDF(context.Background(), user.ID, models.RoleStudent, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStudentReportUnknownStudent(t *testing.T) {
	f := newReportFixture()

	_, _, err := f.svc.StudentPDF(context.Background(), uuid.New(), models.RoleAdmin, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
