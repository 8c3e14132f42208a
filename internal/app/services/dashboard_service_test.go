package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlink/attendlink/internal/app/models"
)

type dashboardFixture struct {
	svc       *DashboardService
	users     *fakeUserStore
	students  *fakeStudentStore
	faculty   *fakeFacultyStore
	courses   *fakeCourseStore
	records   *fakeAttendanceStore
	summaries *fakeSummaryStore
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		users:     newFakeUserStore(),
		students:  &fakeStudentStore{},
		faculty:   &fakeFacultyStore{},
		courses:   newFakeCourseStore(),
		records:   newFakeAttendanceStore(),
		summaries: newFakeSummaryStore(),
	}
	f.svc = NewDashboardService(f.users, f.students, f.faculty, f.courses, f.records, f.summaries)
	return f
}

func (f *dashboardFixture) addStudentUser(t *testing.T) (*models.User, *models.Student) {
	t.Helper()

	user := &models.User{
		Email:    "maya@college.edu",
		Role:     models.RoleStudent,
		FullName: "Maya Patel",
	}
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

func summaryRow(code, name string, total, attended, late int, percentage float64, shortage bool) models.EnrollmentSummaryRow {
	return models.EnrollmentSummaryRow{
		Summary: models.AttendanceSummary{
			EnrollmentID:         uuid.New(),
			TotalClasses:         total,
			ClassesAttended:      attended,
			ClassesLate:          late,
			AttendancePercentage: percentage,
			ShortageStatus:       shortage,
		},
		CourseCode:   code,
		CourseName:   name,
		AcademicYear: "2026-2027",
	}
}

func TestStudentDashboardWeightsOverallByClassCount(t *testing.T) {
	f := newDashboardFixture()
	user, _ := f.addStudentUser(t)

	// 30/40 and 10/10 attended: weighted overall 80, plain average 87.5
	f.summaries.studentRows = []models.EnrollmentSummaryRow{
		summaryRow("CS301", "Operating Systems", 40, 28, 2, 75, false),
		summaryRow("CS302", "Databases", 10, 10, 0, 100, false),
	}

	resp, err := f.svc.StudentDashboard(context.Background(), user.ID)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, resp.OverallPercentage, 0.001)
	require.Len(t, resp.Courses, 2)
	assert.Equal(t, 30, resp.Courses[0].Attended)
	assert.Equal(t, "Maya Patel", resp.StudentInfo.FullName)
	assert.Equal(t, "STU12AB34CD", resp.StudentInfo.RollNumber)
	require.NotNil(t, resp.StudentID)
}

func TestStudentOverviewAveragesCoursePercentages(t *testing.T) {
	f := newDashboardFixture()
	user, _ := f.addStudentUser(t)

	f.summaries.studentRows = []models.EnrollmentSummaryRow{
		summaryRow("CS301", "Operating Systems", 40, 28, 2, 75, false),
		summaryRow("CS302", "Databases", 10, 10, 0, 100, false),
	}

	resp, err := f.svc.StudentOverview(context.Background(), user.ID)
	require.NoError(t, err)

	assert.InDelta(t, 87.5, resp.OverallPercentage, 0.001)
	assert.Empty(t, resp.StudentInfo.FullName)
	assert.Nil(t, resp.StudentID)
}

func TestStudentDashboardNoEnrollments(t *testing.T) {
	f := newDashboardFixture()
	user, _ := f.addStudentUser(t)

	resp, err := f.svc.StudentDashboard(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Zero(t, resp.OverallPercentage)
	assert.Empty(t, resp.Courses)
}

func TestFacultyDashboardZeroFillsWeek(t *testing.T) {
	f := newDashboardFixture()

	user := &models.User{Email: "amir@college.edu", Role: models.RoleFaculty, FullName: "Amir Khan"}
	require.NoError(t, f.users.CreateTx(context.Background(), nil, user))
	faculty := &models.Faculty{UserID: user.ID, EmployeeID: "FACAB12CD34", Department: "Computer Science"}
	require.NoError(t, f.faculty.CreateTx(context.Background(), nil, faculty))

	f.courses.stats = []models.CourseStatsRow{
		{CourseID: uuid.New(), CourseCode: "CS301", CourseName: "Operating Systems", StudentCount: 30, AvgAttendance: 82.5},
		{CourseID: uuid.New(), CourseCode: "CS302", CourseName: "Databases", StudentCount: 20, AvgAttendance: 77.5},
	}
	f.records.activity = []models.DailyActivityRow{
		{Date: today(), Present: 25, Absent: 5},
	}

	resp, err := f.svc.FacultyDashboard(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 50, resp.Stats.TotalStudents)
	assert.Equal(t, 2, resp.Stats.TotalCourses)
	assert.InDelta(t, 80.0, resp.Stats.AvgAttendance, 0.001)

	require.Len(t, resp.DailyActivity, facultyActivityDays)
	last := resp.DailyActivity[len(resp.DailyActivity)-1]
	assert.Equal(t, 25, last.Present)
	assert.Equal(t, 5, last.Absent)
	for _, day := range resp.DailyActivity[:len(resp.DailyActivity)-1] {
		assert.Zero(t, day.Present)
		assert.Zero(t, day.Absent)
	}
}

func TestAdminDashboardTotals(t *testing.T) {
	f := newDashboardFixture()
	f.addStudentUser(t)
	f.summaries.shortages = 3
	f.students.deptRows = []models.DeptCountRow{
		{Department: "Computer Science", Count: 40},
		{Department: "Physics", Count: 25},
	}
	f.courses.performance = []models.CoursePerformanceRow{
		{CourseCode: "CS301", AvgPercentage: 82.456},
	}

	resp, err := f.svc.AdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Stats.TotalStudents)
	assert.Equal(t, 3, resp.Stats.ShortageAlerts)
	require.Len(t, resp.DeptDistribution, 2)
	assert.Equal(t, "Computer Science", resp.DeptDistribution[0].Name)
	assert.Equal(t, 40, resp.DeptDistribution[0].Value)

	require.Len(t, resp.CoursePerformance, 1)
	assert.InDelta(t, 82.46, resp.CoursePerformance[0].Present, 0.001)
	assert.InDelta(t, 17.54, resp.CoursePerformance[0].Absent, 0.001)
}

func TestStudentTrendComputesDailyPercentages(t *testing.T) {
	f := newDashboardFixture()
	user, _ := f.addStudentUser(t)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	f.records.trend = []models.DailyTrendRow{
		{Date: day, Total: 4, Attended: 3},
		{Date: day.AddDate(0, 0, 1), Total: 2, Attended: 0},
	}

	points, err := f.svc.StudentTrend(context.Background(), user.ID)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, "Aug 20", points[0].Name)
	assert.Equal(t, "2026-08-20", points[0].FullDate)
	assert.InDelta(t, 75.0, points[0].Attendance, 0.001)
	assert.Zero(t, points[1].Attendance)
}

func TestAttendanceHistoryFormatsCourseLabel(t *testing.T) {
	f := newDashboardFixture()
	user, _ := f.addStudentUser(t)

	f.records.studentRows = []models.StudentRecordRow{
		{
			Record: models.AttendanceRecord{
				ID:        uuid.New(),
				ClassDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
				Status:    models.StatusLate,
			},
			CourseCode:  "CS301",
			CourseName:  "Operating Systems",
			FacultyName: "Amir Khan",
		},
	}

	entries, err := f.svc.AttendanceHistory(context.Background(), user.ID)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "Operating Systems (CS301)", entries[0].Course)
	assert.Equal(t, "2026-08-20", entries[0].Date)
	assert.Equal(t, "late", entries[0].Status)
	assert.Equal(t, "Amir Khan", entries[0].Faculty)
}

func TestStudentDashboardMissingProfileReturnsEmpty(t *testing.T) {
	f := newDashboardFixture()

	dashboard, err := f.svc.StudentDashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, dashboard.OverallPercentage)
	assert.Empty(t, dashboard.Courses)
	assert.Equal(t, "Not Set", dashboard.StudentInfo.RollNumber)
	assert.Equal(t, "Not Set", dashboard.StudentInfo.Department)
	assert.Nil(t, dashboard.StudentID)
}

func TestStudentOverviewMissingProfileReturnsEmpty(t *testing.T) {
	f := newDashboardFixture()

	overview, err := f.svc.StudentOverview(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, overview.OverallPercentage)
	assert.Empty(t, overview.Courses)
	assert.Equal(t, "Not Set", overview.StudentInfo.RollNumber)
}

func TestFacultyDashboardMissingProfileReturnsEmpty(t *testing.T) {
	f := newDashboardFixture()

	dashboard, err := f.svc.FacultyDashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "Not Set", dashboard.FacultyInfo.EmployeeID)
	assert.Equal(t, "Not Set", dashboard.FacultyInfo.Department)
	assert.Empty(t, dashboard.Courses)
	assert.Zero(t, dashboard.Stats.TotalStudents)
}

func TestStudentTrendMissingProfileReturnsEmpty(t *testing.T) {
	f := newDashboardFixture()

	points, err := f.svc.StudentTrend(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestAttendanceHistoryMissingProfileReturnsEmpty(t *testing.T) {
	f := newDashboardFixture()

	entries, err := f.svc.AttendanceHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
