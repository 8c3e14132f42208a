package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/db"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. The Tx variants ignore the
// transaction handle, so fakeTxRunner can pass nil.

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) CreateTx(_ context.Context, _ pgx.Tx, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.IsActive = true
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdatePasswordTx(_ context.Context, _ pgx.Tx, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeStudentStore struct {
	students  []*models.Student
	directory []models.StudentDirectoryRow
	deptRows  []models.DeptCountRow
}

func (f *fakeStudentStore) CreateTx(_ context.Context, _ pgx.Tx, student *models.Student) error {
	student.ID = uuid.New()
	f.students = append(f.students, student)
	return nil
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Student, error) {
	for _, s := range f.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByRollNumber(_ context.Context, rollNumber string) (*models.Student, error) {
	for _, s := range f.students {
		if s.RollNumber == rollNumber {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) ListDirectory(_ context.Context) ([]models.StudentDirectoryRow, error) {
	return f.directory, nil
}

func (f *fakeStudentStore) CountAll(_ context.Context) (int, error) {
	return len(f.students), nil
}

func (f *fakeStudentStore) CountByDepartment(_ context.Context) ([]models.DeptCountRow, error) {
	return f.deptRows, nil
}

type fakeFacultyStore struct {
	faculty []*models.Faculty
}

func (f *fakeFacultyStore) CreateTx(_ context.Context, _ pgx.Tx, faculty *models.Faculty) error {
	faculty.ID = uuid.New()
	f.faculty = append(f.faculty, faculty)
	return nil
}

func (f *fakeFacultyStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Faculty, error) {
	for _, fac := range f.faculty {
		if fac.UserID == userID {
			return fac, nil
		}
	}
	return nil, apperrors.ErrFacultyNotFound
}

func (f *fakeFacultyStore) CountAll(_ context.Context) (int, error) {
	return len(f.faculty), nil
}

type fakeCourseStore struct {
	courses     map[uuid.UUID]*models.Course
	stats       []models.CourseStatsRow
	performance []models.CoursePerformanceRow
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uuid.UUID]*models.Course)}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = uuid.New()
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) List(_ context.Context) ([]models.Course, error) {
	out := make([]models.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) ListByFaculty(_ context.Context, _ uuid.UUID) ([]models.Course, error) {
	return nil, nil
}

func (f *fakeCourseStore) StatsByFaculty(_ context.Context, _ uuid.UUID) ([]models.CourseStatsRow, error) {
	return f.stats, nil
}

func (f *fakeCourseStore) CountAll(_ context.Context) (int, error) {
	return len(f.courses), nil
}

func (f *fakeCourseStore) Performance(_ context.Context) ([]models.CoursePerformanceRow, error) {
	return f.performance, nil
}

type fakeEnrollmentStore struct {
	enrollments []*models.CourseEnrollment
	meta        map[uuid.UUID]*models.EnrollmentMeta
	userIDs     []uuid.UUID
	courseRows  []models.CourseStudentRow
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{meta: make(map[uuid.UUID]*models.EnrollmentMeta)}
}

func (f *fakeEnrollmentStore) CreateTx(_ context.Context, _ pgx.Tx, enrollment *models.CourseEnrollment) error {
	for _, e := range f.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID &&
			e.AcademicYear == enrollment.AcademicYear {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = uuid.New()
	enrollment.EnrollmentDate = time.Now()
	f.enrollments = append(f.enrollments, enrollment)
	return nil
}

func (f *fakeEnrollmentStore) GetByStudentAndCourse(_ context.Context, studentID, courseID uuid.UUID) (*models.CourseEnrollment, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.CourseEnrollment, error) {
	var out []models.CourseEnrollment
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) GetMeta(_ context.Context, enrollmentID uuid.UUID) (*models.EnrollmentMeta, error) {
	if m, ok := f.meta[enrollmentID]; ok {
		return m, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) ListStudentUserIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.userIDs, nil
}

func (f *fakeEnrollmentStore) ListCourseStudents(_ context.Context, _ uuid.UUID) ([]models.CourseStudentRow, error) {
	return f.courseRows, nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, studentID, courseID uuid.UUID) error {
	for i, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			f.enrollments = append(f.enrollments[:i], f.enrollments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}

type fakeAttendanceStore struct {
	records map[string]*models.AttendanceRecord
	// enrollment -> course, used by ExistsForCourseDate
	courseOf map[uuid.UUID]uuid.UUID

	studentRows []models.StudentRecordRow
	activity    []models.DailyActivityRow
	trend       []models.DailyTrendRow
	sessions    []models.MarkingSessionRow
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		records:  make(map[string]*models.AttendanceRecord),
		courseOf: make(map[uuid.UUID]uuid.UUID),
	}
}

func recordKey(enrollmentID uuid.UUID, classDate time.Time) string {
	return enrollmentID.String() + "|" + classDate.Format("2006-01-02")
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, record *models.AttendanceRecord) error {
	record.ID = uuid.New()
	record.MarkedAt = time.Now()
	f.records[recordKey(record.EnrollmentID, record.ClassDate)] = record
	return nil
}

func (f *fakeAttendanceStore) ExistsForCourseDate(_ context.Context, courseID uuid.UUID, classDate time.Time) (bool, error) {
	for _, r := range f.records {
		if f.courseOf[r.EnrollmentID] == courseID && r.ClassDate.Equal(classDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceStore) ListByCourseDate(_ context.Context, courseID uuid.UUID, classDate time.Time) ([]models.AttendanceRecord, error) {
	var result []models.AttendanceRecord
	for _, r := range f.records {
		if f.courseOf[r.EnrollmentID] == courseID && r.ClassDate.Equal(classDate) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeAttendanceStore) CountByStatus(_ context.Context, enrollmentID uuid.UUID) (*models.StatusCounts, error) {
	counts := &models.StatusCounts{}
	for _, r := range f.records {
		if r.EnrollmentID != enrollmentID {
			continue
		}
		counts.Total++
		switch r.Status {
		case models.StatusPresent:
			counts.Present++
		case models.StatusAbsent:
			counts.Absent++
		case models.StatusLate:
			counts.Late++
		case models.StatusExcused:
			counts.Excused++
		}
	}
	return counts, nil
}

func (f *fakeAttendanceStore) ListByStudent(_ context.Context, _ uuid.UUID) ([]models.StudentRecordRow, error) {
	return f.studentRows, nil
}

func (f *fakeAttendanceStore) ActivityByMarker(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]models.DailyActivityRow, error) {
	return f.activity, nil
}

func (f *fakeAttendanceStore) TrendByStudent(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]models.DailyTrendRow, error) {
	return f.trend, nil
}

func (f *fakeAttendanceStore) MarkingHistory(_ context.Context, _ uuid.UUID) ([]models.MarkingSessionRow, error) {
	return f.sessions, nil
}

type fakeSummaryStore struct {
	summaries   map[uuid.UUID]*models.AttendanceSummary
	studentRows []models.EnrollmentSummaryRow
	shortages   int
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{summaries: make(map[uuid.UUID]*models.AttendanceSummary)}
}

func (f *fakeSummaryStore) InitTx(_ context.Context, _ pgx.Tx, enrollmentID uuid.UUID) error {
	if _, ok := f.summaries[enrollmentID]; !ok {
		f.summaries[enrollmentID] = &models.AttendanceSummary{
			ID:           uuid.New(),
			EnrollmentID: enrollmentID,
		}
	}
	return nil
}

func (f *fakeSummaryStore) Upsert(_ context.Context, summary *models.AttendanceSummary) error {
	summary.ID = uuid.New()
	summary.LastUpdated = time.Now()
	copied := *summary
	f.summaries[summary.EnrollmentID] = &copied
	return nil
}

func (f *fakeSummaryStore) GetByEnrollment(_ context.Context, enrollmentID uuid.UUID) (*models.AttendanceSummary, error) {
	if s, ok := f.summaries[enrollmentID]; ok {
		return s, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeSummaryStore) ListByStudent(_ context.Context, _ uuid.UUID) ([]models.EnrollmentSummaryRow, error) {
	return f.studentRows, nil
}

func (f *fakeSummaryStore) CountShortages(_ context.Context) (int, error) {
	return f.shortages, nil
}

type fakeThresholdStore struct {
	minimum float64
	warning float64
	found   bool
}

func (f *fakeThresholdStore) Resolve(_ context.Context, _ uuid.UUID, _ string) (float64, float64, bool, error) {
	return f.minimum, f.warning, f.found, nil
}

type fakeShortageReportStore struct {
	reports []*models.ShortageReport
}

func (f *fakeShortageReportStore) Create(_ context.Context, report *models.ShortageReport) error {
	report.ID = uuid.New()
	f.reports = append(f.reports, report)
	return nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	updated := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

type fakeSettingsStore struct {
	enabled map[uuid.UUID]bool
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{enabled: make(map[uuid.UUID]bool)}
}

func (f *fakeSettingsStore) CreateTx(_ context.Context, _ pgx.Tx, userID uuid.UUID) error {
	if _, ok := f.enabled[userID]; !ok {
		f.enabled[userID] = true
	}
	return nil
}

func (f *fakeSettingsStore) Get(_ context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	enabled, ok := f.enabled[userID]
	if !ok {
		enabled = true
		f.enabled[userID] = true
	}
	return &models.UserSettings{UserID: userID, NotificationsEnabled: enabled}, nil
}

func (f *fakeSettingsStore) SetNotificationsEnabled(_ context.Context, userID uuid.UUID, enabled bool) (*models.UserSettings, error) {
	f.enabled[userID] = enabled
	return &models.UserSettings{UserID: userID, NotificationsEnabled: enabled}, nil
}

func (f *fakeSettingsStore) NotificationsEnabled(_ context.Context, userID uuid.UUID) (bool, error) {
	if enabled, ok := f.enabled[userID]; ok {
		return enabled, nil
	}
	return true, nil
}

type fakeResetTokenStore struct {
	tokens map[string]*models.PasswordResetToken
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: make(map[string]*models.PasswordResetToken)}
}

func (f *fakeResetTokenStore) Create(_ context.Context, t *models.PasswordResetToken) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeResetTokenStore) GetByToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, apperrors.ErrResetTokenInvalid
}

func (f *fakeResetTokenStore) MarkUsedTx(_ context.Context, _ pgx.Tx, tokenID uuid.UUID) error {
	for _, t := range f.tokens {
		if t.ID == tokenID {
			if t.UsedAt != nil {
				return apperrors.ErrResetTokenUsed
			}
			now := time.Now()
			t.UsedAt = &now
			return nil
		}
	}
	return apperrors.ErrResetTokenInvalid
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(user *models.User) (string, int, error) {
	return "token-" + user.Email, 3600, nil
}
