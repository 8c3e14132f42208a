package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

// Trend window lengths in days.
const (
	facultyActivityDays = 7
	studentTrendDays    = 30
)

// DashboardService assembles the role-specific dashboard payloads.
type DashboardService struct {
	users     UserStore
	students  StudentStore
	faculty   FacultyStore
	courses   CourseStore
	records   AttendanceStore
	summaries SummaryStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(users UserStore, students StudentStore, faculty FacultyStore,
	courses CourseStore, records AttendanceStore, summaries SummaryStore) *DashboardService {
	return &DashboardService{
		users:     users,
		students:  students,
		faculty:   faculty,
		courses:   courses,
		records:   records,
		summaries: summaries,
	}
}

func (s *DashboardService) studentCourses(ctx context.Context, studentID uuid.UUID) ([]dto.CourseAttendance, []models.EnrollmentSummaryRow, error) {
	rows, err := s.summaries.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	courses := make([]dto.CourseAttendance, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, dto.CourseAttendance{
			CourseName:   row.CourseName,
			CourseCode:   row.CourseCode,
			Percentage:   row.Summary.AttendancePercentage,
			Shortage:     row.Summary.ShortageStatus,
			TotalClasses: row.Summary.TotalClasses,
			Attended:     row.Summary.ClassesAttended + row.Summary.ClassesLate,
			AcademicYear: row.AcademicYear,
		})
	}
	return courses, rows, nil
}

// emptyStudentDashboard is served while a student user has no profile row
// yet, so freshly registered accounts see zeros instead of a 404.
func emptyStudentDashboard() *dto.StudentDashboardResponse {
	return &dto.StudentDashboardResponse{
		Courses: []dto.CourseAttendance{},
		StudentInfo: dto.StudentInfo{
			RollNumber: "Not Set",
			Department: "Not Set",
		},
	}
}

// StudentDashboard builds the student dashboard with the overall
// percentage weighted by each course's class count, so a 10-class course
// moves the number less than a 40-class course.
func (s *DashboardService) StudentDashboard(ctx context.Context, userID uuid.UUID) (*dto.StudentDashboardResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return emptyStudentDashboard(), nil
	}
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, rows, err := s.studentCourses(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	totalClasses, totalAttended := 0, 0
	for _, row := range rows {
		totalClasses += row.Summary.TotalClasses
		totalAttended += row.Summary.ClassesAttended + row.Summary.ClassesLate
	}

	overall := 0.0
	if totalClasses > 0 {
		overall = roundPercentage(float64(totalAttended) / float64(totalClasses) * 100)
	}

	return &dto.StudentDashboardResponse{
		OverallPercentage: overall,
		Courses:           courses,
		StudentInfo: dto.StudentInfo{
			FullName:   user.FullName,
			RollNumber: student.RollNumber,
			Department: student.Department,
			Semester:   student.Semester,
		},
		StudentID: &student.ID,
	}, nil
}

// StudentOverview builds the compact per-course view with the overall
// percentage computed as the plain average of course percentages, the
// revision the course list screen has always shown.
func (s *DashboardService) StudentOverview(ctx context.Context, userID uuid.UUID) (*dto.StudentDashboardResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return emptyStudentDashboard(), nil
	}
	if err != nil {
		return nil, err
	}

	courses, rows, err := s.studentCourses(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	overall := 0.0
	if len(rows) > 0 {
		sum := 0.0
		for _, row := range rows {
			sum += row.Summary.AttendancePercentage
		}
		overall = roundPercentage(sum / float64(len(rows)))
	}

	return &dto.StudentDashboardResponse{
		OverallPercentage: overall,
		Courses:           courses,
		StudentInfo: dto.StudentInfo{
			RollNumber: student.RollNumber,
			Department: student.Department,
			Semester:   student.Semester,
		},
	}, nil
}

// FacultyDashboard builds the faculty dashboard: per-course stats,
// aggregate totals and the last week of marking activity with empty days
// zero-filled.
func (s *DashboardService) FacultyDashboard(ctx context.Context, userID uuid.UUID) (*dto.FacultyDashboardResponse, error) {
	faculty, err := s.faculty.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrFacultyNotFound) {
		return &dto.FacultyDashboardResponse{
			FacultyInfo:   dto.FacultyInfo{EmployeeID: "Not Set", Department: "Not Set"},
			Courses:       []dto.FacultyCourseStats{},
			DailyActivity: []dto.DayActivity{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.courses.StatsByFaculty(ctx, faculty.ID)
	if err != nil {
		return nil, err
	}

	courses := make([]dto.FacultyCourseStats, 0, len(stats))
	totalStudents := 0
	avgSum := 0.0
	for _, row := range stats {
		courses = append(courses, dto.FacultyCourseStats{
			CourseID:      row.CourseID,
			CourseName:    row.CourseName,
			CourseCode:    row.CourseCode,
			StudentCount:  row.StudentCount,
			AvgAttendance: roundPercentage(row.AvgAttendance),
		})
		totalStudents += row.StudentCount
		avgSum += row.AvgAttendance
	}

	avgAttendance := 0.0
	if len(stats) > 0 {
		avgAttendance = roundPercentage(avgSum / float64(len(stats)))
	}

	to := today()
	from := to.AddDate(0, 0, -(facultyActivityDays - 1))
	activity, err := s.records.ActivityByMarker(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyActivityRow, len(activity))
	for _, row := range activity {
		byDate[row.Date.Format("2006-01-02")] = row
	}

	daily := make([]dto.DayActivity, 0, facultyActivityDays)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		row := byDate[d.Format("2006-01-02")]
		daily = append(daily, dto.DayActivity{
			Date:    d.Format("Mon"),
			Present: row.Present,
			Absent:  row.Absent,
		})
	}

	return &dto.FacultyDashboardResponse{
		FacultyInfo: dto.FacultyInfo{
			EmployeeID: faculty.EmployeeID,
			Department: faculty.Department,
		},
		Courses: courses,
		Stats: dto.FacultyStats{
			TotalStudents: totalStudents,
			AvgAttendance: avgAttendance,
			TotalCourses:  len(courses),
		},
		DailyActivity: daily,
	}, nil
}

// AdminDashboard builds the campus-wide totals, department distribution
// and per-course performance split.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	totalStudents, err := s.students.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalFaculty, err := s.faculty.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.courses.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	shortages, err := s.summaries.CountShortages(ctx)
	if err != nil {
		return nil, err
	}

	deptCounts, err := s.students.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	distribution := make([]dto.NameValue, 0, len(deptCounts))
	for _, row := range deptCounts {
		distribution = append(distribution, dto.NameValue{Name: row.Department, Value: row.Count})
	}

	performance, err := s.courses.Performance(ctx)
	if err != nil {
		return nil, err
	}
	courseSplit := make([]dto.CoursePerformance, 0, len(performance))
	for _, row := range performance {
		present := roundPercentage(row.AvgPercentage)
		courseSplit = append(courseSplit, dto.CoursePerformance{
			Name:    row.CourseCode,
			Present: present,
			Absent:  roundPercentage(100 - present),
		})
	}

	return &dto.AdminDashboardResponse{
		Stats: dto.AdminStats{
			TotalStudents:  totalStudents,
			TotalFaculty:   totalFaculty,
			TotalCourses:   totalCourses,
			ShortageAlerts: shortages,
		},
		DeptDistribution:  distribution,
		CoursePerformance: courseSplit,
	}, nil
}

// StudentTrend returns the last month of per-day attendance percentages
// for the calling student. Days without records are omitted.
func (s *DashboardService) StudentTrend(ctx context.Context, userID uuid.UUID) ([]dto.TrendPoint, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return []dto.TrendPoint{}, nil
	}
	if err != nil {
		return nil, err
	}

	to := today()
	from := to.AddDate(0, 0, -(studentTrendDays - 1))
	rows, err := s.records.TrendByStudent(ctx, student.ID, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]dto.TrendPoint, 0, len(rows))
	for _, row := range rows {
		pct := 0.0
		if row.Total > 0 {
			pct = roundPercentage(float64(row.Attended) / float64(row.Total) * 100)
		}
		points = append(points, dto.TrendPoint{
			Name:       row.Date.Format("Jan 2"),
			Attendance: pct,
			FullDate:   row.Date.Format("2006-01-02"),
		})
	}
	return points, nil
}

// AttendanceHistory returns the calling student's full record history,
// newest first.
func (s *DashboardService) AttendanceHistory(ctx context.Context, userID uuid.UUID) ([]dto.AttendanceEntry, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return []dto.AttendanceEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.records.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.AttendanceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.AttendanceEntry{
			ID:      row.Record.ID,
			Date:    row.Record.ClassDate.Format("2006-01-02"),
			Course:  row.CourseName + " (" + row.CourseCode + ")",
			Status:  string(row.Record.Status),
			Faculty: row.FacultyName,
		})
	}
	return entries, nil
}

// MarkingHistory returns the calling faculty user's marking sessions,
// newest first.
func (s *DashboardService) MarkingHistory(ctx context.Context, userID uuid.UUID) ([]dto.MarkingSession, error) {
	rows, err := s.records.MarkingHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]dto.MarkingSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, dto.MarkingSession{
			Date:        row.ClassDate.Format("2006-01-02"),
			CourseName:  row.CourseName,
			CourseCode:  row.CourseCode,
			CourseID:    row.CourseID,
			MarkedCount: row.MarkedCount,
		})
	}
	return sessions, nil
}

// StudentDirectory lists all students for enrollment screens.
func (s *DashboardService) StudentDirectory(ctx context.Context) ([]dto.StudentDirectoryEntry, error) {
	rows, err := s.students.ListDirectory(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.StudentDirectoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.StudentDirectoryEntry{
			StudentID:  row.StudentID,
			UserID:     row.UserID,
			RollNumber: row.RollNumber,
			FullName:   row.FullName,
			Email:      row.Email,
			Department: row.Department,
			Semester:   row.Semester,
		})
	}
	return entries, nil
}
