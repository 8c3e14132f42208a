package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

// Fallback thresholds used when no active threshold row matches.
const (
	defaultMinimumPercentage = 75.0
	defaultWarningPercentage = 80.0
)

// AttendanceService handles attendance marking and summary aggregation.
type AttendanceService struct {
	courses         CourseStore
	enrollments     EnrollmentStore
	records         AttendanceStore
	summaries       SummaryStore
	thresholds      ThresholdStore
	shortageReports ShortageReportStore
	notifications   NotificationStore
	settings        SettingsStore
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(courses CourseStore, enrollments EnrollmentStore, records AttendanceStore,
	summaries SummaryStore, thresholds ThresholdStore, shortageReports ShortageReportStore,
	notifications NotificationStore, settings SettingsStore) *AttendanceService {
	return &AttendanceService{
		courses:         courses,
		enrollments:     enrollments,
		records:         records,
		summaries:       summaries,
		thresholds:      thresholds,
		shortageReports: shortageReports,
		notifications:   notifications,
		settings:        settings,
	}
}

// roundPercentage rounds to two decimal places.
func roundPercentage(v float64) float64 {
	return math.Round(v*100) / 100
}

// attendancePercentage treats present and late as attended.
func attendancePercentage(counts *models.StatusCounts) float64 {
	if counts.Total == 0 {
		return 0
	}
	return roundPercentage(float64(counts.Present+counts.Late) / float64(counts.Total) * 100)
}

// classifyBand places a percentage into a shortage band. An enrollment
// with no records yet is always normal.
func classifyBand(percentage, minimum, warning float64, total int) models.ShortageType {
	if total == 0 {
		return models.ShortageNormal
	}
	if percentage < minimum {
		return models.ShortageCritical
	}
	if percentage < warning {
		return models.ShortageWarning
	}
	return models.ShortageNormal
}

// today returns the current date with the clock zeroed, matching the
// DATE column the records key on.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// RecomputeSummary rebuilds the cached aggregate of one enrollment from
// its records, resolves the applicable threshold and reacts to shortage
// band transitions. Running it twice with unchanged records is a no-op
// apart from the last_updated stamp.
func (s *AttendanceService) RecomputeSummary(ctx context.Context, enrollmentID uuid.UUID) (*models.AttendanceSummary, error) {
	meta, err := s.enrollments.GetMeta(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	counts, err := s.records.CountByStatus(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	minimum, warning, found, err := s.thresholds.Resolve(ctx, meta.CourseID, meta.CourseDepartment)
	if err != nil {
		return nil, err
	}
	if !found {
		minimum, warning = defaultMinimumPercentage, defaultWarningPercentage
	}

	percentage := attendancePercentage(counts)
	band := classifyBand(percentage, minimum, warning, counts.Total)

	previousBand := models.ShortageNormal
	if previous, err := s.summaries.GetByEnrollment(ctx, enrollmentID); err == nil {
		previousBand = classifyBand(previous.AttendancePercentage, minimum, warning, previous.TotalClasses)
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	summary := &models.AttendanceSummary{
		EnrollmentID:         enrollmentID,
		TotalClasses:         counts.Total,
		ClassesAttended:      counts.Present,
		ClassesAbsent:        counts.Absent,
		ClassesLate:          counts.Late,
		ClassesExcused:       counts.Excused,
		AttendancePercentage: percentage,
		ShortageStatus:       band == models.ShortageCritical,
	}
	if err := s.summaries.Upsert(ctx, summary); err != nil {
		return nil, err
	}

	if band != models.ShortageNormal && band != previousBand {
		s.reportShortage(ctx, meta, summary, band)
	}

	return summary, nil
}

// reportShortage records the band transition and notifies the student.
// Reporting failures are logged, not propagated: the summary is already
// correct and the marking operation must not fail because of it.
func (s *AttendanceService) reportShortage(ctx context.Context, meta *models.EnrollmentMeta,
	summary *models.AttendanceSummary, band models.ShortageType) {

	enabled, err := s.settings.NotificationsEnabled(ctx, meta.StudentUserID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load notification preference")
		enabled = false
	}

	report := &models.ShortageReport{
		EnrollmentID:         meta.EnrollmentID,
		AttendancePercentage: summary.AttendancePercentage,
		ShortageType:         band,
		NotificationSent:     enabled,
	}
	if err := s.shortageReports.Create(ctx, report); err != nil {
		logger.Error().Err(err).Str("enrollmentId", meta.EnrollmentID.String()).Msg("Failed to record shortage report")
		return
	}

	if !enabled {
		return
	}

	title := "Attendance Warning"
	message := fmt.Sprintf("Your attendance in %s (%s) dropped to %.2f%%. Please attend upcoming classes.",
		meta.CourseName, meta.CourseCode, summary.AttendancePercentage)
	if band == models.ShortageCritical {
		title = "Attendance Shortage Alert"
		message = fmt.Sprintf("Your attendance in %s (%s) is %.2f%%, below the required minimum. Contact your faculty.",
			meta.CourseName, meta.CourseCode, summary.AttendancePercentage)
	}

	notification := &models.Notification{
		UserID:  meta.StudentUserID,
		Title:   title,
		Message: message,
		Type:    "shortage_alert",
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		logger.Error().Err(err).Str("userId", meta.StudentUserID.String()).Msg("Failed to send shortage notification")
	}
}

// BulkMarkResult reports the outcome of a bulk marking request.
type BulkMarkResult struct {
	Marked  int `json:"marked"`
	Skipped int `json:"skipped"`
}

// MarkBulk records attendance for a list of students in one course on one
// class date. Students without an enrollment in the course are skipped.
// Re-marking an existing (enrollment, date) pair overwrites the record.
func (s *AttendanceService) MarkBulk(ctx context.Context, markedBy uuid.UUID, req *dto.BulkAttendanceRequest) (*BulkMarkResult, error) {
	classDate, err := time.Parse("2006-01-02", req.ClassDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("class_date must be formatted as YYYY-MM-DD")
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	result := &BulkMarkResult{}
	touched := make([]uuid.UUID, 0, len(req.AttendanceData))

	for _, mark := range req.AttendanceData {
		enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, mark.StudentID, req.CourseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		record := &models.AttendanceRecord{
			EnrollmentID: enrollment.ID,
			ClassDate:    classDate,
			Status:       models.AttendanceStatus(mark.Status),
			MarkedBy:     &markedBy,
			Remarks:      mark.Remarks,
		}
		if err := s.records.Upsert(ctx, record); err != nil {
			return nil, err
		}

		result.Marked++
		touched = append(touched, enrollment.ID)
	}

	for _, enrollmentID := range touched {
		if _, err := s.RecomputeSummary(ctx, enrollmentID); err != nil {
			return nil, err
		}
	}

	logger.Info().Str("courseId", req.CourseID.String()).Int("marked", result.Marked).
		Int("skipped", result.Skipped).Msg("Bulk attendance marked")
	return result, nil
}

// QuickMark marks every enrollment of a course with one status for today.
// It refuses to run when any record already exists for the course today,
// so a double-click cannot overwrite a finished session.
func (s *AttendanceService) QuickMark(ctx context.Context, markedBy uuid.UUID, courseID uuid.UUID, status models.AttendanceStatus) (int, error) {
	if !status.Valid() {
		return 0, apperrors.NewBadRequestError("unknown attendance status: " + string(status))
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return 0, err
	}

	classDate := today()

	exists, err := s.records.ExistsForCourseDate(ctx, courseID, classDate)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrAlreadyMarked
	}

	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if len(enrollments) == 0 {
		return 0, apperrors.ErrNoEnrollments
	}

	for _, enrollment := range enrollments {
		record := &models.AttendanceRecord{
			EnrollmentID: enrollment.ID,
			ClassDate:    classDate,
			Status:       status,
			MarkedBy:     &markedBy,
		}
		if err := s.records.Upsert(ctx, record); err != nil {
			return 0, err
		}
	}

	for _, enrollment := range enrollments {
		if _, err := s.RecomputeSummary(ctx, enrollment.ID); err != nil {
			return 0, err
		}
	}

	logger.Info().Str("courseId", courseID.String()).Int("marked", len(enrollments)).
		Str("status", string(status)).Msg("Quick attendance marked")
	return len(enrollments), nil
}

// GetSummary returns the cached aggregate of one enrollment.
func (s *AttendanceService) GetSummary(ctx context.Context, enrollmentID uuid.UUID) (*models.AttendanceSummary, error) {
	return s.summaries.GetByEnrollment(ctx, enrollmentID)
}

// StudentSummaries returns the cached per-course aggregates of one student.
func (s *AttendanceService) StudentSummaries(ctx context.Context, studentID uuid.UUID) ([]models.EnrollmentSummaryRow, error) {
	return s.summaries.ListByStudent(ctx, studentID)
}

// CourseRecords returns the raw records of one course for one class date.
func (s *AttendanceService) CourseRecords(ctx context.Context, courseID uuid.UUID, classDate time.Time) ([]models.AttendanceRecord, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.records.ListByCourseDate(ctx, courseID, classDate)
}
