package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

// NotificationService handles per-user notifications and preferences.
type NotificationService struct {
	notifications NotificationStore
	settings      SettingsStore
	enrollments   EnrollmentStore
	courses       CourseStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications NotificationStore, settings SettingsStore,
	enrollments EnrollmentStore, courses CourseStore) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		settings:      settings,
		enrollments:   enrollments,
		courses:       courses,
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// MarkAllRead flips every unread notification and returns the count.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// SendReminder fans a reminder out to every student enrolled in the
// course. Students who disabled notifications are skipped. Returns how
// many notifications were created.
func (s *NotificationService) SendReminder(ctx context.Context, req *dto.SendReminderRequest) (int, error) {
	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return 0, err
	}

	userIDs, err := s.enrollments.ListStudentUserIDs(ctx, req.CourseID)
	if err != nil {
		return 0, err
	}
	if len(userIDs) == 0 {
		return 0, apperrors.ErrNoEnrollments
	}

	sent := 0
	for _, userID := range userIDs {
		enabled, err := s.settings.NotificationsEnabled(ctx, userID)
		if err != nil {
			return sent, err
		}
		if !enabled {
			continue
		}

		notification := &models.Notification{
			UserID:  userID,
			Title:   req.Title,
			Message: req.Message,
			Type:    "reminder",
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			return sent, err
		}
		sent++
	}

	logger.Info().Str("courseId", req.CourseID.String()).Int("sent", sent).Msg("Course reminder sent")
	return sent, nil
}

// GetSettings returns the user's preferences, creating defaults when the
// user has none yet.
func (s *NotificationService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	return s.settings.Get(ctx, userID)
}

// UpdateSettings applies a preference change.
func (s *NotificationService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	return s.settings.SetNotificationsEnabled(ctx, userID, *req.NotificationsEnabled)
}
