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

type notificationFixture struct {
	svc           *NotificationService
	notifications *fakeNotificationStore
	settings      *fakeSettingsStore
	enrollments   *fakeEnrollmentStore
	courses       *fakeCourseStore
}

func newNotificationFixture() *notificationFixture {
	f := &notificationFixture{
		notifications: &fakeNotificationStore{},
		settings:      newFakeSettingsStore(),
		enrollments:   newFakeEnrollmentStore(),
		courses:       newFakeCourseStore(),
	}
	f.svc = NewNotificationService(f.notifications, f.settings, f.enrollments, f.courses)
	return f
}

func TestSendReminderSkipsDisabledStudents(t *testing.T) {
	f := newNotificationFixture()

	course := &models.Course{CourseCode: "CS301", CourseName: "Operating Systems"}
	require.NoError(t, f.courses.Create(context.Background(), course))

	enabledUser := uuid.New()
	disabledUser := uuid.New()
	f.enrollments.userIDs = []uuid.UUID{enabledUser, disabledUser}
	f.settings.enabled[disabledUser] = false

	sent, err := f.svc.SendReminder(context.Background(), &dto.SendReminderRequest{
		CourseID: course.ID,
		Title:    "Class tomorrow",
		Message:  "OS lecture moved to room 204.",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, f.notifications.notifications, 1)
	notification := f.notifications.notifications[0]
	assert.Equal(t, enabledUser, notification.UserID)
	assert.Equal(t, "reminder", notification.Type)
	assert.Equal(t, "Class tomorrow", notification.Title)
}

func TestSendReminderEmptyCourse(t *testing.T) {
	f := newNotificationFixture()

	course := &models.Course{CourseCode: "CS301"}
	require.NoError(t, f.courses.Create(context.Background(), course))

	_, err := f.svc.SendReminder(context.Background(), &dto.SendReminderRequest{
		CourseID: course.ID,
		Title:    "Hello",
		Message:  "World",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoEnrollments)
}

func TestSendReminderUnknownCourse(t *testing.T) {
	f := newNotificationFixture()

	_, err := f.svc.SendReminder(context.Background(), &dto.SendReminderRequest{
		CourseID: uuid.New(),
		Title:    "Hello",
		Message:  "World",
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestMarkAllReadCountsOnlyUnread(t *testing.T) {
	f := newNotificationFixture()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.notifications.Create(context.Background(), &models.Notification{
			UserID: userID, Title: "t", Message: "m", Type: "reminder",
		}))
	}
	f.notifications.notifications[0].IsRead = true

	updated, err := f.svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	updated, err = f.svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestUpdateSettingsTogglesPreference(t *testing.T) {
	f := newNotificationFixture()
	userID := uuid.New()

	disabled := false
	settings, err := f.svc.UpdateSettings(context.Background(), userID, &dto.UpdateSettingsRequest{
		NotificationsEnabled: &disabled,
	})
	require.NoError(t, err)
	assert.False(t, settings.NotificationsEnabled)

	settings, err = f.svc.GetSettings(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, settings.NotificationsEnabled)
}
