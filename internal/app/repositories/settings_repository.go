package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/attendlink/attendlink/internal/app/models"
)

// SettingsRepository manages rows in the 'user_settings' table.
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `settings_id, user_id, notifications_enabled, created_at, updated_at`

// CreateTx inserts default settings for a new user within a transaction.
func (r *SettingsRepository) CreateTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	query := `
		INSERT INTO user_settings (settings_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := tx.Exec(ctx, query, uuid.New(), userID); err != nil {
		return fmt.Errorf("error creating user settings: %w", err)
	}
	return nil
}

// Get retrieves a user's settings, creating the default row when missing.
func (r *SettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	var s models.UserSettings
	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.NotificationsEnabled,
		&s.CreatedAt, &s.UpdatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error loading user settings: %w", err)
	}

	insert := `
		INSERT INTO user_settings (settings_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = user_settings.updated_at
		RETURNING ` + settingsColumns

	err = r.db.QueryRow(ctx, insert, uuid.New(), userID).Scan(&s.ID, &s.UserID,
		&s.NotificationsEnabled, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating user settings: %w", err)
	}
	return &s, nil
}

// SetNotificationsEnabled updates the notification preference.
func (r *SettingsRepository) SetNotificationsEnabled(ctx context.Context, userID uuid.UUID, enabled bool) (*models.UserSettings, error) {
	query := `
		INSERT INTO user_settings (settings_id, user_id, notifications_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET notifications_enabled = EXCLUDED.notifications_enabled, updated_at = now()
		RETURNING ` + settingsColumns

	var s models.UserSettings
	err := r.db.QueryRow(ctx, query, uuid.New(), userID, enabled).Scan(&s.ID, &s.UserID,
		&s.NotificationsEnabled, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error updating user settings: %w", err)
	}
	return &s, nil
}

// NotificationsEnabled reports the user's preference, defaulting to true
// when no settings row exists.
func (r *SettingsRepository) NotificationsEnabled(ctx context.Context, userID uuid.UUID) (bool, error) {
	var enabled bool
	err := r.db.QueryRow(ctx,
		`SELECT notifications_enabled FROM user_settings WHERE user_id = $1`, userID).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("error loading notification preference: %w", err)
	}
	return enabled, nil
}
