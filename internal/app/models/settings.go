package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds per-user preferences.
type UserSettings struct {
	ID                   uuid.UUID `json:"settings_id" db:"settings_id"`
	UserID               uuid.UUID `json:"user_id" db:"user_id"`
	NotificationsEnabled bool      `json:"notifications_enabled" db:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
