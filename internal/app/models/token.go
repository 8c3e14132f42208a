package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-limited reset credential.
type PasswordResetToken struct {
	ID        uuid.UUID `json:"token_id" db:"token_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
