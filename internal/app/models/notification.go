package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a per-user message with a read flag.
type Notification struct {
	ID        uuid.UUID `json:"notification_id" db:"notification_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
