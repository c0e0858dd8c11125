package models

import "time"

// Notification is the notifications table row.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         string    `db:"user_id"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}
