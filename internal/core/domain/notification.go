package domain

import "time"

// Notification is an immutable message addressed to a user, created as a
// side effect of ledger operations or by an administrator. Only the Read
// flag may change after creation.
type Notification struct {
	NotificationID string    `json:"notificationID"`
	UserID         string    `json:"userID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
