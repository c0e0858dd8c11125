package dto

import (
	"time"

	"github.com/corebank/ledgerd/internal/core/domain"
)

// CreateNotificationRequest is the admin payload for sending a notification.
type CreateNotificationRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its response DTO.
func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ToListNotificationResponse converts a slice of domain notifications.
func ToListNotificationResponse(ns []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		res[i] = ToNotificationResponse(n)
	}
	return res
}
