package repositories

import (
	"context"

	"github.com/corebank/ledgerd/internal/core/domain"
)

// NotificationRepositoryFacade is the append-only notification sink contract.
type NotificationRepositoryFacade interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// ListNotificationsByUser retrieves a user's notifications, most-recent-first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)

	// MarkNotificationRead flags a notification as read. The userID guards
	// against marking another user's notification.
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error
}
