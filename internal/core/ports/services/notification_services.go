package services

import (
	"context"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/dto"
)

// NotificationSvcFacade exposes the notification sink to the request layer.
type NotificationSvcFacade interface {
	// ListNotifications retrieves the caller's notifications, most-recent-first.
	ListNotifications(ctx context.Context, callerID string) ([]domain.Notification, error)

	// CreateNotification sends a notification to a user. Admin only.
	CreateNotification(ctx context.Context, callerID string, req dto.CreateNotificationRequest) (*domain.Notification, error)

	// MarkRead flags one of the caller's notifications as read.
	MarkRead(ctx context.Context, callerID string, notificationID string) error
}
