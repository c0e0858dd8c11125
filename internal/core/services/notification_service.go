package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/corebank/ledgerd/internal/core/domain"
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/corebank/ledgerd/internal/middleware"
	"github.com/google/uuid"
)

const notificationListLimit = 50

type NotificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	userRepo         portsrepo.UserRepositoryFacade
}

func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

var _ portssvc.NotificationSvcFacade = (*NotificationService)(nil)

// ListNotifications retrieves the caller's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, callerID string) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, callerID, notificationListLimit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

// CreateNotification sends a notification to a user. Admin only; the target
// user must exist.
func (s *NotificationService) CreateNotification(ctx context.Context, callerID string, req dto.CreateNotificationRequest) (*domain.Notification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         req.UserID,
		Title:          req.Title,
		Message:        req.Message,
		Read:           false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return nil, err
	}

	logger.Info("Notification created",
		slog.String("notification_id", notification.NotificationID),
		slog.String("user_id", notification.UserID))
	return &notification, nil
}

// MarkRead flags one of the caller's notifications as read. The repository
// scopes the update to the caller, so another user's notification reads as
// not found.
func (s *NotificationService) MarkRead(ctx context.Context, callerID string, notificationID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, callerID)
}
