package mapping

import (
	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/models"
)

// ToModelNotification converts a domain.Notification to its DB row representation.
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         d.UserID,
		Title:          d.Title,
		Message:        d.Message,
		Read:           d.Read,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a DB row to the domain representation.
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Title:          m.Title,
		Message:        m.Message,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainNotificationSlice converts a slice of DB rows.
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	out := make([]domain.Notification, len(ms))
	for i, m := range ms {
		out[i] = ToDomainNotification(m)
	}
	return out
}
