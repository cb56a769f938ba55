package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// NotificationReader defines read operations for notifications
type NotificationReader interface {
	// FindNotificationByID retrieves a specific notification by its ID.
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)

	// FindNotificationsByRecipient lists a user's notifications, newest first.
	FindNotificationsByRecipient(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notifications
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flips the read flag if the notification belongs to recipientUserID.
	// A notification owned by someone else is reported as MarkReadNotFound.
	MarkNotificationRead(ctx context.Context, notificationID string, recipientUserID string, at time.Time) (domain.MarkReadResult, error)

	// UpdateDeliveryStatus records the outcome of external delivery.
	UpdateDeliveryStatus(ctx context.Context, notificationID string, status domain.DeliveryStatus) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
