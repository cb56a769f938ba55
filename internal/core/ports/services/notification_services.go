package services

import (
	"context"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// NotificationSender creates notifications and hands them to the transport.
type NotificationSender interface {
	// Send stores the notification and schedules external delivery. The returned id is
	// valid regardless of the delivery outcome.
	Send(ctx context.Context, recipientUserID string, notificationType domain.NotificationType, payload string) (string, error)
}

// NotificationReaderSvc defines read operations for notifications
type NotificationReaderSvc interface {
	// ListNotifications lists the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
}

// NotificationReadMarker flips the read flag.
type NotificationReadMarker interface {
	// MarkRead marks a notification owned by userID as read.
	MarkRead(ctx context.Context, userID, notificationID string) (domain.MarkReadResult, error)
}

// NotificationSvcFacade combines all notification-related service interfaces
type NotificationSvcFacade interface {
	NotificationSender
	NotificationReaderSvc
	NotificationReadMarker

	// WaitForDeliveries blocks until in-flight external deliveries finish.
	WaitForDeliveries()
}

// NotificationTransport delivers a notification to an external channel (email, SMS, push).
type NotificationTransport interface {
	Deliver(ctx context.Context, notification domain.Notification, channel domain.DeliveryPreference) error
}
