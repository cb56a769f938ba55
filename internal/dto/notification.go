package dto

import (
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// NotificationResponse is a notification as shown to its recipient.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Type           domain.NotificationType `json:"type"`
	Payload        string                  `json:"payload"`
	SentAt         time.Time               `json:"sentAt"`
	Read           bool                    `json:"read"`
	ReadAt         *time.Time              `json:"readAt,omitempty"`
	DeliveryStatus domain.DeliveryStatus   `json:"deliveryStatus"`
}

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unreadOnly"`
}

// ListNotificationsResponse wraps the caller's notifications, newest first.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// MarkReadResponse reports the outcome of marking a notification read.
type MarkReadResponse struct {
	NotificationID string                `json:"notificationID"`
	Result         domain.MarkReadResult `json:"result"`
}

func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	out := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		out[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Type:           n.Type,
			Payload:        n.Payload,
			SentAt:         n.SentAt,
			Read:           n.Read,
			ReadAt:         n.ReadAt,
			DeliveryStatus: n.DeliveryStatus,
		}
	}
	return ListNotificationsResponse{Notifications: out}
}
