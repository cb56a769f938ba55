package mapping

import (
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID:  d.NotificationID,
		RecipientUserID: d.RecipientUserID,
		Type:            string(d.Type),
		Payload:         d.Payload,
		SentAt:          d.SentAt,
		IsRead:          d.Read,
		ReadAt:          d.ReadAt,
		DeliveryStatus:  string(d.DeliveryStatus),
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID:  m.NotificationID,
		RecipientUserID: m.RecipientUserID,
		Type:            domain.NotificationType(m.Type),
		Payload:         m.Payload,
		SentAt:          m.SentAt.UTC(),
		Read:            m.IsRead,
		ReadAt:          m.ReadAt,
		DeliveryStatus:  domain.DeliveryStatus(m.DeliveryStatus),
	}
}
