package domain

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationAccountLinked      NotificationType = "ACCOUNT_LINKED"
	NotificationAccountUnlinked    NotificationType = "ACCOUNT_UNLINKED"
	NotificationStatementAvailable NotificationType = "STATEMENT_AVAILABLE"
	NotificationSecurityAlert      NotificationType = "SECURITY_ALERT"
	NotificationGeneral            NotificationType = "GENERAL"
)

// DeliveryStatus tracks the external delivery attempt for a notification.
type DeliveryStatus string

const (
	DeliveryPending                DeliveryStatus = "PENDING"
	DeliveryDeliveredExternally    DeliveryStatus = "DELIVERED_EXTERNALLY"
	DeliveryExternalDeliveryFailed DeliveryStatus = "EXTERNAL_DELIVERY_FAILED"
)

// Notification is a message addressed to a single user.
// Read only ever moves from false to true.
type Notification struct {
	NotificationID  string           `json:"notificationID"`
	RecipientUserID string           `json:"recipientUserID"`
	Type            NotificationType `json:"type"`
	Payload         string           `json:"payload"`
	SentAt          time.Time        `json:"sentAt"`
	Read            bool             `json:"read"`
	ReadAt          *time.Time       `json:"readAt,omitempty"`
	DeliveryStatus  DeliveryStatus   `json:"deliveryStatus"`
}

// MarkReadResult is the outcome of marking a notification read.
type MarkReadResult string

const (
	MarkReadMarked      MarkReadResult = "MARKED"
	MarkReadAlreadyRead MarkReadResult = "ALREADY_READ"
	MarkReadNotFound    MarkReadResult = "NOT_FOUND"
)

// Succeeded reports whether the result counts as success for idempotent callers.
func (r MarkReadResult) Succeeded() bool {
	return r == MarkReadMarked || r == MarkReadAlreadyRead
}
