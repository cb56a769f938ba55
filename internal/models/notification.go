package models

import "time"

// Notification represents a row of the notifications table.
type Notification struct {
	NotificationID  string     `db:"notification_id"`
	RecipientUserID string     `db:"recipient_user_id"`
	Type            string     `db:"notification_type"`
	Payload         string     `db:"payload"`
	SentAt          time.Time  `db:"sent_at"`
	IsRead          bool       `db:"is_read"`
	ReadAt          *time.Time `db:"read_at"`
	DeliveryStatus  string     `db:"delivery_status"`
}
