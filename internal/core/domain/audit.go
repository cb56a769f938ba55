package domain

import "time"

// AuditAction tags the kind of state change an audit entry records.
type AuditAction string

const (
	ActionAccountLinked              AuditAction = "ACCOUNT_LINKED"
	ActionAccountUnlinked            AuditAction = "ACCOUNT_UNLINKED"
	ActionVerificationFailed         AuditAction = "VERIFICATION_FAILED"
	ActionStatementViewed            AuditAction = "STATEMENT_VIEWED"
	ActionStatementDownloaded        AuditAction = "STATEMENT_DOWNLOADED"
	ActionNotificationSent           AuditAction = "NOTIFICATION_SENT"
	ActionNotificationDelivered      AuditAction = "NOTIFICATION_DELIVERED"
	ActionNotificationDeliveryFailed AuditAction = "NOTIFICATION_DELIVERY_FAILED"
	ActionNotificationSendFailed     AuditAction = "NOTIFICATION_SEND_FAILED"
	ActionNotificationRead           AuditAction = "NOTIFICATION_READ"
	ActionUserRegistered             AuditAction = "USER_REGISTERED"
	ActionUserEmailUpdated           AuditAction = "USER_EMAIL_UPDATED"
	ActionDeliveryPreferenceChanged  AuditAction = "DELIVERY_PREFERENCE_CHANGED"
	ActionCapabilityGranted          AuditAction = "CAPABILITY_GRANTED"
)

// SystemActor is the actor recorded for entries not triggered by a user request.
const SystemActor = "system"

// AuditLogEntry is an immutable record in the audit trail.
type AuditLogEntry struct {
	EntryID   int64       `json:"entryID"`
	Actor     string      `json:"actor"`
	Action    AuditAction `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
	Details   string      `json:"details"`
}

// Cursor returns the position of e in the audit trail order.
func (e AuditLogEntry) Cursor() AuditCursor {
	return AuditCursor{Timestamp: e.Timestamp, EntryID: e.EntryID}
}

// AuditCursor is a position in the (timestamp, entryID) order of the audit trail.
type AuditCursor struct {
	Timestamp time.Time `json:"timestamp"`
	EntryID   int64     `json:"entryID"`
}

// Before reports whether c sorts strictly before o.
func (c AuditCursor) Before(o AuditCursor) bool {
	if c.Timestamp.Equal(o.Timestamp) {
		return c.EntryID < o.EntryID
	}
	return c.Timestamp.Before(o.Timestamp)
}

// AuditFilter selects audit entries. Nil fields match everything.
// After resumes a query strictly past the given position.
type AuditFilter struct {
	Actor     *string
	Action    *AuditAction
	DateRange *DateRange
	After     *AuditCursor
}

// Matches reports whether e satisfies the filter.
func (f AuditFilter) Matches(e AuditLogEntry) bool {
	if f.Actor != nil && e.Actor != *f.Actor {
		return false
	}
	if f.Action != nil && e.Action != *f.Action {
		return false
	}
	if f.DateRange != nil && !f.DateRange.Contains(e.Timestamp) {
		return false
	}
	if f.After != nil && !f.After.Before(e.Cursor()) {
		return false
	}
	return true
}
