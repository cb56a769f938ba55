package models

import "time"

// AuditLogEntry represents a row of the append-only audit_log table.
type AuditLogEntry struct {
	EntryID   int64     `db:"entry_id"`
	Actor     string    `db:"actor"`
	Action    string    `db:"action"`
	Timestamp time.Time `db:"ts"`
	Details   string    `db:"details"`
}
