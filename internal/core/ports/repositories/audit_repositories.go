package repositories

import (
	"context"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// AuditReader defines read operations for the audit trail
type AuditReader interface {
	// FindEntries returns up to limit entries matching filter, ordered by timestamp then entry id.
	FindEntries(ctx context.Context, filter domain.AuditFilter, limit int) ([]domain.AuditLogEntry, error)
}

// AuditWriter defines the single write operation the audit trail supports
type AuditWriter interface {
	// AppendEntry durably stores entry and returns it with its assigned id.
	// The stored timestamp is never earlier than any previously stored one.
	AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (domain.AuditLogEntry, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
