package services

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// AuditAppender records actions in the audit trail.
type AuditAppender interface {
	// Append durably records an action and returns its entry id.
	// Fails only with apperrors.ErrStorageUnavailable.
	Append(ctx context.Context, actor string, action domain.AuditAction, details string, timestamp time.Time) (int64, error)
}

// AuditQuerier reads the audit trail.
type AuditQuerier interface {
	// Query returns a lazy, restartable sequence of entries ordered by timestamp then entry id.
	Query(ctx context.Context, filter domain.AuditFilter) (iter.Seq2[domain.AuditLogEntry, error], error)

	// QueryPage returns at most limit entries plus the cursor to resume from, nil when exhausted.
	QueryPage(ctx context.Context, filter domain.AuditFilter, limit int) ([]domain.AuditLogEntry, *domain.AuditCursor, error)
}

// AuditSvcFacade combines all audit-related service interfaces
type AuditSvcFacade interface {
	AuditAppender
	AuditQuerier
}
