package services

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/telemetry"
)

const (
	DefaultAuditDetailsMaxLen = 1024
	DefaultAuditQueryPageSize = 100
)

type auditService struct {
	BaseService
	repo          portsrepo.AuditRepositoryFacade
	maxDetailsLen int
	pageSize      int
}

// AuditServiceOption is a functional option for configuring the audit service
type AuditServiceOption func(*auditService)

// WithDetailsMaxLen bounds the rune length of stored details.
func WithDetailsMaxLen(n int) AuditServiceOption {
	return func(s *auditService) {
		if n > 0 {
			s.maxDetailsLen = n
		}
	}
}

// WithQueryPageSize sets how many entries Query pulls from storage at a time.
func WithQueryPageSize(n int) AuditServiceOption {
	return func(s *auditService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithAuditClock overrides the clock used for entries appended without a timestamp.
func WithAuditClock(clock func() time.Time) AuditServiceOption {
	return func(s *auditService) {
		s.Clock = clock
	}
}

// NewAuditService creates the audit trail service.
func NewAuditService(repo portsrepo.AuditRepositoryFacade, options ...AuditServiceOption) portssvc.AuditSvcFacade {
	svc := &auditService{
		repo:          repo,
		maxDetailsLen: DefaultAuditDetailsMaxLen,
		pageSize:      DefaultAuditQueryPageSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Append(ctx context.Context, actor string, action domain.AuditAction, details string, timestamp time.Time) (int64, error) {
	if actor == "" {
		actor = domain.SystemActor
	}
	if timestamp.IsZero() {
		timestamp = s.Now()
	}

	stored, err := s.repo.AppendEntry(ctx, domain.AuditLogEntry{
		Actor:     actor,
		Action:    action,
		Timestamp: timestamp.UTC(),
		Details:   truncateRunes(details, s.maxDetailsLen),
	})
	if err != nil {
		telemetry.AuditAppendFailuresTotal.Inc()
		s.LogError(ctx, err, "Failed to append audit entry",
			slog.String("actor", actor),
			slog.String("action", string(action)))
		return 0, fmt.Errorf("append %s audit entry: %w: %w", action, apperrors.ErrStorageUnavailable, err)
	}

	telemetry.AuditEntriesAppendedTotal.WithLabelValues(string(action)).Inc()
	s.LogDebug(ctx, "Audit entry appended",
		slog.Int64("entry_id", stored.EntryID),
		slog.String("action", string(action)))
	return stored.EntryID, nil
}

func (s *auditService) Query(ctx context.Context, filter domain.AuditFilter) (iter.Seq2[domain.AuditLogEntry, error], error) {
	if err := validateAuditFilter(filter); err != nil {
		return nil, err
	}

	// Each range over the sequence starts again from the filter's own position.
	return func(yield func(domain.AuditLogEntry, error) bool) {
		page := filter
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.AuditLogEntry{}, err)
				return
			}
			entries, err := s.repo.FindEntries(ctx, page, s.pageSize)
			if err != nil {
				s.LogError(ctx, err, "Failed to read audit entries")
				yield(domain.AuditLogEntry{}, fmt.Errorf("query audit entries: %w: %w", apperrors.ErrStorageUnavailable, err))
				return
			}
			for _, e := range entries {
				if !yield(e, nil) {
					return
				}
			}
			if len(entries) < s.pageSize {
				return
			}
			cursor := entries[len(entries)-1].Cursor()
			page.After = &cursor
		}
	}, nil
}

func (s *auditService) QueryPage(ctx context.Context, filter domain.AuditFilter, limit int) ([]domain.AuditLogEntry, *domain.AuditCursor, error) {
	if err := validateAuditFilter(filter); err != nil {
		return nil, nil, err
	}
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	entries, err := s.repo.FindEntries(ctx, filter, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to read audit page")
		return nil, nil, fmt.Errorf("query audit page: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	if len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	next := entries[limit-1].Cursor()
	return entries, &next, nil
}

func validateAuditFilter(filter domain.AuditFilter) error {
	if filter.DateRange != nil && !filter.DateRange.IsValid() {
		return fmt.Errorf("%w: date range starts after it ends", apperrors.ErrValidation)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
