package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
)

// AuditRepository is the in-memory append-only audit trail. Entries are kept in
// append order, which is also (timestamp, entryID) order because timestamps are
// clamped to be non-decreasing.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []domain.AuditLogEntry
	nextID  int64
}

// NewAuditRepository creates an empty audit trail.
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{nextID: 1}
}

var _ portsrepo.AuditRepositoryFacade = (*AuditRepository)(nil)

// AppendEntry implements portsrepo.AuditWriter.
func (r *AuditRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (domain.AuditLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.AuditLogEntry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.entries); n > 0 && entry.Timestamp.Before(r.entries[n-1].Timestamp) {
		entry.Timestamp = r.entries[n-1].Timestamp
	}
	entry.EntryID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry, nil
}

// FindEntries implements portsrepo.AuditReader.
func (r *AuditRepository) FindEntries(ctx context.Context, filter domain.AuditFilter, limit int) ([]domain.AuditLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if filter.After != nil {
		after := *filter.After
		start = sort.Search(len(r.entries), func(i int) bool {
			return after.Before(r.entries[i].Cursor())
		})
	}

	out := make([]domain.AuditLogEntry, 0)
	for _, e := range r.entries[start:] {
		if limit > 0 && len(out) >= limit {
			break
		}
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Len reports how many entries have been appended.
func (r *AuditRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
