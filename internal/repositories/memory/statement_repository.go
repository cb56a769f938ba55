package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
)

// StatementRepository is the in-memory statement metadata store.
type StatementRepository struct {
	mu         sync.RWMutex
	statements map[string]domain.Statement
}

// NewStatementRepository creates an empty statement store.
func NewStatementRepository() *StatementRepository {
	return &StatementRepository{statements: make(map[string]domain.Statement)}
}

var _ portsrepo.StatementRepositoryFacade = (*StatementRepository)(nil)

// FindStatementByID implements portsrepo.StatementReader.
func (r *StatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.statements[statementID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

// FindStatementsByAccounts implements portsrepo.StatementReader.
func (r *StatementRepository) FindStatementsByAccounts(ctx context.Context, accountNumbers []string, dateRange domain.DateRange, after *domain.StatementCursor, limit int) ([]domain.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]domain.Statement, 0)
	for _, s := range r.statements {
		if !slices.Contains(accountNumbers, s.AccountNumber) || !dateRange.Contains(s.StatementDate) {
			continue
		}
		if after != nil && !after.Before(s.Cursor()) {
			continue
		}
		matched = append(matched, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Statement) int {
		if c := b.StatementDate.Compare(a.StatementDate); c != 0 {
			return c
		}
		return strings.Compare(a.StatementID, b.StatementID)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// SaveStatement implements portsrepo.StatementWriter.
func (r *StatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.statements[statement.StatementID]; exists {
		return fmt.Errorf("statement %s: %w", statement.StatementID, apperrors.ErrDuplicate)
	}
	r.statements[statement.StatementID] = statement
	return nil
}
