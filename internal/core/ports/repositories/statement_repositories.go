package repositories

import (
	"context"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// StatementReader defines read operations for statement metadata
type StatementReader interface {
	// FindStatementByID retrieves a specific statement by its ID.
	FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error)

	// FindStatementsByAccounts returns up to limit statements of the given accounts within dateRange,
	// ordered by statement date descending then statement id, starting strictly after the cursor.
	FindStatementsByAccounts(ctx context.Context, accountNumbers []string, dateRange domain.DateRange, after *domain.StatementCursor, limit int) ([]domain.Statement, error)
}

// StatementWriter defines write operations used by the statement ingestion path
type StatementWriter interface {
	// SaveStatement persists statement metadata produced by the statement generator.
	SaveStatement(ctx context.Context, statement domain.Statement) error
}

// StatementRepositoryFacade combines all statement-related repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
