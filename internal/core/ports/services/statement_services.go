package services

import (
	"context"
	"iter"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// StatementAccessSvc authorizes and serves statements of linked accounts.
type StatementAccessSvc interface {
	// View returns statement metadata if its account is linked to userID.
	View(ctx context.Context, statementID, userID string) (*domain.Statement, error)

	// Download returns the document reference if its account is linked to userID.
	Download(ctx context.Context, statementID, userID string) (domain.DocumentReference, error)

	// SearchByDate lazily yields statements of the user's linked accounts, newest first.
	// A non-nil after resumes strictly behind that statement.
	SearchByDate(ctx context.Context, userID string, dateRange domain.DateRange, after *domain.StatementCursor) (iter.Seq2[domain.Statement, error], error)
}

// StatementIngestSvc accepts statements from the statement generator.
type StatementIngestSvc interface {
	// PublishStatement stores statement metadata and notifies the account's owner, if any.
	PublishStatement(ctx context.Context, statement domain.Statement) (*domain.Statement, error)
}

// StatementSvcFacade combines all statement-related service interfaces
type StatementSvcFacade interface {
	StatementAccessSvc
	StatementIngestSvc
}
