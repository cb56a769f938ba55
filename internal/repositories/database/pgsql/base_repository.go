package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, unavailable("begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return unavailable("commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return unavailable("rollback transaction", err)
	}
	return nil
}

// unavailable tags a driver failure as a storage outage. Context errors pass through
// so callers can tell a cancelled request from a database problem.
func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStorageUnavailable, err)
}

// mapWriteError converts constraint violations into the application taxonomy.
func mapWriteError(op, subject string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s already exists: %w", subject, apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s references a missing row: %w", subject, apperrors.ErrNotFound)
		}
	}
	return unavailable(op, err)
}
