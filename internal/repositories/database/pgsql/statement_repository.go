package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/SscSPs/banking_portal/internal/models"
	"github.com/SscSPs/banking_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const statementColumns = `statement_id, account_number, statement_date, document_ref, statement_type, closing_balance, created_at`

type PgxStatementRepository struct {
	BaseRepository
}

func newPgxStatementRepository(base BaseRepository) *PgxStatementRepository {
	return &PgxStatementRepository{BaseRepository: base}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

func scanStatement(row pgx.Row) (models.Statement, error) {
	var m models.Statement
	err := row.Scan(&m.StatementID, &m.AccountNumber, &m.StatementDate, &m.DocumentRef, &m.StatementType, &m.ClosingBalance, &m.CreatedAt)
	return m, err
}

func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	m, err := scanStatement(r.Pool.QueryRow(ctx, `SELECT `+statementColumns+` FROM statements WHERE statement_id = $1;`, statementID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find statement", err)
	}
	stmt := mapping.ToDomainStatement(m)
	return &stmt, nil
}

func (r *PgxStatementRepository) FindStatementsByAccounts(ctx context.Context, accountNumbers []string, dateRange domain.DateRange, after *domain.StatementCursor, limit int) ([]domain.Statement, error) {
	query, args := buildStatementQuery(accountNumbers, dateRange, after, limit)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("search statements", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Statement, error) {
		return scanStatement(row)
	})
	if err != nil {
		return nil, unavailable("scan statements", err)
	}
	out := make([]domain.Statement, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainStatement(m)
	}
	return out, nil
}

// buildStatementQuery renders a search in (statement_date desc, statement_id asc) order.
func buildStatementQuery(accountNumbers []string, dateRange domain.DateRange, after *domain.StatementCursor, limit int) (string, []any) {
	args := []any{accountNumbers}
	conds := []string{"account_number = ANY($1)"}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !dateRange.From.IsZero() {
		conds = append(conds, "statement_date >= "+arg(dateRange.From))
	}
	if !dateRange.To.IsZero() {
		conds = append(conds, "statement_date <= "+arg(dateRange.To))
	}
	if after != nil {
		date := arg(after.StatementDate)
		id := arg(after.StatementID)
		conds = append(conds, fmt.Sprintf("(statement_date < %s OR (statement_date = %s AND statement_id > %s))", date, date, id))
	}

	query := "SELECT " + statementColumns + " FROM statements WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY statement_date DESC, statement_id ASC"
	if limit > 0 {
		query += " LIMIT " + arg(limit)
	}
	return query, args
}

func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	m := mapping.ToModelStatement(statement)
	query := `
		INSERT INTO statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		m.StatementID,
		m.AccountNumber,
		m.StatementDate,
		m.DocumentRef,
		m.StatementType,
		m.ClosingBalance,
		m.CreatedAt,
	)
	if err != nil {
		return mapWriteError("save statement", "statement "+statement.StatementID, err)
	}
	return nil
}
