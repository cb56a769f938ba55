package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/SscSPs/banking_portal/internal/models"
	"github.com/SscSPs/banking_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_number, last4_ssn, link_status, owner_user_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(base BaseRepository) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: base}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	if err := row.Scan(
		&m.AccountNumber,
		&m.Last4SSN,
		&m.LinkStatus,
		&m.OwnerUserID,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return nil, err
	}
	acct := mapping.ToDomainAccount(m)
	return &acct, nil
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	acct, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find account", err)
	}
	return acct, nil
}

func (r *PgxAccountRepository) FindAccountsByOwner(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE owner_user_id = $1 AND link_status = $2
		ORDER BY account_number;`
	rows, err := r.Pool.Query(ctx, query, userID, string(domain.LinkStatusLinked))
	if err != nil {
		return nil, unavailable("find accounts by owner", err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		acct, err := scanAccount(row)
		if err != nil {
			return domain.Account{}, err
		}
		return *acct, nil
	})
	if err != nil {
		return nil, unavailable("scan accounts", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountNumber,
		m.Last4SSN,
		m.LinkStatus,
		m.OwnerUserID,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("save account", "account "+domain.MaskAccountNumber(account.AccountNumber), err)
	}
	return nil
}

// CompareAndSetLink updates the link columns in a single statement guarded by the version column.
func (r *PgxAccountRepository) CompareAndSetLink(ctx context.Context, accountNumber string, expectedVersion int64, status domain.LinkStatus, ownerUserID string, updatedBy string, at time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET link_status = $1, owner_user_id = NULLIF($2, ''), version = version + 1,
			last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $5 AND version = $6
		RETURNING ` + accountColumns + `;`
	acct, err := scanAccount(r.Pool.QueryRow(ctx, query, string(status), ownerUserID, at, updatedBy, accountNumber, expectedVersion))
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, unavailable("update account link", err)
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists); err != nil {
		return nil, unavailable("check account", err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return nil, fmt.Errorf("account %s changed since version %d: %w", domain.MaskAccountNumber(accountNumber), expectedVersion, apperrors.ErrConflict)
}
