package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByOwner retrieves all accounts currently linked to a user, ordered by account number.
	FindAccountsByOwner(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate if the number is taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// CompareAndSetLink moves an account to status/owner only if its version still equals
	// expectedVersion. Returns apperrors.ErrConflict when another writer got there first.
	CompareAndSetLink(ctx context.Context, accountNumber string, expectedVersion int64, status domain.LinkStatus, ownerUserID string, updatedBy string, at time.Time) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
