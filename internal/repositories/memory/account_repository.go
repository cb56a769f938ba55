package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
)

// AccountRepository is the in-memory account store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewAccountRepository creates an empty account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// FindAccountByNumber implements portsrepo.AccountReader.
func (r *AccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acct, nil
}

// FindAccountsByOwner implements portsrepo.AccountReader.
func (r *AccountRepository) FindAccountsByOwner(ctx context.Context, userID string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, 0)
	for _, acct := range r.accounts {
		if acct.IsLinkedTo(userID) {
			out = append(out, acct)
		}
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		return strings.Compare(a.AccountNumber, b.AccountNumber)
	})
	return out, nil
}

// SaveAccount implements portsrepo.AccountWriter.
func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.AccountNumber]; exists {
		return fmt.Errorf("account %s: %w", account.AccountNumber, apperrors.ErrDuplicate)
	}
	r.accounts[account.AccountNumber] = account
	return nil
}

// CompareAndSetLink implements portsrepo.AccountWriter.
func (r *AccountRepository) CompareAndSetLink(ctx context.Context, accountNumber string, expectedVersion int64, status domain.LinkStatus, ownerUserID string, updatedBy string, at time.Time) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if acct.Version != expectedVersion {
		return nil, fmt.Errorf("account %s at version %d, expected %d: %w", accountNumber, acct.Version, expectedVersion, apperrors.ErrConflict)
	}
	acct.LinkStatus = status
	acct.OwnerUserID = ownerUserID
	acct.Version++
	acct.LastUpdatedAt = at
	acct.LastUpdatedBy = updatedBy
	r.accounts[accountNumber] = acct
	return &acct, nil
}
