package services

import (
	"context"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// AccountVerifier checks partial identity data against an account.
type AccountVerifier interface {
	// Verify compares last4SSN to the stored value in constant time. It never mutates state.
	Verify(ctx context.Context, accountNumber, last4SSN string) (domain.VerificationResult, error)
}

// AccountLinker performs link-status transitions.
type AccountLinker interface {
	// Link attaches the account to userID, idempotently for the same user.
	Link(ctx context.Context, accountNumber, userID string) (domain.LinkReceipt, error)

	// Unlink detaches the account from userID if userID is the current owner.
	Unlink(ctx context.Context, accountNumber, userID string) (domain.UnlinkReceipt, error)
}

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account by number.
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListLinkedAccounts returns the accounts currently linked to userID.
	ListLinkedAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountProvisioner registers accounts known to the core banking system.
type AccountProvisioner interface {
	// ProvisionAccount creates an unlinked account carrying the verification digits.
	ProvisionAccount(ctx context.Context, accountNumber, last4SSN, provisionedBy string) (*domain.Account, error)
}

// AccountRegistrySvcFacade combines all account-related service interfaces
type AccountRegistrySvcFacade interface {
	AccountVerifier
	AccountLinker
	AccountReaderSvc
	AccountProvisioner
}
