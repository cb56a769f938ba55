package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/telemetry"
	"github.com/SscSPs/banking_portal/internal/utils"
	"github.com/SscSPs/banking_portal/internal/utils/keylock"
	"github.com/SscSPs/banking_portal/internal/utils/validation"
)

// accountRegistry owns link-status transitions. Every verify, link and unlink on
// one account number runs under that number's lock; different numbers proceed in
// parallel. The audit append for a transition happens before the lock is released
// so the trail records transitions of one account in the order they happened.
type accountRegistry struct {
	BaseService
	repo  portsrepo.AccountRepositoryFacade
	audit portssvc.AuditAppender
	locks *keylock.KeyLock
}

// RegistryOption is a functional option for configuring the account registry
type RegistryOption func(*accountRegistry)

// WithRegistryClock overrides the registry's clock.
func WithRegistryClock(clock func() time.Time) RegistryOption {
	return func(r *accountRegistry) {
		r.Clock = clock
	}
}

// NewAccountRegistry creates the account registry.
func NewAccountRegistry(repo portsrepo.AccountRepositoryFacade, audit portssvc.AuditAppender, options ...RegistryOption) portssvc.AccountRegistrySvcFacade {
	r := &accountRegistry{
		repo:  repo,
		audit: audit,
		locks: keylock.New(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ portssvc.AccountRegistrySvcFacade = (*accountRegistry)(nil)

func (r *accountRegistry) Verify(ctx context.Context, accountNumber, last4SSN string) (domain.VerificationResult, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return "", err
	}
	if err := validation.Var("last4SSN", last4SSN, "required,"+validation.TagLast4SSN); err != nil {
		return "", err
	}

	unlock := r.locks.Lock(accountNumber)
	defer unlock()

	acct, err := r.repo.FindAccountByNumber(ctx, accountNumber)
	if errors.Is(err, apperrors.ErrNotFound) {
		utils.BurnSecretCompare(last4SSN)
		telemetry.VerificationOutcomesTotal.WithLabelValues(string(domain.VerificationNoSuchAccount)).Inc()
		return domain.VerificationNoSuchAccount, nil
	}
	if err != nil {
		r.LogError(ctx, err, "Failed to load account for verification", slog.String("account", domain.MaskAccountNumber(accountNumber)))
		return "", storageErr("verify account", err)
	}

	result := domain.VerificationMismatch
	if utils.SecretsEqual(acct.Last4SSN, last4SSN) {
		result = domain.VerificationMatch
	}
	telemetry.VerificationOutcomesTotal.WithLabelValues(string(result)).Inc()
	return result, nil
}

func (r *accountRegistry) Link(ctx context.Context, accountNumber, userID string) (domain.LinkReceipt, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return domain.LinkReceipt{}, err
	}
	if userID == "" {
		return domain.LinkReceipt{}, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	unlock := r.locks.Lock(accountNumber)
	defer unlock()

	acct, err := r.loadAccount(ctx, accountNumber)
	if err != nil {
		return domain.LinkReceipt{}, err
	}

	if acct.LinkStatus == domain.LinkStatusLinked {
		result := domain.LinkResultAlreadyLinkedToOther
		if acct.OwnerUserID == userID {
			result = domain.LinkResultAlreadyLinkedToSelf
		}
		telemetry.AccountLinkOutcomesTotal.WithLabelValues(string(result)).Inc()
		return domain.LinkReceipt{Result: result}, nil
	}

	now := r.Now()
	if _, err := r.repo.CompareAndSetLink(ctx, accountNumber, acct.Version, domain.LinkStatusLinked, userID, userID, now); err != nil {
		return domain.LinkReceipt{}, r.transitionErr(ctx, "link", accountNumber, err)
	}
	telemetry.AccountLinkOutcomesTotal.WithLabelValues(string(domain.LinkResultLinked)).Inc()
	r.LogInfo(ctx, "Account linked", slog.String("account", acct.MaskedNumber()), slog.String("user_id", userID))

	receipt := domain.LinkReceipt{Result: domain.LinkResultLinked}
	// The link is durable; cancellation from here on must not cost its audit entry.
	entryID, err := r.audit.Append(context.WithoutCancel(ctx), userID, domain.ActionAccountLinked,
		fmt.Sprintf("account=%s", acct.AccountNumber), now)
	if err != nil {
		receipt.DegradedAudit = true
		r.LogDegradedAudit(ctx, "link", err, slog.String("account", acct.MaskedNumber()))
		return receipt, nil
	}
	receipt.AuditEntryID = entryID
	return receipt, nil
}

func (r *accountRegistry) Unlink(ctx context.Context, accountNumber, userID string) (domain.UnlinkReceipt, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return domain.UnlinkReceipt{}, err
	}
	if userID == "" {
		return domain.UnlinkReceipt{}, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	unlock := r.locks.Lock(accountNumber)
	defer unlock()

	acct, err := r.loadAccount(ctx, accountNumber)
	if err != nil {
		return domain.UnlinkReceipt{}, err
	}
	if !acct.IsLinkedTo(userID) {
		telemetry.AccountLinkOutcomesTotal.WithLabelValues(string(domain.UnlinkResultNotLinkedToUser)).Inc()
		return domain.UnlinkReceipt{Result: domain.UnlinkResultNotLinkedToUser}, nil
	}

	now := r.Now()
	if _, err := r.repo.CompareAndSetLink(ctx, accountNumber, acct.Version, domain.LinkStatusUnlinked, "", userID, now); err != nil {
		return domain.UnlinkReceipt{}, r.transitionErr(ctx, "unlink", accountNumber, err)
	}
	telemetry.AccountLinkOutcomesTotal.WithLabelValues(string(domain.UnlinkResultUnlinked)).Inc()
	r.LogInfo(ctx, "Account unlinked", slog.String("account", acct.MaskedNumber()), slog.String("user_id", userID))

	receipt := domain.UnlinkReceipt{Result: domain.UnlinkResultUnlinked}
	entryID, err := r.audit.Append(context.WithoutCancel(ctx), userID, domain.ActionAccountUnlinked,
		fmt.Sprintf("account=%s", acct.AccountNumber), now)
	if err != nil {
		receipt.DegradedAudit = true
		r.LogDegradedAudit(ctx, "unlink", err, slog.String("account", acct.MaskedNumber()))
		return receipt, nil
	}
	receipt.AuditEntryID = entryID
	return receipt, nil
}

func (r *accountRegistry) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	return r.loadAccount(ctx, accountNumber)
}

func (r *accountRegistry) ListLinkedAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	accounts, err := r.repo.FindAccountsByOwner(ctx, userID)
	if err != nil {
		r.LogError(ctx, err, "Failed to list linked accounts", slog.String("user_id", userID))
		return nil, storageErr("list linked accounts", err)
	}
	return accounts, nil
}

func (r *accountRegistry) ProvisionAccount(ctx context.Context, accountNumber, last4SSN, provisionedBy string) (*domain.Account, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	if err := validation.Var("last4SSN", last4SSN, "required,"+validation.TagLast4SSN); err != nil {
		return nil, err
	}

	now := r.Now()
	acct := domain.Account{
		AccountNumber: accountNumber,
		Last4SSN:      last4SSN,
		LinkStatus:    domain.LinkStatusUnlinked,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     provisionedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: provisionedBy,
		},
	}
	if err := r.repo.SaveAccount(ctx, acct); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		r.LogError(ctx, err, "Failed to provision account", slog.String("account", acct.MaskedNumber()))
		return nil, storageErr("provision account", err)
	}
	r.LogInfo(ctx, "Account provisioned", slog.String("account", acct.MaskedNumber()))
	return &acct, nil
}

func (r *accountRegistry) loadAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	acct, err := r.repo.FindAccountByNumber(ctx, accountNumber)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("account %s: %w", domain.MaskAccountNumber(accountNumber), apperrors.ErrNotFound)
	}
	if err != nil {
		r.LogError(ctx, err, "Failed to load account", slog.String("account", domain.MaskAccountNumber(accountNumber)))
		return nil, storageErr("load account", err)
	}
	return acct, nil
}

func (r *accountRegistry) transitionErr(ctx context.Context, op, accountNumber string, err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		r.LogWarn(ctx, "Lost concurrent account transition", slog.String("operation", op), slog.String("account", domain.MaskAccountNumber(accountNumber)))
		return err
	}
	r.LogError(ctx, err, "Failed to persist account transition", slog.String("operation", op), slog.String("account", domain.MaskAccountNumber(accountNumber)))
	return storageErr(op, err)
}

func validateAccountNumber(accountNumber string) error {
	return validation.Var("accountNumber", accountNumber, "required,"+validation.TagAccountNumber)
}

// storageErr marks err as a storage failure unless it is already a caller-facing sentinel.
func storageErr(op string, err error) error {
	if errors.Is(err, apperrors.ErrStorageUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStorageUnavailable, err)
}
