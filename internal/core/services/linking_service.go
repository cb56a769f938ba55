package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/utils/validation"
	"github.com/ulule/limiter/v3"
)

type episodeKey struct {
	userID        string
	accountNumber string
}

type linkRequest struct {
	UserID        string `validate:"required"`
	AccountNumber string `validate:"required,acctnum"`
	Last4SSN      string `validate:"required,last4ssn"`
}

// linkingService drives the verify then link workflow. The registry holds the
// authoritative account state; episodes here only describe the latest attempt per
// (user, account) pair.
type linkingService struct {
	BaseService
	registry      portssvc.AccountRegistrySvcFacade
	audit         portssvc.AuditAppender
	notifier      portssvc.NotificationSender
	verifyLimiter *limiter.Limiter

	mu       sync.RWMutex
	episodes map[episodeKey]domain.EpisodeState
}

// LinkingServiceOption is a functional option for configuring the linking service
type LinkingServiceOption func(*linkingService)

// WithVerifyLimiter caps failed verification attempts per user.
func WithVerifyLimiter(l *limiter.Limiter) LinkingServiceOption {
	return func(s *linkingService) {
		s.verifyLimiter = l
	}
}

// NewLinkingService creates the account linking workflow.
func NewLinkingService(registry portssvc.AccountRegistrySvcFacade, audit portssvc.AuditAppender, notifier portssvc.NotificationSender, options ...LinkingServiceOption) portssvc.LinkingSvc {
	svc := &linkingService{
		registry: registry,
		audit:    audit,
		notifier: notifier,
		episodes: make(map[episodeKey]domain.EpisodeState),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LinkingSvc = (*linkingService)(nil)

func (s *linkingService) LinkAccount(ctx context.Context, userID, accountNumber, last4SSN string) (domain.LinkingOutcome, error) {
	if err := validation.Struct(linkRequest{UserID: userID, AccountNumber: accountNumber, Last4SSN: last4SSN}); err != nil {
		return domain.LinkingOutcome{}, err
	}
	if err := s.checkVerifyBudget(ctx, userID); err != nil {
		return domain.LinkingOutcome{}, err
	}

	key := episodeKey{userID: userID, accountNumber: accountNumber}
	masked := domain.MaskAccountNumber(accountNumber)
	s.setEpisode(key, domain.EpisodeInitiated)

	verification, err := s.registry.Verify(ctx, accountNumber, last4SSN)
	if err != nil {
		return domain.LinkingOutcome{}, err
	}
	if verification != domain.VerificationMatch {
		return s.failVerification(ctx, key, verification), nil
	}

	// Abandoning here leaves nothing behind but the episode marker.
	if err := ctx.Err(); err != nil {
		return domain.LinkingOutcome{}, err
	}
	s.setEpisode(key, domain.EpisodeVerified)

	receipt, err := s.registry.Link(ctx, accountNumber, userID)
	if errors.Is(err, apperrors.ErrConflict) {
		receipt.Result = domain.LinkResultAlreadyLinkedToOther
		err = nil
	}
	if err != nil {
		return domain.LinkingOutcome{}, err
	}

	outcome := domain.LinkingOutcome{
		Verification:  verification,
		LinkResult:    receipt.Result,
		DegradedAudit: receipt.DegradedAudit,
	}
	if receipt.Result == domain.LinkResultAlreadyLinkedToOther {
		outcome.State = domain.EpisodeFailed
		outcome.FailureReason = domain.FailureConflict
		s.setEpisode(key, domain.EpisodeFailed)
		s.LogInfo(ctx, "Account already linked to another user", slog.String("account", masked))
		return outcome, nil
	}

	outcome.State = domain.EpisodeLinked
	s.setEpisode(key, domain.EpisodeLinked)
	if receipt.Result == domain.LinkResultLinked {
		if s.notify(ctx, userID, domain.NotificationAccountLinked, fmt.Sprintf("Account %s is now linked to your profile.", masked)) {
			outcome.DegradedAudit = true
		}
	}
	return outcome, nil
}

func (s *linkingService) UnlinkAccount(ctx context.Context, userID, accountNumber string) (domain.UnlinkingOutcome, error) {
	if userID == "" {
		return domain.UnlinkingOutcome{}, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	receipt, err := s.registry.Unlink(ctx, accountNumber, userID)
	if err != nil {
		return domain.UnlinkingOutcome{}, err
	}

	key := episodeKey{userID: userID, accountNumber: accountNumber}
	if receipt.Result != domain.UnlinkResultUnlinked {
		state, _ := s.EpisodeState(userID, accountNumber)
		return domain.UnlinkingOutcome{State: state, Result: receipt.Result}, nil
	}

	s.setEpisode(key, domain.EpisodeUnlinked)
	outcome := domain.UnlinkingOutcome{
		State:         domain.EpisodeUnlinked,
		Result:        receipt.Result,
		DegradedAudit: receipt.DegradedAudit,
	}
	masked := domain.MaskAccountNumber(accountNumber)
	if s.notify(ctx, userID, domain.NotificationAccountUnlinked, fmt.Sprintf("Account %s was unlinked from your profile.", masked)) {
		outcome.DegradedAudit = true
	}
	return outcome, nil
}

func (s *linkingService) EpisodeState(userID, accountNumber string) (domain.EpisodeState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.episodes[episodeKey{userID: userID, accountNumber: accountNumber}]
	return state, ok
}

func (s *linkingService) setEpisode(key episodeKey, state domain.EpisodeState) {
	s.mu.Lock()
	s.episodes[key] = state
	s.mu.Unlock()
}

func (s *linkingService) checkVerifyBudget(ctx context.Context, userID string) error {
	if s.verifyLimiter == nil {
		return nil
	}
	lctx, err := s.verifyLimiter.Peek(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read verification attempt budget", slog.String("user_id", userID))
		return fmt.Errorf("verification budget: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	if lctx.Reached || lctx.Remaining <= 0 {
		s.LogWarn(ctx, "Verification attempt budget exhausted", slog.String("user_id", userID))
		return fmt.Errorf("%w: retry after %d", apperrors.ErrRateLimited, lctx.Reset)
	}
	return nil
}

// failVerification records a failed verification. Only failures spend the attempt budget.
func (s *linkingService) failVerification(ctx context.Context, key episodeKey, verification domain.VerificationResult) domain.LinkingOutcome {
	reason := domain.FailureMismatch
	if verification == domain.VerificationNoSuchAccount {
		reason = domain.FailureNoSuchAccount
	}
	s.setEpisode(key, domain.EpisodeFailed)
	outcome := domain.LinkingOutcome{
		State:         domain.EpisodeFailed,
		Verification:  verification,
		FailureReason: reason,
	}

	if s.verifyLimiter != nil {
		if _, err := s.verifyLimiter.Get(ctx, key.userID); err != nil {
			s.LogWarn(ctx, "Failed to count verification attempt", slog.String("user_id", key.userID), slog.String("error", err.Error()))
		}
	}

	details := fmt.Sprintf("account=%s result=%s", key.accountNumber, verification)
	if _, err := s.audit.Append(context.WithoutCancel(ctx), key.userID, domain.ActionVerificationFailed, details, s.Now()); err != nil {
		outcome.DegradedAudit = true
		s.LogDegradedAudit(ctx, "verification_failed", err)
	}
	s.LogInfo(ctx, "Account verification failed",
		slog.String("account", domain.MaskAccountNumber(key.accountNumber)),
		slog.String("result", string(verification)))
	return outcome
}

// notify sends best effort. It reports whether the failure could not be audited either.
func (s *linkingService) notify(ctx context.Context, userID string, notificationType domain.NotificationType, payload string) bool {
	bg := context.WithoutCancel(ctx)
	if _, err := s.notifier.Send(bg, userID, notificationType, payload); err != nil {
		s.LogWarn(ctx, "Notification send failed; account change stands",
			slog.String("type", string(notificationType)),
			slog.String("error", err.Error()))
		if _, auditErr := s.audit.Append(bg, userID, domain.ActionNotificationSendFailed,
			fmt.Sprintf("type=%s reason=%s", notificationType, err.Error()), s.Now()); auditErr != nil {
			s.LogDegradedAudit(ctx, "notification_send_failed", auditErr)
			return true
		}
	}
	return false
}
