package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/utils/validation"
)

const DefaultStatementPageSize = 50

type publishStatementInput struct {
	StatementID   string `validate:"required,max=64,excludesall=/"`
	AccountNumber string `validate:"required,acctnum"`
	DocumentRef   string `validate:"required,max=512"`
	Type          string `validate:"required,oneof=MONTHLY ANNUAL TAX_FORM"`
}

type statementService struct {
	BaseService
	repo     portsrepo.StatementRepositoryFacade
	accounts portssvc.AccountReaderSvc
	audit    portssvc.AuditAppender
	notifier portssvc.NotificationSender
	pageSize int
}

// StatementServiceOption is a functional option for configuring the statement service
type StatementServiceOption func(*statementService)

// WithStatementNotifier announces newly published statements to account owners.
func WithStatementNotifier(n portssvc.NotificationSender) StatementServiceOption {
	return func(s *statementService) {
		s.notifier = n
	}
}

// WithStatementPageSize sets how many statements a search pulls from storage at a time.
func WithStatementPageSize(n int) StatementServiceOption {
	return func(s *statementService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewStatementService creates the statement access gateway.
func NewStatementService(repo portsrepo.StatementRepositoryFacade, accounts portssvc.AccountReaderSvc, audit portssvc.AuditAppender, options ...StatementServiceOption) portssvc.StatementSvcFacade {
	svc := &statementService{
		repo:     repo,
		accounts: accounts,
		audit:    audit,
		pageSize: DefaultStatementPageSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

func (s *statementService) View(ctx context.Context, statementID, userID string) (*domain.Statement, error) {
	stmt, err := s.authorize(ctx, statementID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, userID, domain.ActionStatementViewed, stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (s *statementService) Download(ctx context.Context, statementID, userID string) (domain.DocumentReference, error) {
	stmt, err := s.authorize(ctx, statementID, userID)
	if err != nil {
		return "", err
	}
	if err := s.record(ctx, userID, domain.ActionStatementDownloaded, stmt); err != nil {
		return "", err
	}
	return stmt.DocumentRef, nil
}

func (s *statementService) SearchByDate(ctx context.Context, userID string, dateRange domain.DateRange, after *domain.StatementCursor) (iter.Seq2[domain.Statement, error], error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	if !dateRange.IsValid() {
		return nil, fmt.Errorf("%w: date range starts after it ends", apperrors.ErrValidation)
	}

	var start domain.StatementCursor
	hasStart := after != nil
	if hasStart {
		start = *after
	}

	// Linked accounts are read when iteration starts, so a restarted range sees current links.
	return func(yield func(domain.Statement, error) bool) {
		accounts, err := s.accounts.ListLinkedAccounts(ctx, userID)
		if err != nil {
			yield(domain.Statement{}, err)
			return
		}
		if len(accounts) == 0 {
			return
		}
		numbers := make([]string, len(accounts))
		for i, a := range accounts {
			numbers[i] = a.AccountNumber
		}

		var from *domain.StatementCursor
		if hasStart {
			from = &start
		}
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.Statement{}, err)
				return
			}
			page, err := s.repo.FindStatementsByAccounts(ctx, numbers, dateRange, from, s.pageSize)
			if err != nil {
				s.LogError(ctx, err, "Failed to search statements", slog.String("user_id", userID))
				yield(domain.Statement{}, storageErr("search statements", err))
				return
			}
			for _, stmt := range page {
				if !yield(stmt, nil) {
					return
				}
			}
			if len(page) < s.pageSize {
				return
			}
			cursor := page[len(page)-1].Cursor()
			from = &cursor
		}
	}, nil
}

func (s *statementService) PublishStatement(ctx context.Context, statement domain.Statement) (*domain.Statement, error) {
	if err := validation.Struct(publishStatementInput{
		StatementID:   statement.StatementID,
		AccountNumber: statement.AccountNumber,
		DocumentRef:   string(statement.DocumentRef),
		Type:          string(statement.Type),
	}); err != nil {
		return nil, err
	}
	if statement.StatementDate.IsZero() {
		return nil, fmt.Errorf("%w: statement date is required", apperrors.ErrValidation)
	}

	acct, err := s.accounts.GetAccount(ctx, statement.AccountNumber)
	if err != nil {
		return nil, err
	}

	statement.StatementDate = statement.StatementDate.UTC()
	statement.CreatedAt = s.Now()
	if err := s.repo.SaveStatement(ctx, statement); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save statement", slog.String("statement_id", statement.StatementID))
		return nil, storageErr("save statement", err)
	}
	s.LogInfo(ctx, "Statement published", slog.String("statement_id", statement.StatementID), slog.String("account", acct.MaskedNumber()))

	if s.notifier != nil && acct.LinkStatus == domain.LinkStatusLinked {
		payload := fmt.Sprintf("A new %s statement for account %s is available.", statement.Type, acct.MaskedNumber())
		if _, err := s.notifier.Send(context.WithoutCancel(ctx), acct.OwnerUserID, domain.NotificationStatementAvailable, payload); err != nil {
			s.LogWarn(ctx, "Statement notification failed", slog.String("statement_id", statement.StatementID), slog.String("error", err.Error()))
		}
	}
	return &statement, nil
}

// authorize loads the statement and checks its account is linked to userID.
func (s *statementService) authorize(ctx context.Context, statementID, userID string) (*domain.Statement, error) {
	if statementID == "" || userID == "" {
		return nil, fmt.Errorf("%w: statement id and user id are required", apperrors.ErrValidation)
	}

	stmt, err := s.repo.FindStatementByID(ctx, statementID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("statement %s: %w", statementID, apperrors.ErrNotFound)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load statement", slog.String("statement_id", statementID))
		return nil, storageErr("load statement", err)
	}

	acct, err := s.accounts.GetAccount(ctx, stmt.AccountNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if acct == nil || !acct.IsLinkedTo(userID) {
		s.LogInfo(ctx, "Statement access denied", slog.String("statement_id", statementID), slog.String("user_id", userID))
		return nil, fmt.Errorf("statement %s: %w", statementID, apperrors.ErrForbidden)
	}
	return stmt, nil
}

// record audits an access. The statement is only served once the entry is durable.
func (s *statementService) record(ctx context.Context, userID string, action domain.AuditAction, stmt *domain.Statement) error {
	details := fmt.Sprintf("statement=%s account=%s", stmt.StatementID, stmt.AccountNumber)
	if _, err := s.audit.Append(ctx, userID, action, details, s.Now()); err != nil {
		return err
	}
	return nil
}
