package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/core/services"
	"github.com/SscSPs/banking_portal/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StatementServiceTestSuite struct {
	suite.Suite
	h   *harness
	ctx context.Context
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.h = newHarness()
	suite.ctx = context.Background()

	for _, acct := range []string{"ACC123", "ACC456", "ACC789"} {
		_, err := suite.h.registry.ProvisionAccount(suite.ctx, acct, "4321", "ops")
		suite.Require().NoError(err)
	}
	_, err := suite.h.registry.Link(suite.ctx, "ACC123", "user1")
	suite.Require().NoError(err)
	_, err = suite.h.registry.Link(suite.ctx, "ACC456", "user1")
	suite.Require().NoError(err)
	_, err = suite.h.registry.Link(suite.ctx, "ACC789", "user2")
	suite.Require().NoError(err)

	suite.publish("ST1", "ACC123", day(2026, 1, 31))
	suite.publish("ST2", "ACC123", day(2026, 2, 28))
	suite.publish("ST3", "ACC456", day(2026, 2, 28))
	suite.publish("ST4", "ACC789", day(2026, 2, 28))
	suite.h.notifier.WaitForDeliveries()
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *StatementServiceTestSuite) publish(id, acct string, date time.Time) {
	_, err := suite.h.statement.PublishStatement(suite.ctx, domain.Statement{
		StatementID:    id,
		AccountNumber:  acct,
		StatementDate:  date,
		DocumentRef:    domain.DocumentReference("s3://statements/" + id + ".pdf"),
		Type:           domain.StatementMonthly,
		ClosingBalance: decimal.RequireFromString("1024.50"),
	})
	suite.Require().NoError(err)
}

func (suite *StatementServiceTestSuite) TestView_OwnerIsAudited() {
	stmt, err := suite.h.statement.View(suite.ctx, "ST1", "user1")
	suite.Require().NoError(err)
	suite.Equal("ST1", stmt.StatementID)
	suite.True(decimal.RequireFromString("1024.5").Equal(stmt.ClosingBalance))

	viewed := suite.h.entries(suite.T(), ptr(domain.ActionStatementViewed))
	suite.Require().Len(viewed, 1)
	suite.Equal("user1", viewed[0].Actor)
	suite.Contains(viewed[0].Details, "statement=ST1")
	suite.Contains(viewed[0].Details, "account=ACC123")
}

func (suite *StatementServiceTestSuite) TestView_NotLinkedIsForbidden() {
	_, err := suite.h.statement.View(suite.ctx, "ST4", "user1")
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal(0, suite.h.countAction(suite.T(), domain.ActionStatementViewed))
}

func (suite *StatementServiceTestSuite) TestView_UnknownStatement() {
	_, err := suite.h.statement.View(suite.ctx, "ST404", "user1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StatementServiceTestSuite) TestView_AfterUnlinkIsForbidden() {
	_, err := suite.h.registry.Unlink(suite.ctx, "ACC123", "user1")
	suite.Require().NoError(err)

	_, err = suite.h.statement.View(suite.ctx, "ST1", "user1")
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *StatementServiceTestSuite) TestDownload() {
	ref, err := suite.h.statement.Download(suite.ctx, "ST2", "user1")
	suite.Require().NoError(err)
	suite.Equal(domain.DocumentReference("s3://statements/ST2.pdf"), ref)
	suite.Equal(1, suite.h.countAction(suite.T(), domain.ActionStatementDownloaded))
	suite.Equal(0, suite.h.countAction(suite.T(), domain.ActionStatementViewed))
}

func (suite *StatementServiceTestSuite) TestSearchByDate_OrdersAcrossLinkedAccounts() {
	seq, err := suite.h.statement.SearchByDate(suite.ctx, "user1", domain.DateRange{}, nil)
	suite.Require().NoError(err)

	got := collect(suite.T(), seq)
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.StatementID
	}
	suite.Equal([]string{"ST2", "ST3", "ST1"}, ids)
}

func (suite *StatementServiceTestSuite) TestSearchByDate_Range() {
	seq, err := suite.h.statement.SearchByDate(suite.ctx, "user1", domain.DateRange{From: day(2026, 2, 1), To: day(2026, 2, 28)}, nil)
	suite.Require().NoError(err)
	suite.Len(collect(suite.T(), seq), 2)
}

func (suite *StatementServiceTestSuite) TestSearchByDate_InvalidRange() {
	_, err := suite.h.statement.SearchByDate(suite.ctx, "user1", domain.DateRange{From: day(2026, 3, 1), To: day(2026, 1, 1)}, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StatementServiceTestSuite) TestSearchByDate_NoLinkedAccounts() {
	seq, err := suite.h.statement.SearchByDate(suite.ctx, "nobody", domain.DateRange{}, nil)
	suite.Require().NoError(err)
	suite.Empty(collect(suite.T(), seq))
}

func (suite *StatementServiceTestSuite) TestSearchByDate_RestartSeesCurrentLinks() {
	seq, err := suite.h.statement.SearchByDate(suite.ctx, "user1", domain.DateRange{}, nil)
	suite.Require().NoError(err)
	suite.Len(collect(suite.T(), seq), 3)

	_, err = suite.h.registry.Unlink(suite.ctx, "ACC456", "user1")
	suite.Require().NoError(err)
	suite.Len(collect(suite.T(), seq), 2)
}

func (suite *StatementServiceTestSuite) TestPublishStatement_NotifiesOwner() {
	notes, err := suite.h.notifier.ListNotifications(suite.ctx, "user2", false)
	suite.Require().NoError(err)
	var available int
	for _, n := range notes {
		if n.Type == domain.NotificationStatementAvailable {
			available++
		}
	}
	suite.Equal(1, available)
}

func (suite *StatementServiceTestSuite) TestPublishStatement_Validation() {
	_, err := suite.h.statement.PublishStatement(suite.ctx, domain.Statement{
		StatementID: "ST9", AccountNumber: "ACC123", DocumentRef: "doc", Type: "QUARTERLY", StatementDate: day(2026, 1, 1),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.h.statement.PublishStatement(suite.ctx, domain.Statement{
		StatementID: "ST9", AccountNumber: "ACC123", DocumentRef: "doc", Type: domain.StatementAnnual,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.h.statement.PublishStatement(suite.ctx, domain.Statement{
		StatementID: "ST9", AccountNumber: "NOPE999", DocumentRef: "doc", Type: domain.StatementAnnual, StatementDate: day(2026, 1, 1),
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.h.statement.PublishStatement(suite.ctx, domain.Statement{
		StatementID: "2026/01", AccountNumber: "ACC123", DocumentRef: "doc", Type: domain.StatementAnnual, StatementDate: day(2026, 1, 1),
	})
	suite.ErrorIs(err, apperrors.ErrValidation, "ids are used as a path segment")
}

func (suite *StatementServiceTestSuite) TestPublishStatement_Duplicate() {
	_, err := suite.h.statement.PublishStatement(suite.ctx, domain.Statement{
		StatementID: "ST1", AccountNumber: "ACC123", DocumentRef: "doc", Type: domain.StatementMonthly, StatementDate: day(2026, 1, 1),
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func TestStatementService_AuditFailureWithholdsStatement(t *testing.T) {
	ctx := context.Background()
	accounts := services.NewAccountRegistry(memory.NewAccountRepository(), services.NewAuditService(memory.NewAuditRepository()))
	_, err := accounts.ProvisionAccount(ctx, "ACC123", "4321", "ops")
	require.NoError(t, err)
	_, err = accounts.Link(ctx, "ACC123", "user1")
	require.NoError(t, err)

	audit := new(MockAuditAppender)
	audit.On("Append", mock.Anything, "user1", domain.ActionStatementViewed, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(int64(0), apperrors.ErrStorageUnavailable).Once()

	svc := services.NewStatementService(memory.NewStatementRepository(), accounts, audit)
	_, err = svc.PublishStatement(ctx, domain.Statement{
		StatementID: "ST1", AccountNumber: "ACC123", DocumentRef: "doc", Type: domain.StatementMonthly, StatementDate: day(2026, 1, 31),
	})
	require.NoError(t, err)

	stmt, err := svc.View(ctx, "ST1", "user1")
	assert.Nil(t, stmt)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	audit.AssertExpectations(t)
}

func TestStatementService_SearchPagesThroughStorage(t *testing.T) {
	ctx := context.Background()
	accounts := services.NewAccountRegistry(memory.NewAccountRepository(), services.NewAuditService(memory.NewAuditRepository()))
	_, err := accounts.ProvisionAccount(ctx, "ACC123", "4321", "ops")
	require.NoError(t, err)
	_, err = accounts.Link(ctx, "ACC123", "user1")
	require.NoError(t, err)

	svc := services.NewStatementService(memory.NewStatementRepository(), accounts,
		services.NewAuditService(memory.NewAuditRepository()), services.WithStatementPageSize(2))
	for i := 1; i <= 5; i++ {
		_, err := svc.PublishStatement(ctx, domain.Statement{
			StatementID:   "ST" + string(rune('0'+i)),
			AccountNumber: "ACC123",
			DocumentRef:   "doc",
			Type:          domain.StatementMonthly,
			StatementDate: day(2026, time.Month(i), 1),
		})
		require.NoError(t, err)
	}

	seq, err := svc.SearchByDate(ctx, "user1", domain.DateRange{}, nil)
	require.NoError(t, err)
	got := collect(t, seq)
	require.Len(t, got, 5)
	assert.Equal(t, "ST5", got[0].StatementID)
	assert.Equal(t, "ST1", got[4].StatementID)

	// Stopping early is honoured
	var seen int
	for range seq {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

type cursorRecordingStatementRepo struct {
	*memory.StatementRepository
	afters []*domain.StatementCursor
}

func (r *cursorRecordingStatementRepo) FindStatementsByAccounts(ctx context.Context, accountNumbers []string, dateRange domain.DateRange, after *domain.StatementCursor, limit int) ([]domain.Statement, error) {
	r.afters = append(r.afters, after)
	return r.StatementRepository.FindStatementsByAccounts(ctx, accountNumbers, dateRange, after, limit)
}

func TestStatementService_SearchResumesFromCursor(t *testing.T) {
	ctx := context.Background()
	accounts := services.NewAccountRegistry(memory.NewAccountRepository(), services.NewAuditService(memory.NewAuditRepository()))
	_, err := accounts.ProvisionAccount(ctx, "ACC123", "4321", "ops")
	require.NoError(t, err)
	_, err = accounts.Link(ctx, "ACC123", "user1")
	require.NoError(t, err)

	repo := &cursorRecordingStatementRepo{StatementRepository: memory.NewStatementRepository()}
	svc := services.NewStatementService(repo, accounts,
		services.NewAuditService(memory.NewAuditRepository()), services.WithStatementPageSize(2))
	for i := 1; i <= 5; i++ {
		_, err := svc.PublishStatement(ctx, domain.Statement{
			StatementID:   "ST" + string(rune('0'+i)),
			AccountNumber: "ACC123",
			DocumentRef:   "doc",
			Type:          domain.StatementMonthly,
			StatementDate: day(2026, time.Month(i), 1),
		})
		require.NoError(t, err)
	}

	after := domain.StatementCursor{StatementDate: day(2026, 4, 1), StatementID: "ST4"}
	seq, err := svc.SearchByDate(ctx, "user1", domain.DateRange{}, &after)
	require.NoError(t, err)

	got := collect(t, seq)
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.StatementID
	}
	assert.Equal(t, []string{"ST3", "ST2", "ST1"}, ids)

	require.NotEmpty(t, repo.afters)
	require.NotNil(t, repo.afters[0], "storage is asked to start at the cursor")
	assert.Equal(t, "ST4", repo.afters[0].StatementID)
	assert.Len(t, repo.afters, 2, "three remaining rows take two pages of two")

	// The caller's cursor is not advanced by iteration
	assert.Equal(t, "ST4", after.StatementID)
	assert.Len(t, collect(t, seq), 3, "a restarted sequence resumes from the same cursor")
}
