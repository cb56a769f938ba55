package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/core/services"
	"github.com/SscSPs/banking_portal/internal/platform/ratelimit"
	"github.com/SscSPs/banking_portal/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LinkingServiceTestSuite struct {
	suite.Suite
	h   *harness
	ctx context.Context
}

func (suite *LinkingServiceTestSuite) SetupTest() {
	limiter, err := ratelimit.NewLimiter("3-M", nil, "verify-test")
	suite.Require().NoError(err)
	suite.h = newHarness(services.WithVerifyLimiter(limiter))
	suite.ctx = context.Background()
	_, err = suite.h.registry.ProvisionAccount(suite.ctx, "ACC123", "4321", "ops")
	suite.Require().NoError(err)
}

func (suite *LinkingServiceTestSuite) TearDownTest() {
	suite.h.notifier.WaitForDeliveries()
}

func TestLinkingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LinkingServiceTestSuite))
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_Success() {
	outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeLinked, outcome.State)
	suite.Equal(domain.VerificationMatch, outcome.Verification)
	suite.Equal(domain.LinkResultLinked, outcome.LinkResult)
	suite.False(outcome.DegradedAudit)

	state, ok := suite.h.linking.EpisodeState("user1", "ACC123")
	suite.True(ok)
	suite.Equal(domain.EpisodeLinked, state)

	suite.h.notifier.WaitForDeliveries()
	notes, err := suite.h.notifier.ListNotifications(suite.ctx, "user1", false)
	suite.Require().NoError(err)
	suite.Require().Len(notes, 1)
	suite.Equal(domain.NotificationAccountLinked, notes[0].Type)
	suite.Equal(1, suite.h.transport.count())
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_RelinkSameUserIsIdempotent() {
	_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)

	outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeLinked, outcome.State)
	suite.Equal(domain.LinkResultAlreadyLinkedToSelf, outcome.LinkResult)

	suite.Equal(1, suite.h.countAction(suite.T(), domain.ActionAccountLinked))
	suite.h.notifier.WaitForDeliveries()
	notes, err := suite.h.notifier.ListNotifications(suite.ctx, "user1", false)
	suite.Require().NoError(err)
	suite.Len(notes, 1, "no second AccountLinked notification")
	suite.Equal(1, suite.h.transport.count())
	suite.Equal(1, suite.h.countAction(suite.T(), domain.ActionNotificationSent))
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_Mismatch() {
	outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "0000")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeFailed, outcome.State)
	suite.Equal(domain.FailureMismatch, outcome.FailureReason)
	suite.Empty(outcome.LinkResult)

	failures := suite.h.entries(suite.T(), ptr(domain.ActionVerificationFailed))
	suite.Require().Len(failures, 1)
	suite.Equal("user1", failures[0].Actor)
	suite.Contains(failures[0].Details, "result=MISMATCH")
	suite.Contains(failures[0].Details, "account=ACC123")

	acct, err := suite.h.registry.GetAccount(suite.ctx, "ACC123")
	suite.Require().NoError(err)
	suite.Equal(domain.LinkStatusUnlinked, acct.LinkStatus)
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_NoSuchAccount() {
	outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC999", "4321")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeFailed, outcome.State)
	suite.Equal(domain.FailureNoSuchAccount, outcome.FailureReason)
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_ConflictWithOtherUser() {
	_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)

	outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user2", "ACC123", "4321")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeFailed, outcome.State)
	suite.Equal(domain.FailureConflict, outcome.FailureReason)
	suite.Equal(domain.LinkResultAlreadyLinkedToOther, outcome.LinkResult)
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_FailedAttemptsAreRateLimited() {
	for i := 0; i < 3; i++ {
		outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "0000")
		suite.Require().NoError(err)
		suite.Equal(domain.EpisodeFailed, outcome.State)
	}

	_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.ErrorIs(err, apperrors.ErrRateLimited)

	// Other users keep their own budget
	outcome, err := suite.h.linking.LinkAccount(suite.ctx, "user2", "ACC123", "4321")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeLinked, outcome.State)
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_SuccessDoesNotSpendBudget() {
	for i := 0; i < 5; i++ {
		_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
		suite.Require().NoError(err)
	}
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_ValidationError() {
	_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "43")
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, ok := suite.h.linking.EpisodeState("user1", "ACC123")
	suite.False(ok, "rejected input never starts an episode")
}

func (suite *LinkingServiceTestSuite) TestLinkAccount_CancelledBeforeStart() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := suite.h.linking.LinkAccount(ctx, "user1", "ACC123", "4321")
	suite.Error(err)

	acct, err := suite.h.registry.GetAccount(suite.ctx, "ACC123")
	suite.Require().NoError(err)
	suite.Equal(domain.LinkStatusUnlinked, acct.LinkStatus, "no partial link after cancellation")
	suite.Equal(0, suite.h.countAction(suite.T(), domain.ActionAccountLinked))
}

func (suite *LinkingServiceTestSuite) TestUnlinkAccount() {
	_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)

	outcome, err := suite.h.linking.UnlinkAccount(suite.ctx, "user1", "ACC123")
	suite.Require().NoError(err)
	suite.Equal(domain.EpisodeUnlinked, outcome.State)
	suite.Equal(domain.UnlinkResultUnlinked, outcome.Result)

	suite.h.notifier.WaitForDeliveries()
	notes, err := suite.h.notifier.ListNotifications(suite.ctx, "user1", false)
	suite.Require().NoError(err)
	suite.Require().Len(notes, 2)
	types := []domain.NotificationType{notes[0].Type, notes[1].Type}
	suite.ElementsMatch([]domain.NotificationType{domain.NotificationAccountLinked, domain.NotificationAccountUnlinked}, types)

	// A fresh episode may start for the same pair
	relink, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)
	suite.Equal(domain.LinkResultLinked, relink.LinkResult)
}

func (suite *LinkingServiceTestSuite) TestUnlinkAccount_NotOwner() {
	_, err := suite.h.linking.LinkAccount(suite.ctx, "user1", "ACC123", "4321")
	suite.Require().NoError(err)

	outcome, err := suite.h.linking.UnlinkAccount(suite.ctx, "user2", "ACC123")
	suite.Require().NoError(err)
	suite.Equal(domain.UnlinkResultNotLinkedToUser, outcome.Result)
	suite.Empty(outcome.State)
}

func TestLinkingService_NotificationFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	auditRepo := memory.NewAuditRepository()
	audit := services.NewAuditService(auditRepo)
	registry := services.NewAccountRegistry(memory.NewAccountRepository(), audit)
	notifier := new(MockNotificationSender)
	linking := services.NewLinkingService(registry, audit, notifier)

	_, err := registry.ProvisionAccount(ctx, "ACC123", "4321", "ops")
	require.NoError(t, err)
	notifier.On("Send", mock.Anything, "user1", domain.NotificationAccountLinked, mock.AnythingOfType("string")).
		Return("", apperrors.ErrStorageUnavailable).Once()

	outcome, err := linking.LinkAccount(ctx, "user1", "ACC123", "4321")
	require.NoError(t, err)
	assert.Equal(t, domain.EpisodeLinked, outcome.State)
	assert.False(t, outcome.DegradedAudit)

	acct, err := registry.GetAccount(ctx, "ACC123")
	require.NoError(t, err)
	assert.True(t, acct.IsLinkedTo("user1"))

	action := domain.ActionNotificationSendFailed
	entries, err := auditRepo.FindEntries(ctx, domain.AuditFilter{Action: &action}, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	notifier.AssertExpectations(t)
}

// The end-to-end scenario: verify, link, then a different user is refused the statement.
func TestLinkingScenario_OtherUserCannotViewStatement(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	defer h.notifier.WaitForDeliveries()

	_, err := h.registry.ProvisionAccount(ctx, "ACC123", "4321", "ops")
	require.NoError(t, err)

	res, err := h.registry.Verify(ctx, "ACC123", "4321")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationMatch, res)

	receipt, err := h.registry.Link(ctx, "ACC123", "user1")
	require.NoError(t, err)
	assert.Equal(t, domain.LinkResultLinked, receipt.Result)

	linked := h.entries(t, ptr(domain.ActionAccountLinked))
	require.Len(t, linked, 1)
	assert.Equal(t, "user1", linked[0].Actor)

	_, err = h.statement.PublishStatement(ctx, domain.Statement{
		StatementID:   "ST1",
		AccountNumber: "ACC123",
		StatementDate: linked[0].Timestamp,
		DocumentRef:   "s3://statements/ST1.pdf",
		Type:          domain.StatementMonthly,
	})
	require.NoError(t, err)

	_, err = h.statement.View(ctx, "ST1", "user2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, 0, h.countAction(t, domain.ActionStatementViewed))
}

func ptr[T any](v T) *T {
	return &v
}
