package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/core/services"
	"github.com/SscSPs/banking_portal/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	h    *harness
	ctx  context.Context
	user *domain.User
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.h = newHarness()
	suite.ctx = context.Background()
	user, err := suite.h.users.RegisterUser(suite.ctx, "alice", "alice@example.com", "Secret123")
	suite.Require().NoError(err)
	suite.user = user
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}

func (suite *NotificationServiceTestSuite) find(id string) *domain.Notification {
	n, err := suite.h.repos.NotificationRepo.FindNotificationByID(suite.ctx, id)
	suite.Require().NoError(err)
	return n
}

func (suite *NotificationServiceTestSuite) TestSend_Delivered() {
	id, err := suite.h.notifier.Send(suite.ctx, suite.user.UserID, domain.NotificationGeneral, "hello")
	suite.Require().NoError(err)
	suite.NotEmpty(id)
	suite.h.notifier.WaitForDeliveries()

	n := suite.find(id)
	suite.Equal(domain.DeliveryDeliveredExternally, n.DeliveryStatus)
	suite.False(n.Read)
	suite.Equal(1, suite.h.transport.count())
	suite.Equal(1, suite.h.countAction(suite.T(), domain.ActionNotificationSent))
	suite.Equal(1, suite.h.countAction(suite.T(), domain.ActionNotificationDelivered))
}

func (suite *NotificationServiceTestSuite) TestSend_DeliveryFailureKeepsRecord() {
	suite.h.transport.err = errors.New("smtp relay unavailable")

	id, err := suite.h.notifier.Send(suite.ctx, suite.user.UserID, domain.NotificationSecurityAlert, "new login")
	suite.Require().NoError(err, "delivery failure is not a send failure")
	suite.h.notifier.WaitForDeliveries()

	suite.Equal(domain.DeliveryExternalDeliveryFailed, suite.find(id).DeliveryStatus)
	failed := suite.h.entries(suite.T(), ptr(domain.ActionNotificationDeliveryFailed))
	suite.Require().Len(failed, 1)
	suite.Equal(domain.SystemActor, failed[0].Actor)
	suite.Contains(failed[0].Details, "smtp relay unavailable")

	notes, err := suite.h.notifier.ListNotifications(suite.ctx, suite.user.UserID, true)
	suite.Require().NoError(err)
	suite.Len(notes, 1)
}

func (suite *NotificationServiceTestSuite) TestSend_OptedOutSkipsExternalDelivery() {
	_, err := suite.h.users.OptOut(suite.ctx, suite.user.UserID)
	suite.Require().NoError(err)

	id, err := suite.h.notifier.Send(suite.ctx, suite.user.UserID, domain.NotificationGeneral, "quiet")
	suite.Require().NoError(err)
	suite.h.notifier.WaitForDeliveries()

	suite.Equal(domain.DeliveryPending, suite.find(id).DeliveryStatus)
	suite.Equal(0, suite.h.transport.count())
}

func (suite *NotificationServiceTestSuite) TestSend_DefaultsType() {
	id, err := suite.h.notifier.Send(suite.ctx, suite.user.UserID, "", "untyped")
	suite.Require().NoError(err)
	suite.h.notifier.WaitForDeliveries()
	suite.Equal(domain.NotificationGeneral, suite.find(id).Type)
}

func (suite *NotificationServiceTestSuite) TestSend_RequiresRecipient() {
	_, err := suite.h.notifier.Send(suite.ctx, "", domain.NotificationGeneral, "x")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *NotificationServiceTestSuite) TestMarkRead() {
	id, err := suite.h.notifier.Send(suite.ctx, suite.user.UserID, domain.NotificationGeneral, "read me")
	suite.Require().NoError(err)
	suite.h.notifier.WaitForDeliveries()

	result, err := suite.h.notifier.MarkRead(suite.ctx, suite.user.UserID, id)
	suite.Require().NoError(err)
	suite.Equal(domain.MarkReadMarked, result)
	n := suite.find(id)
	suite.True(n.Read)
	suite.NotNil(n.ReadAt)

	again, err := suite.h.notifier.MarkRead(suite.ctx, suite.user.UserID, id)
	suite.Require().NoError(err)
	suite.Equal(domain.MarkReadAlreadyRead, again)
	suite.True(again.Succeeded())
	suite.Equal(1, suite.h.countAction(suite.T(), domain.ActionNotificationRead))

	unread, err := suite.h.notifier.ListNotifications(suite.ctx, suite.user.UserID, true)
	suite.Require().NoError(err)
	suite.Empty(unread)
}

func (suite *NotificationServiceTestSuite) TestMarkRead_OtherRecipientIsNotFound() {
	id, err := suite.h.notifier.Send(suite.ctx, suite.user.UserID, domain.NotificationGeneral, "private")
	suite.Require().NoError(err)
	suite.h.notifier.WaitForDeliveries()

	result, err := suite.h.notifier.MarkRead(suite.ctx, "mallory", id)
	suite.Require().NoError(err)
	suite.Equal(domain.MarkReadNotFound, result)
	suite.False(result.Succeeded())
	suite.False(suite.find(id).Read)

	missing, err := suite.h.notifier.MarkRead(suite.ctx, suite.user.UserID, "does-not-exist")
	suite.Require().NoError(err)
	suite.Equal(domain.MarkReadNotFound, missing)
}

func (suite *NotificationServiceTestSuite) TestListNotifications_NewestFirst() {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	repo := memory.NewNotificationRepository()
	svc := services.NewNotificationService(repo, suite.h.audit, suite.h.transport,
		services.WithNotificationClock(func() time.Time {
			return base.Add(time.Duration(tick.Add(1)) * time.Minute)
		}))

	first, err := svc.Send(suite.ctx, "bob", domain.NotificationGeneral, "first")
	suite.Require().NoError(err)
	second, err := svc.Send(suite.ctx, "bob", domain.NotificationGeneral, "second")
	suite.Require().NoError(err)
	svc.WaitForDeliveries()

	notes, err := svc.ListNotifications(suite.ctx, "bob", false)
	suite.Require().NoError(err)
	suite.Require().Len(notes, 2)
	suite.Equal(second, notes[0].NotificationID)
	suite.Equal(first, notes[1].NotificationID)
}

func TestNotificationService_AuditFailureDoesNotFailSend(t *testing.T) {
	ctx := context.Background()
	audit := new(MockAuditAppender)
	transport := new(MockNotificationTransport)
	repo := memory.NewNotificationRepository()
	svc := services.NewNotificationService(repo, audit, transport)

	audit.On("Append", mock.Anything, domain.SystemActor, mock.AnythingOfType("domain.AuditAction"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(int64(0), apperrors.ErrStorageUnavailable)
	transport.On("Deliver", mock.Anything, mock.AnythingOfType("domain.Notification"), domain.DeliveryEmail).Return(nil).Once()

	id, err := svc.Send(ctx, "user1", domain.NotificationGeneral, "hi")
	require.NoError(t, err)
	svc.WaitForDeliveries()

	n, err := repo.FindNotificationByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryDeliveredExternally, n.DeliveryStatus)
	transport.AssertExpectations(t)
	audit.AssertNumberOfCalls(t, "Append", 2)
}

func TestNotificationService_DeliveryHonoursTimeout(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNotificationRepository()
	transport := new(MockNotificationTransport)
	svc := services.NewNotificationService(repo, services.NewAuditService(memory.NewAuditRepository()), transport,
		services.WithDeliveryTimeout(20*time.Millisecond))

	transport.On("Deliver", mock.Anything, mock.AnythingOfType("domain.Notification"), domain.DeliveryEmail).
		Run(func(args mock.Arguments) {
			dctx := args.Get(0).(context.Context)
			<-dctx.Done()
		}).
		Return(context.DeadlineExceeded).Once()

	id, err := svc.Send(ctx, "user1", domain.NotificationGeneral, "slow")
	require.NoError(t, err)
	svc.WaitForDeliveries()

	n, err := repo.FindNotificationByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryExternalDeliveryFailed, n.DeliveryStatus)
}
