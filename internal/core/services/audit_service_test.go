package services_test

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/core/services"
	"github.com/SscSPs/banking_portal/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	repo    *memory.AuditRepository
	service portssvc.AuditSvcFacade
	t0      time.Time
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.repo = memory.NewAuditRepository()
	suite.t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewAuditService(suite.repo,
		services.WithDetailsMaxLen(16),
		services.WithQueryPageSize(3),
		services.WithAuditClock(func() time.Time { return suite.t0 }),
	)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (suite *AuditServiceTestSuite) TestAppend_AssignsSequentialIDs() {
	ctx := context.Background()
	id1, err := suite.service.Append(ctx, "u1", domain.ActionAccountLinked, "account=****0001", suite.t0)
	suite.Require().NoError(err)
	id2, err := suite.service.Append(ctx, "u1", domain.ActionAccountUnlinked, "account=****0001", suite.t0)
	suite.Require().NoError(err)

	suite.Equal(int64(1), id1)
	suite.Equal(int64(2), id2)
}

func (suite *AuditServiceTestSuite) TestAppend_DefaultsAndTruncation() {
	ctx := context.Background()
	_, err := suite.service.Append(ctx, "", domain.ActionNotificationSent, strings.Repeat("é", 40), time.Time{})
	suite.Require().NoError(err)

	entries := collect(suite.T(), suite.mustQuery(domain.AuditFilter{}))
	suite.Require().Len(entries, 1)
	suite.Equal(domain.SystemActor, entries[0].Actor)
	suite.True(entries[0].Timestamp.Equal(suite.t0))
	suite.Equal(16, len([]rune(entries[0].Details)))
}

func (suite *AuditServiceTestSuite) TestAppend_StorageFailure() {
	repo := new(MockAuditRepository)
	svc := services.NewAuditService(repo)
	repo.On("AppendEntry", mock.Anything, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(domain.AuditLogEntry{}, assert.AnError).Once()

	id, err := svc.Append(context.Background(), "u1", domain.ActionAccountLinked, "", suite.t0)
	suite.Zero(id)
	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
	suite.ErrorIs(err, assert.AnError)
	repo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestQuery_OrderedUnderConcurrentAppends() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Deliberately out-of-order requested timestamps
			ts := suite.t0.Add(time.Duration(50-i) * time.Millisecond)
			_, err := suite.service.Append(ctx, fmt.Sprintf("u%d", i%3), domain.ActionStatementViewed, "", ts)
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	entries := collect(suite.T(), suite.mustQuery(domain.AuditFilter{}))
	suite.Require().Len(entries, 50)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		suite.False(cur.Timestamp.Before(prev.Timestamp), "timestamps must be non-decreasing")
		if cur.Timestamp.Equal(prev.Timestamp) {
			suite.Less(prev.EntryID, cur.EntryID)
		}
	}
}

func (suite *AuditServiceTestSuite) TestQuery_FiltersAcrossPages() {
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		actor := "u1"
		if i%2 == 0 {
			actor = "u2"
		}
		_, err := suite.service.Append(ctx, actor, domain.ActionStatementViewed, "", suite.t0.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(err)
	}

	actor := "u1"
	window := domain.DateRange{From: suite.t0.Add(2 * time.Minute), To: suite.t0.Add(7 * time.Minute)}
	entries := collect(suite.T(), suite.mustQuery(domain.AuditFilter{Actor: &actor, DateRange: &window}))

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	suite.Equal([]int64{4, 6, 8}, ids)
}

func (suite *AuditServiceTestSuite) TestQuery_IsRestartableAndLazy() {
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := suite.service.Append(ctx, "u1", domain.ActionStatementViewed, "", suite.t0)
		suite.Require().NoError(err)
	}
	seq := suite.mustQuery(domain.AuditFilter{})

	first := collect(suite.T(), seq)
	second := collect(suite.T(), seq)
	suite.Equal(first, second)
	suite.Len(first, 7)

	// Stopping early must not pull further pages
	taken := 0
	for range seq {
		taken++
		if taken == 2 {
			break
		}
	}
	suite.Equal(2, taken)
}

func (suite *AuditServiceTestSuite) TestQuery_InvalidDateRange() {
	_, err := suite.service.Query(context.Background(), domain.AuditFilter{
		DateRange: &domain.DateRange{From: suite.t0, To: suite.t0.Add(-time.Hour)},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuditServiceTestSuite) TestQuery_CancelledContext() {
	_, err := suite.service.Append(context.Background(), "u1", domain.ActionStatementViewed, "", suite.t0)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	seq, err := suite.service.Query(ctx, domain.AuditFilter{})
	suite.Require().NoError(err)
	cancel()

	for _, err := range seq {
		suite.ErrorIs(err, context.Canceled)
	}
}

func (suite *AuditServiceTestSuite) TestQueryPage_ReturnsNextCursor() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := suite.service.Append(ctx, "u1", domain.ActionStatementViewed, "", suite.t0)
		suite.Require().NoError(err)
	}

	page, next, err := suite.service.QueryPage(ctx, domain.AuditFilter{}, 2)
	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.Require().NotNil(next)
	suite.Equal(int64(2), next.EntryID)

	page, next, err = suite.service.QueryPage(ctx, domain.AuditFilter{After: next}, 100)
	suite.Require().NoError(err)
	suite.Len(page, 3, "limit is capped at the page size")
	suite.Nil(next)
}

func (suite *AuditServiceTestSuite) mustQuery(filter domain.AuditFilter) iter.Seq2[domain.AuditLogEntry, error] {
	seq, err := suite.service.Query(context.Background(), filter)
	suite.Require().NoError(err)
	return seq
}
