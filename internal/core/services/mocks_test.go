package services_test

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/core/services"
	"github.com/SscSPs/banking_portal/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock AuditAppender ---
type MockAuditAppender struct {
	mock.Mock
}

func (m *MockAuditAppender) Append(ctx context.Context, actor string, action domain.AuditAction, details string, timestamp time.Time) (int64, error) {
	args := m.Called(ctx, actor, action, details, timestamp)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (domain.AuditLogEntry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) FindEntries(ctx context.Context, filter domain.AuditFilter, limit int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, filter, limit)
	var entries []domain.AuditLogEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.AuditLogEntry)
	}
	return entries, args.Error(1)
}

// --- Mock NotificationSender ---
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, recipientUserID string, notificationType domain.NotificationType, payload string) (string, error) {
	args := m.Called(ctx, recipientUserID, notificationType, payload)
	return args.String(0), args.Error(1)
}

// --- Mock NotificationTransport ---
type MockNotificationTransport struct {
	mock.Mock
}

func (m *MockNotificationTransport) Deliver(ctx context.Context, n domain.Notification, channel domain.DeliveryPreference) error {
	args := m.Called(ctx, n, channel)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// recordingTransport counts deliveries without mock expectations, for concurrent tests.
type recordingTransport struct {
	mu        sync.Mutex
	delivered []domain.Notification
	err       error
}

func (t *recordingTransport) Deliver(ctx context.Context, n domain.Notification, channel domain.DeliveryPreference) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delivered = append(t.delivered, n)
	return t.err
}

func (t *recordingTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.delivered)
}

// harness wires every service over in-memory repositories.
type harness struct {
	repos     *portsrepo.RepositoryProvider
	auditRepo *memory.AuditRepository
	transport *recordingTransport
	audit     portssvc.AuditSvcFacade
	users     portssvc.UserSvcFacade
	notifier  portssvc.NotificationSvcFacade
	registry  portssvc.AccountRegistrySvcFacade
	linking   portssvc.LinkingSvc
	statement portssvc.StatementSvcFacade
}

func newHarness(linkingOpts ...services.LinkingServiceOption) *harness {
	auditRepo := memory.NewAuditRepository()
	repos := memory.NewRepositoryProvider()
	repos.AuditRepo = auditRepo

	h := &harness{repos: repos, auditRepo: auditRepo, transport: &recordingTransport{}}
	h.audit = services.NewAuditService(auditRepo)
	h.users = services.NewUserService(repos.UserRepo, h.audit)
	h.notifier = services.NewNotificationService(repos.NotificationRepo, h.audit, h.transport, services.WithUserReader(repos.UserRepo))
	h.registry = services.NewAccountRegistry(repos.AccountRepo, h.audit)
	h.linking = services.NewLinkingService(h.registry, h.audit, h.notifier, linkingOpts...)
	h.statement = services.NewStatementService(repos.StatementRepo, h.registry, h.audit, services.WithStatementNotifier(h.notifier))
	return h
}

// entries drains the audit trail, optionally filtered by action.
func (h *harness) entries(t *testing.T, action *domain.AuditAction) []domain.AuditLogEntry {
	t.Helper()
	seq, err := h.audit.Query(context.Background(), domain.AuditFilter{Action: action})
	require.NoError(t, err)
	return collect(t, seq)
}

func (h *harness) countAction(t *testing.T, action domain.AuditAction) int {
	return len(h.entries(t, &action))
}

func collect[T any](t *testing.T, seq iter.Seq2[T, error]) []T {
	t.Helper()
	out := make([]T, 0)
	for v, err := range seq {
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}
