package services

import (
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/platform/config"
	"github.com/ulule/limiter/v3"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, transport portssvc.NotificationTransport, verifyLimiter *limiter.Limiter) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit trail first: every other service appends to it
	container.Audit = NewAuditService(
		repos.AuditRepo,
		WithDetailsMaxLen(cfg.AuditDetailsMaxLen),
		WithQueryPageSize(cfg.AuditQueryPageSize),
	)

	container.User = NewUserService(repos.UserRepo, container.Audit)

	container.Notification = NewNotificationService(
		repos.NotificationRepo,
		container.Audit,
		transport,
		WithDeliveryTimeout(cfg.NotificationDeliveryTimeout),
		WithUserReader(repos.UserRepo),
	)

	container.Accounts = NewAccountRegistry(repos.AccountRepo, container.Audit)

	container.Linking = NewLinkingService(
		container.Accounts,
		container.Audit,
		container.Notification,
		WithVerifyLimiter(verifyLimiter),
	)

	container.Statement = NewStatementService(
		repos.StatementRepo,
		container.Accounts,
		container.Audit,
		WithStatementNotifier(container.Notification),
	)

	return container
}
