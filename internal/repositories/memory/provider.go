package memory

import portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"

// NewRepositoryProvider wires a full set of in-memory repositories.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:      NewAccountRepository(),
		AuditRepo:        NewAuditRepository(),
		StatementRepo:    NewStatementRepository(),
		NotificationRepo: NewNotificationRepository(),
		UserRepo:         NewUserRepository(),
	}
}
