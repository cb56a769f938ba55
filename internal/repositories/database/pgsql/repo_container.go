package pgsql

import (
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}
	return &portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(base),
		AuditRepo:        newPgxAuditRepository(base),
		StatementRepo:    newPgxStatementRepository(base),
		NotificationRepo: newPgxNotificationRepository(base),
		UserRepo:         newPgxUserRepository(base),
	}
}
