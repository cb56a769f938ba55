package mapping

import (
	"database/sql"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber: d.AccountNumber,
		Last4SSN:      d.Last4SSN,
		LinkStatus:    string(d.LinkStatus),
		OwnerUserID:   sql.NullString{String: d.OwnerUserID, Valid: d.OwnerUserID != ""},
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber: m.AccountNumber,
		Last4SSN:      m.Last4SSN,
		LinkStatus:    domain.LinkStatus(m.LinkStatus),
		OwnerUserID:   m.OwnerUserID.String,
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
