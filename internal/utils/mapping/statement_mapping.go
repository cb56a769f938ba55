package mapping

import (
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/models"
)

// ToModelStatement converts a domain Statement to a model Statement
func ToModelStatement(d domain.Statement) models.Statement {
	return models.Statement{
		StatementID:    d.StatementID,
		AccountNumber:  d.AccountNumber,
		StatementDate:  d.StatementDate,
		DocumentRef:    string(d.DocumentRef),
		StatementType:  string(d.Type),
		ClosingBalance: d.ClosingBalance,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainStatement converts a model Statement to a domain Statement
func ToDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID:    m.StatementID,
		AccountNumber:  m.AccountNumber,
		StatementDate:  m.StatementDate.UTC(),
		DocumentRef:    domain.DocumentReference(m.DocumentRef),
		Type:           domain.StatementType(m.StatementType),
		ClosingBalance: m.ClosingBalance,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}
