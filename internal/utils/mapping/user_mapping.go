package mapping

import (
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	roles := make([]string, len(d.Roles))
	for i, r := range d.Roles {
		roles[i] = string(r)
	}
	return models.User{
		UserID:             d.UserID,
		Username:           d.Username,
		PasswordHash:       d.CredentialHash,
		Email:              d.Email,
		CreatedAt:          d.CreatedAt,
		DeliveryPreference: string(d.DeliveryPreference),
		LastLogin:          d.LastLogin,
		Roles:              roles,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	roles := make([]domain.Role, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = domain.Role(r)
	}
	return domain.User{
		UserID:             m.UserID,
		Username:           m.Username,
		CredentialHash:     m.PasswordHash,
		Email:              m.Email,
		CreatedAt:          m.CreatedAt.UTC(),
		DeliveryPreference: domain.DeliveryPreference(m.DeliveryPreference),
		LastLogin:          m.LastLogin,
		Roles:              roles,
	}
}
