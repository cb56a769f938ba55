package services

import (
	"context"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// RequireCapability returns apperrors.ErrForbidden unless the user holds role.
	RequireCapability(ctx context.Context, userID string, role domain.Role) error
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates an end user with a bcrypt credential hash.
	RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error)

	// UpdateEmail changes the user's contact address.
	UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error)

	// OptIn selects the channel used for external notification delivery.
	OptIn(ctx context.Context, userID string, channel domain.DeliveryPreference) (*domain.User, error)

	// OptOut disables external notification delivery.
	OptOut(ctx context.Context, userID string) (*domain.User, error)

	// EnsureAdmin creates or promotes the bootstrap client admin.
	EnsureAdmin(ctx context.Context, username, email, password string) (*domain.User, error)
}

// UserCapabilitySvc manages role capabilities.
type UserCapabilitySvc interface {
	// GrantCapability adds role to userID. adminID must hold RoleClientAdmin.
	GrantCapability(ctx context.Context, adminID, userID string, role domain.Role) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserCapabilitySvc
}
