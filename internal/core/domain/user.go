package domain

import (
	"slices"
	"time"
)

// Role is a capability a user may hold. A user can hold several at once.
type Role string

const (
	RoleEndUser     Role = "END_USER"
	RoleClientAdmin Role = "CLIENT_ADMIN"
)

// DeliveryPreference is the channel a user opted into for notifications.
type DeliveryPreference string

const (
	DeliveryEmail DeliveryPreference = "EMAIL"
	DeliverySMS   DeliveryPreference = "SMS"
	DeliveryPush  DeliveryPreference = "PUSH"
	DeliveryNone  DeliveryPreference = "NONE"
)

// User represents a portal user. Linked accounts are looked up through
// Account.OwnerUserID; a user does not own account lifecycle.
type User struct {
	UserID             string             `json:"userID"`
	Username           string             `json:"username"`
	CredentialHash     string             `json:"-"`
	Email              string             `json:"email"`
	CreatedAt          time.Time          `json:"createdAt"`
	DeliveryPreference DeliveryPreference `json:"deliveryPreference"`
	LastLogin          *time.Time         `json:"lastLogin,omitempty"`
	Roles              []Role             `json:"roles"`
}

// HasCapability reports whether the user holds role.
func (u User) HasCapability(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// WithCapability returns the role set extended by role, without duplicates.
func (u User) WithCapability(role Role) []Role {
	if u.HasCapability(role) {
		return slices.Clone(u.Roles)
	}
	return append(slices.Clone(u.Roles), role)
}
