package dto

import (
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a portal user.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

// UpdateEmailRequest changes the caller's contact address.
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// DeliveryPreferenceRequest opts the caller into an external delivery channel.
type DeliveryPreferenceRequest struct {
	Channel domain.DeliveryPreference `json:"channel" binding:"required,oneof=EMAIL SMS PUSH"`
}

// GrantCapabilityRequest adds a role to a user.
type GrantCapabilityRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=END_USER CLIENT_ADMIN"`
}

// UserResponse defines the user data returned by the API. The credential hash is never included.
type UserResponse struct {
	UserID             string                    `json:"userID"`
	Username           string                    `json:"username"`
	Email              string                    `json:"email"`
	CreatedAt          time.Time                 `json:"createdAt"`
	DeliveryPreference domain.DeliveryPreference `json:"deliveryPreference"`
	LastLogin          *time.Time                `json:"lastLogin,omitempty"`
	Roles              []domain.Role             `json:"roles"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:             u.UserID,
		Username:           u.Username,
		Email:              u.Email,
		CreatedAt:          u.CreatedAt,
		DeliveryPreference: u.DeliveryPreference,
		LastLogin:          u.LastLogin,
		Roles:              u.Roles,
	}
}
