package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/utils"
	"github.com/SscSPs/banking_portal/internal/utils/validation"
	"github.com/google/uuid"
)

type registerUserInput struct {
	Username string `validate:"required,min=3,max=64,alphanum"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,password,max=72"`
}

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	audit    portssvc.AuditAppender
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, audit portssvc.AuditAppender) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		audit:    audit,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.createUser(ctx, username, email, password, []domain.Role{domain.RoleEndUser})
}

// EnsureAdmin creates a client admin with the given credentials unless the username exists.
func (s *userService) EnsureAdmin(ctx context.Context, username, email, password string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		if existing.HasCapability(domain.RoleClientAdmin) {
			return existing, nil
		}
		return s.grant(ctx, domain.SystemActor, existing, domain.RoleClientAdmin)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, storageErr("find user", err)
	}
	return s.createUser(ctx, username, email, password, []domain.Role{domain.RoleEndUser, domain.RoleClientAdmin})
}

func (s *userService) createUser(ctx context.Context, username, email, password string, roles []domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := validation.Struct(registerUserInput{Username: username, Email: email, Password: password}); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		UserID:             uuid.NewString(),
		Username:           username,
		CredentialHash:     hash,
		Email:              email,
		CreatedAt:          s.Now(),
		DeliveryPreference: domain.DeliveryEmail,
		Roles:              roles,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username %s: %w", username, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, storageErr("save user", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	s.appendOrDegrade(ctx, user.UserID, domain.ActionUserRegistered, fmt.Sprintf("username=%s", username))
	return &user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load user", slog.String("user_id", userID))
		return nil, storageErr("load user", err)
	}
	return user, nil
}

func (s *userService) RequireCapability(ctx context.Context, userID string, role domain.Role) error {
	user, err := s.GetUser(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("unknown principal: %w", apperrors.ErrForbidden)
	}
	if err != nil {
		return err
	}
	if !user.HasCapability(role) {
		return fmt.Errorf("missing %s capability: %w", role, apperrors.ErrForbidden)
	}
	return nil
}

func (s *userService) UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := validation.Var("email", email, "required,email,max=254"); err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Email == email {
		return user, nil
	}
	user.Email = email
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.appendOrDegrade(ctx, userID, domain.ActionUserEmailUpdated, "email changed")
	return user, nil
}

func (s *userService) OptIn(ctx context.Context, userID string, channel domain.DeliveryPreference) (*domain.User, error) {
	switch channel {
	case domain.DeliveryEmail, domain.DeliverySMS, domain.DeliveryPush:
	default:
		return nil, fmt.Errorf("%w: unsupported delivery channel %q", apperrors.ErrValidation, channel)
	}
	return s.setPreference(ctx, userID, channel)
}

func (s *userService) OptOut(ctx context.Context, userID string) (*domain.User, error) {
	return s.setPreference(ctx, userID, domain.DeliveryNone)
}

func (s *userService) setPreference(ctx context.Context, userID string, pref domain.DeliveryPreference) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DeliveryPreference == pref {
		return user, nil
	}
	previous := user.DeliveryPreference
	user.DeliveryPreference = pref
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.appendOrDegrade(ctx, userID, domain.ActionDeliveryPreferenceChanged, fmt.Sprintf("from=%s to=%s", previous, pref))
	return user, nil
}

func (s *userService) GrantCapability(ctx context.Context, adminID, userID string, role domain.Role) (*domain.User, error) {
	if role != domain.RoleEndUser && role != domain.RoleClientAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if err := s.RequireCapability(ctx, adminID, domain.RoleClientAdmin); err != nil {
		s.LogWarn(ctx, "Capability grant denied", slog.String("admin_id", adminID))
		return nil, err
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasCapability(role) {
		return user, nil
	}
	return s.grant(ctx, adminID, user, role)
}

func (s *userService) grant(ctx context.Context, actor string, user *domain.User, role domain.Role) (*domain.User, error) {
	user.Roles = user.WithCapability(role)
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.appendOrDegrade(ctx, actor, domain.ActionCapabilityGranted, fmt.Sprintf("user=%s role=%s", user.UserID, role))
	return user, nil
}

func (s *userService) save(ctx context.Context, user *domain.User) error {
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", user.UserID))
		return storageErr("update user", err)
	}
	return nil
}

func (s *userService) appendOrDegrade(ctx context.Context, actor string, action domain.AuditAction, details string) {
	if _, err := s.audit.Append(context.WithoutCancel(ctx), actor, action, details, s.Now()); err != nil {
		s.LogDegradedAudit(ctx, strings.ToLower(string(action)), err)
	}
}
