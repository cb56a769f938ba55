package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
)

// UserRepository is the in-memory user store.
type UserRepository struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	byUsername map[string]string
}

// NewUserRepository creates an empty user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[string]domain.User),
		byUsername: make(map[string]string),
	}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// FindUserByID implements portsrepo.UserReader.
func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneUser(u), nil
}

// FindUserByUsername implements portsrepo.UserReader.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneUser(r.users[id]), nil
}

// SaveUser implements portsrepo.UserWriter.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.UserID]; exists {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrDuplicate)
	}
	if _, exists := r.byUsername[user.Username]; exists {
		return fmt.Errorf("username %s: %w", user.Username, apperrors.ErrDuplicate)
	}
	r.users[user.UserID] = *cloneUser(user)
	r.byUsername[user.Username] = user.UserID
	return nil
}

// UpdateUser implements portsrepo.UserWriter. Username and creation time are immutable.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.UserID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.Username = existing.Username
	user.CreatedAt = existing.CreatedAt
	r.users[user.UserID] = *cloneUser(user)
	return nil
}

func cloneUser(u domain.User) *domain.User {
	u.Roles = slices.Clone(u.Roles)
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return &u
}
