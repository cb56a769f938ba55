package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/SscSPs/banking_portal/internal/models"
	"github.com/SscSPs/banking_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, username, password_hash, email, created_at, delivery_preference, last_login, roles`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(base BaseRepository) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: base}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+`;`, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Email,
		&m.CreatedAt,
		&m.DeliveryPreference,
		&m.LastLogin,
		&m.Roles,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Email,
		m.CreatedAt,
		m.DeliveryPreference,
		m.LastLogin,
		m.Roles,
	)
	if err != nil {
		return mapWriteError("save user", "username "+user.Username, err)
	}
	return nil
}

// UpdateUser rewrites the mutable columns; username and created_at are fixed at registration.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, email = $2, delivery_preference = $3, last_login = $4, roles = $5
		WHERE user_id = $6;`,
		m.PasswordHash,
		m.Email,
		m.DeliveryPreference,
		m.LastLogin,
		m.Roles,
		m.UserID,
	)
	if err != nil {
		return unavailable("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}
