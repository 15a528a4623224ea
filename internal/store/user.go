package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/authgate/apiserver/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (types.User, error) {
	const query = `
		SELECT id, username, email, password_hash, full_name, profile_pic, is_active, created_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByIdentifier looks up a user whose email or username matches the
// given login identifier.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (types.User, error) {
	const query = `
		SELECT id, username, email, password_hash, full_name, profile_pic, is_active, created_at
		FROM users
		WHERE email = $1 OR username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

// GetByEmailOrUsername returns any user holding either the email or the
// username. Used by registration to detect conflicts before inserting.
func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (types.User, error) {
	const query = `
		SELECT id, username, email, password_hash, full_name, profile_pic, is_active, created_at
		FROM users
		WHERE email = $1 OR username = $2
		LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, username))
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO users (id, username, email, password_hash, full_name, profile_pic, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.ProfilePic,
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		return types.User{}, translateUniqueViolation(err)
	}
	return user, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.ProfilePic,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// translateUniqueViolation maps a postgres unique-constraint rejection to
// the matching duplicate sentinel, so a registration race lost at the
// database surfaces the same way as the pre-insert conflict check.
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pqErr.Constraint, "username"):
		return ErrDuplicateUsername
	default:
		return err
	}
}
