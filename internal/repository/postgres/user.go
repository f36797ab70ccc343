package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, email, name, image, email_verified, role, password_hash,
			  failed_sign_in_attempts, lockout_until, created_at, updated_at`

// UserRepository persists user accounts.
type UserRepository struct {
	db *Connection
}

// NewUserRepository creates a UserRepository on the shared connection.
func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row *sql.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Image, &user.EmailVerified, &user.Role,
		&user.PasswordHash, &user.FailedSignInAttempts, &user.LockoutUntil,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, name, image, role, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Name, user.Image, user.Role, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return saved, nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	query := `UPDATE users SET email_verified = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, verifiedAt); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// UpdatePassword replaces the hash and rehabilitates the account in one
// statement: the failure counter and lockout are cleared atomically with
// the password change.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users
			  SET password_hash = $2, failed_sign_in_attempts = 0, lockout_until = NULL, updated_at = now()
			  WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateImage(ctx context.Context, id uuid.UUID, image *string) error {
	query := `UPDATE users SET image = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, image); err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateFailureState(ctx context.Context, id uuid.UUID, failedAttempts int, lockoutUntil *time.Time) error {
	query := `UPDATE users
			  SET failed_sign_in_attempts = $2, lockout_until = $3, updated_at = now()
			  WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, failedAttempts, lockoutUntil); err != nil {
		return fmt.Errorf("failed to update failure state: %w", err)
	}
	return nil
}

func (r *UserRepository) ClearFailureState(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users
			  SET failed_sign_in_attempts = 0, lockout_until = NULL, updated_at = now()
			  WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to clear failure state: %w", err)
	}
	return nil
}
