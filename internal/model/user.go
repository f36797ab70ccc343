package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
	// UpdatePassword replaces the password hash and, in the same statement,
	// zeroes the failure counter and clears any lockout. A successful reset
	// fully rehabilitates a locked account.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateImage(ctx context.Context, id uuid.UUID, image *string) error
	UpdateFailureState(ctx context.Context, id uuid.UUID, failedAttempts int, lockoutUntil *time.Time) error
	ClearFailureState(ctx context.Context, id uuid.UUID) error
}

// User represents a stored account record.
//
// Email, PasswordHash and the profile fields are optional: accounts created
// through an external identity provider carry no local credentials.
type User struct {
	ID                   uuid.UUID
	Email                *string
	Name                 *string
	Image                *string
	EmailVerified        *time.Time
	Role                 Role
	PasswordHash         *string
	FailedSignInAttempts int
	LockoutUntil         *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// LockedOut reports whether the account has a lockout stamp still in the future.
func (u User) LockedOut(now time.Time) bool {
	return u.LockoutUntil != nil && u.LockoutUntil.After(now)
}

// Identity is the payload handed to the session layer after a successful
// credential check. It never carries the password hash.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email *string   `json:"email"`
	Name  *string   `json:"name"`
	Image *string   `json:"image"`
	Role  Role      `json:"role"`
}
