package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPurpose discriminates what a verification token proves.
type TokenPurpose string

const (
	// PurposeEmailVerification proves control of the account's email address.
	PurposeEmailVerification TokenPurpose = "email_verification"
	// PurposePasswordReset proves a password-reset request for the account.
	PurposePasswordReset TokenPurpose = "password_reset"
)

// VerificationTokenStore persists single-use credential-lifecycle tokens.
//
// Tokens are inserted once and deleted once. Delete reports whether the row
// was actually removed so that concurrent redemptions of the same token
// resolve to exactly one winner.
type VerificationTokenStore interface {
	Create(ctx context.Context, token VerificationToken) error
	GetByHash(ctx context.Context, tokenHash string, purpose TokenPurpose) (VerificationToken, error)
	Delete(ctx context.Context, tokenHash string) (bool, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) error
}

// VerificationToken is a single-use, time-limited secret. Only a keyed hash
// of the raw token is stored; the raw value exists solely in the delivery
// channel and is matched by exact hash lookup.
type VerificationToken struct {
	TokenHash string
	UserID    uuid.UUID
	Purpose   TokenPurpose
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed.
func (t VerificationToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
