package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
)

const (
	emailVerificationTTL = 24 * time.Hour
	passwordResetTTL     = time.Hour

	lockoutThreshold = 5
	lockoutWindow    = 15 * time.Minute
)

// PasswordHasher derives and verifies password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, passwordHash string) bool
}

// Account orchestrates sign-up, email verification, password reset and the
// persisted failure/lockout bookkeeping.
type Account struct {
	users    model.UserStore
	tokens   model.VerificationTokenStore
	hasher   PasswordHasher
	email    model.EmailSender
	tokenKey []byte
	baseURL  string
	logger   *logger.Logger
	now      func() time.Time
}

// NewAccount creates the account lifecycle service. tokenKey keys the HMAC
// used for stored token representations; baseURL roots the verification and
// reset links sent by email.
func NewAccount(
	users model.UserStore,
	tokens model.VerificationTokenStore,
	hasher PasswordHasher,
	email model.EmailSender,
	tokenKey string,
	baseURL string,
	logger *logger.Logger,
) *Account {
	return &Account{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		email:    email,
		tokenKey: []byte(tokenKey),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
		now:      time.Now,
	}
}

// SignUpInput carries sign-up form values.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

// SignUpResult reports a created account and the raw verification token so
// API callers can act on it; the token is also emailed out of band.
type SignUpResult struct {
	UserID            uuid.UUID
	VerificationToken string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignUp(input SignUpInput) error {
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return model.NewValidationError("A valid email is required.")
	}
	if err := validatePasswordLength(input.Password); err != nil {
		return err
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range input.Password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return model.NewValidationError("Password must include uppercase, lowercase, and a number.")
	}
	if len(strings.TrimSpace(input.Name)) > 80 {
		return model.NewValidationError("Display name must be 80 characters or fewer.")
	}
	return nil
}

func validatePasswordLength(password string) error {
	if len(password) < 10 {
		return model.NewValidationError("Password must be at least 10 characters.")
	}
	return nil
}

// hashToken derives the opaque stored representation of a raw token. Keyed
// one-way hash; lookups are exact-match only, so nothing ever needs to
// reverse it.
func (a *Account) hashToken(rawToken string) string {
	mac := hmac.New(sha256.New, a.tokenKey)
	mac.Write([]byte(rawToken))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func newRawToken() string {
	return uuid.NewString() + uuid.NewString()
}

// SignUp validates input, creates the user with a hashed password and issues
// an email verification token valid for 24 hours. Returns a ValidationError
// for bad input and model.ErrEmailTaken when the email is already registered;
// neither performs any write.
func (a *Account) SignUp(ctx context.Context, input SignUpInput) (SignUpResult, error) {
	if err := validateSignUp(input); err != nil {
		return SignUpResult{}, err
	}

	email := normalizeEmail(input.Email)
	a.logger.Debug("account service: starting sign-up", "email", email)

	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("account service: email already registered", "email", email)
		return SignUpResult{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return SignUpResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	passwordHash, err := a.hasher.Hash(input.Password)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	user := model.User{
		ID:           uuid.New(),
		Email:        &email,
		Role:         model.RoleUser,
		PasswordHash: &passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = &name
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		a.logger.Error("account service: failed to create user", "email", email, "error", err.Error())
		return SignUpResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	rawToken := newRawToken()
	err = a.tokens.Create(ctx, model.VerificationToken{
		TokenHash: a.hashToken(rawToken),
		UserID:    created.ID,
		Purpose:   model.PurposeEmailVerification,
		ExpiresAt: now.Add(emailVerificationTTL),
	})
	if err != nil {
		return SignUpResult{}, fmt.Errorf("failed to issue verification token: %w", err)
	}

	a.sendLink(ctx, email, "Verify your email address",
		"/api/account/verify-email", rawToken)

	a.logger.Info("account service: sign-up completed", "email", email, "user_id", created.ID)

	return SignUpResult{UserID: created.ID, VerificationToken: rawToken}, nil
}

// sendLink emails an action link. Delivery is best-effort: failures are
// logged and never propagate, the issued token stays valid either way.
func (a *Account) sendLink(ctx context.Context, to, subject, path, rawToken string) {
	link := fmt.Sprintf("%s%s?token=%s", a.baseURL, path, url.QueryEscape(rawToken))
	err := a.email.Send(ctx, model.EmailMessage{
		To:      to,
		Subject: subject,
		Body:    link,
	})
	if err != nil {
		a.logger.Error("account service: failed to send email", "to", to, "error", err.Error())
	}
}

// VerifyEmail redeems an email verification token. Expired tokens are
// deleted on sight and reported as model.ErrTokenExpired; unknown tokens as
// model.ErrNotFound. Concurrent redemptions resolve to exactly one success:
// the delete claims the token before the user row is touched.
func (a *Account) VerifyEmail(ctx context.Context, rawToken string) error {
	token, err := a.tokens.GetByHash(ctx, a.hashToken(rawToken), model.PurposeEmailVerification)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get verification token: %w", err)
	}

	if token.Expired(a.now()) {
		if _, err := a.tokens.Delete(ctx, token.TokenHash); err != nil {
			return fmt.Errorf("failed to delete expired token: %w", err)
		}
		return model.ErrTokenExpired
	}

	deleted, err := a.tokens.Delete(ctx, token.TokenHash)
	if err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}
	if !deleted {
		return model.ErrNotFound
	}

	if err := a.users.MarkEmailVerified(ctx, token.UserID, a.now()); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	a.logger.Info("account service: email verified", "user_id", token.UserID)
	return nil
}

// RequestPasswordReset issues a reset token valid for one hour. It succeeds
// from the caller's perspective whether or not the email is registered, so
// account existence never leaks. At most one reset token per user is live:
// outstanding ones are deleted before the new one is stored.
func (a *Account) RequestPasswordReset(ctx context.Context, emailInput string) error {
	email := normalizeEmail(emailInput)
	if email == "" || !strings.Contains(email, "@") {
		return nil
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.tokens.DeleteByUser(ctx, user.ID, model.PurposePasswordReset); err != nil {
		return fmt.Errorf("failed to delete outstanding reset tokens: %w", err)
	}

	now := a.now()
	rawToken := newRawToken()
	err = a.tokens.Create(ctx, model.VerificationToken{
		TokenHash: a.hashToken(rawToken),
		UserID:    user.ID,
		Purpose:   model.PurposePasswordReset,
		ExpiresAt: now.Add(passwordResetTTL),
	})
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	a.sendLink(ctx, email, "Reset your password",
		"/api/account/reset-password", rawToken)

	a.logger.Info("account service: password reset token issued", "user_id", user.ID)
	return nil
}

// ResetPassword redeems a reset token and replaces the account password.
// The update also zeroes the failure counter and clears any lockout, so a
// successful reset fully rehabilitates a locked account. Token handling
// mirrors VerifyEmail: unknown tokens are ErrNotFound, expired tokens are
// deleted and reported as ErrTokenExpired.
func (a *Account) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if err := validatePasswordLength(newPassword); err != nil {
		return err
	}

	token, err := a.tokens.GetByHash(ctx, a.hashToken(rawToken), model.PurposePasswordReset)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if token.Expired(a.now()) {
		if _, err := a.tokens.Delete(ctx, token.TokenHash); err != nil {
			return fmt.Errorf("failed to delete expired token: %w", err)
		}
		return model.ErrTokenExpired
	}

	deleted, err := a.tokens.Delete(ctx, token.TokenHash)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !deleted {
		return model.ErrNotFound
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.users.UpdatePassword(ctx, token.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("account service: password reset completed", "user_id", token.UserID)
	return nil
}

// RegisterFailure increments the persisted failure counter for a user and
// sets the lockout stamp when the counter reaches the threshold. Below the
// threshold any existing lockout value is preserved unchanged. A missing
// user is a no-op.
func (a *Account) RegisterFailure(ctx context.Context, userID uuid.UUID) error {
	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	nextFailures := user.FailedSignInAttempts + 1
	lockoutUntil := user.LockoutUntil
	if nextFailures >= lockoutThreshold {
		until := a.now().Add(lockoutWindow)
		lockoutUntil = &until
	}

	if err := a.users.UpdateFailureState(ctx, userID, nextFailures, lockoutUntil); err != nil {
		return fmt.Errorf("failed to update failure state: %w", err)
	}

	if nextFailures >= lockoutThreshold {
		a.logger.Info("account service: account locked out", "user_id", userID, "failures", nextFailures)
	}
	return nil
}

// ClearFailures zeroes the failure counter and clears the lockout stamp.
func (a *Account) ClearFailures(ctx context.Context, userID uuid.UUID) error {
	if err := a.users.ClearFailureState(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear failure state: %w", err)
	}
	return nil
}

// IsLockedOut reports whether the user has a lockout stamp still in the future.
func (a *Account) IsLockedOut(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.LockedOut(a.now()), nil
}
