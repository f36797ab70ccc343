package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
	"github.com/alexnev/accountcore/internal/security"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, passwordHash string) bool
}

// FailureBookkeeper records persisted sign-in failure state. Implemented by
// the account lifecycle service.
type FailureBookkeeper interface {
	RegisterFailure(ctx context.Context, userID uuid.UUID) error
	ClearFailures(ctx context.Context, userID uuid.UUID) error
}

// Credentials is the login entry point called by the external session
// framework. Every failure path returns a nil identity with no further
// detail so the caller cannot distinguish a wrong password from an unknown
// account, a lockout or a throttle hit.
type Credentials struct {
	users     model.UserStore
	verifier  PasswordVerifier
	throttle  *security.Throttle
	lifecycle FailureBookkeeper
	logger    *logger.Logger
	now       func() time.Time
}

// NewCredentials creates the credentials authorizer.
func NewCredentials(
	users model.UserStore,
	verifier PasswordVerifier,
	throttle *security.Throttle,
	lifecycle FailureBookkeeper,
	logger *logger.Logger,
) *Credentials {
	return &Credentials{
		users:     users,
		verifier:  verifier,
		throttle:  throttle,
		lifecycle: lifecycle,
		logger:    logger,
		now:       time.Now,
	}
}

// Authorize verifies an email/password pair. It returns the identity on
// success and (nil, nil) on every credential failure. A non-nil error means
// the user store itself failed, nothing else.
//
// The throttle is consulted before any store access, so a credential-stuffing
// burst against one (email, IP) pair stops generating lookups once blocked.
// Locked accounts are rejected without hashing work.
func (c *Credentials) Authorize(ctx context.Context, email, password string, r *http.Request) (*model.Identity, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" || password == "" {
		return nil, nil
	}

	clientIP := security.ClientIP(r)
	throttleKey := c.throttle.Key(normalizedEmail, clientIP)

	if c.throttle.IsThrottled(throttleKey) {
		c.logger.Debug("credentials: attempt throttled", "ip", clientIP)
		return nil, nil
	}

	user, err := c.users.GetByEmail(ctx, normalizedEmail)
	if errors.Is(err, model.ErrNotFound) || (err == nil && user.PasswordHash == nil) {
		c.throttle.RegisterFailure(throttleKey)
		// No user id to book a persisted failure against.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.LockedOut(c.now()) {
		c.throttle.RegisterFailure(throttleKey)
		c.logger.Debug("credentials: account locked out", "user_id", user.ID)
		return nil, nil
	}

	if !c.verifier.Verify(password, *user.PasswordHash) {
		c.throttle.RegisterFailure(throttleKey)
		if err := c.lifecycle.RegisterFailure(ctx, user.ID); err != nil {
			c.logger.Error("credentials: failed to record sign-in failure",
				"user_id", user.ID,
				"error", err.Error())
		}
		return nil, nil
	}

	c.throttle.ClearFailures(throttleKey)
	if err := c.lifecycle.ClearFailures(ctx, user.ID); err != nil {
		c.logger.Error("credentials: failed to clear sign-in failures",
			"user_id", user.ID,
			"error", err.Error())
	}

	return &model.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Image: user.Image,
		Role:  user.Role,
	}, nil
}
