package model

import "errors"

var (
	// ErrNotFound indicates a missing row (user, token, record).
	ErrNotFound = errors.New("not found")
	// ErrTokenExpired indicates a verification or reset token past its expiry.
	// The token row is already deleted by the time this is returned.
	ErrTokenExpired = errors.New("token expired")
	// ErrEmailTaken indicates a sign-up conflict on a registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAuthenticationRequired maps to HTTP 401.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrForbidden maps to HTTP 403.
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited maps to HTTP 429.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ValidationError reports a violated input rule with a caller-visible message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
