package model

import "github.com/google/uuid"

// SessionClaims is the identity extracted from an externally issued session
// credential. This core never issues sessions; it only consumes them to gate
// protected endpoints.
type SessionClaims struct {
	UserID uuid.UUID
	Role   Role
}

// SessionVerifier validates an externally issued session token and returns
// its claims.
type SessionVerifier interface {
	Verify(token string) (SessionClaims, error)
}
