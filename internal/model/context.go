package model

import "context"

// ContextManager moves authenticated session claims in and out of a
// request context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims SessionClaims) context.Context
	GetClaimsFromContext(ctx context.Context) (SessionClaims, bool)
}
