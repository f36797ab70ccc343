package appctx

import (
	"context"

	"github.com/alexnev/accountcore/internal/model"
)

type contextKey int

const claimsKey contextKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves session claims on request contexts. The
// key type is unexported so only this package can write the value.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a child context carrying the claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext retrieves the claims set by the authentication
// middleware, if any.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(model.SessionClaims)
	return claims, ok
}
