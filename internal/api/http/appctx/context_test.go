package appctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexnev/accountcore/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()
	claims := model.SessionClaims{UserID: uuid.New(), Role: model.RoleAdmin}

	ctx := m.SetClaimsToContext(context.Background(), claims)
	got, ok := m.GetClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims, got)
}

func TestManager_EmptyContext(t *testing.T) {
	m := NewManager()
	_, ok := m.GetClaimsFromContext(context.Background())
	assert.False(t, ok)
}
