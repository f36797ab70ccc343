package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RateLimitStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimitStore(client), mr
}

func TestRateLimitStore_IncrementWindow(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	state, err := s.IncrementWindow(ctx, "user:a", now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.Count)
	assert.Equal(t, now.Add(time.Minute), state.ResetAt)

	state, err = s.IncrementWindow(ctx, "user:a", now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), state.Count)
	assert.False(t, state.ResetAt.After(now.Add(time.Minute)))
}

func TestRateLimitStore_KeysIndependent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	_, err := s.IncrementWindow(ctx, "user:a", now, time.Minute)
	require.NoError(t, err)

	state, err := s.IncrementWindow(ctx, "user:b", now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.Count)
}

func TestRateLimitStore_WindowExpires(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := s.IncrementWindow(ctx, "user:a", now, time.Minute)
		require.NoError(t, err)
	}

	mr.FastForward(time.Minute + time.Second)

	state, err := s.IncrementWindow(ctx, "user:a", now.Add(time.Minute+time.Second), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.Count)
}

func TestRateLimitStore_RestoresLostTTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	_, err := s.IncrementWindow(ctx, "user:a", now, time.Minute)
	require.NoError(t, err)

	// Simulate a counter whose expiry was lost.
	require.NoError(t, s.client.Persist(ctx, "ratelimit:user:a").Err())

	state, err := s.IncrementWindow(ctx, "user:a", now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), state.Count)

	ttl := mr.TTL("ratelimit:user:a")
	assert.Greater(t, ttl, time.Duration(0), "TTL must be restored")
}
