package model

import (
	"context"
	"time"
)

// RateLimitStore is the pluggable counter backend for the windowed rate
// limiter. IncrementWindow must be atomic per key: two concurrent calls for
// the same key must never both observe the same count.
type RateLimitStore interface {
	// IncrementWindow increments the counter for key, starting a fresh
	// window (count=1, resetAt=now+window) when none exists or the stored
	// reset time has passed. It returns the state after the increment.
	IncrementWindow(ctx context.Context, key string, now time.Time, window time.Duration) (WindowState, error)
}

// WindowState is the counter state after an increment.
type WindowState struct {
	Count   int64
	ResetAt time.Time
}

// RateLimitDecision is the outcome of enforcing a rate limit for one request.
type RateLimitDecision struct {
	Allowed           bool
	Remaining         int
	RetryAfterSeconds int
	ResetAt           time.Time
}
