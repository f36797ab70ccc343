package memory

import (
	"context"
	"sync"
	"time"

	"github.com/alexnev/accountcore/internal/model"
)

var _ model.RateLimitStore = (*RateLimitStore)(nil)

// RateLimitStore is the in-process counter backend for the windowed rate
// limiter. Single-node only: counters are not shared across processes and
// reset on restart. One mutex serializes increments, which keeps the
// increment-and-read atomic per key.
type RateLimitStore struct {
	mu       sync.Mutex
	counters map[string]*model.WindowState
}

// NewRateLimitStore creates an empty in-memory counter store.
func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{
		counters: make(map[string]*model.WindowState),
	}
}

func (s *RateLimitStore) IncrementWindow(_ context.Context, key string, now time.Time, window time.Duration) (model.WindowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.counters[key]
	if !ok || !current.ResetAt.After(now) {
		fresh := &model.WindowState{Count: 1, ResetAt: now.Add(window)}
		s.counters[key] = fresh
		return *fresh, nil
	}

	current.Count++
	return *current, nil
}

// Reset drops all counters. Test isolation only.
func (s *RateLimitStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]*model.WindowState)
}
