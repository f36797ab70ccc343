package security

import (
	"strings"
	"sync"
	"time"
)

const (
	throttleWindow      = 10 * time.Minute
	throttleMaxAttempts = 5
	throttleBlock       = 15 * time.Minute
)

type attemptRecord struct {
	count          int
	firstAttemptAt time.Time
	blockedUntil   *time.Time
}

// Throttle is the in-memory pre-authentication failure counter, keyed by
// (normalized email, client IP). It is a fast first line of defense in front
// of the persisted per-account lockout: it needs no durable storage and its
// state is lost on restart, which is acceptable because the persisted
// failure counter remains authoritative.
//
// Construct one per process and inject it; all methods are safe for
// concurrent use.
type Throttle struct {
	mu       sync.Mutex
	attempts map[string]*attemptRecord
	now      func() time.Time
}

// NewThrottle creates an empty Throttle.
func NewThrottle() *Throttle {
	return &Throttle{
		attempts: make(map[string]*attemptRecord),
		now:      time.Now,
	}
}

// NewThrottleWithClock creates a Throttle with an injected clock for tests.
func NewThrottleWithClock(now func() time.Time) *Throttle {
	t := NewThrottle()
	t.now = now
	return t
}

// Key builds the throttle key for an email/IP pair.
func (t *Throttle) Key(email, ip string) string {
	return strings.ToLower(email) + "::" + ip
}

// IsThrottled reports whether the key is currently blocked. Stale entries
// (expired block or elapsed attempt window) are purged on sight.
func (t *Throttle) IsThrottled(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.attempts[key]
	if !ok {
		return false
	}

	now := t.now()
	if record.blockedUntil != nil {
		if record.blockedUntil.After(now) {
			return true
		}
		delete(t.attempts, key)
		return false
	}

	if !record.firstAttemptAt.Add(throttleWindow).After(now) {
		delete(t.attempts, key)
	}
	return false
}

// RegisterFailure counts one failed attempt. A fresh window starts when no
// entry exists or the previous window has elapsed. Reaching the attempt
// threshold blocks future attempts for the block duration; the attempt that
// trips the threshold is itself not blocked.
func (t *Throttle) RegisterFailure(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	existing, ok := t.attempts[key]
	if !ok || !existing.firstAttemptAt.Add(throttleWindow).After(now) {
		t.attempts[key] = &attemptRecord{count: 1, firstAttemptAt: now}
		return
	}

	existing.count++
	if existing.count >= throttleMaxAttempts {
		blockedUntil := now.Add(throttleBlock)
		existing.blockedUntil = &blockedUntil
	}
}

// ClearFailures removes the entry for a key after a verified successful login.
func (t *Throttle) ClearFailures(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
}

// Reset drops all state. Test isolation only.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts = make(map[string]*attemptRecord)
}
