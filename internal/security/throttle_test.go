package security

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// testClock is a manually advanced clock for throttle tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestThrottle_Key_NormalizesEmail(t *testing.T) {
	th := NewThrottle()
	assert.Equal(t, "user@example.com::10.0.0.1", th.Key("User@Example.COM", "10.0.0.1"))
}

func TestThrottle_BlocksAfterThreshold(t *testing.T) {
	clock := newTestClock()
	th := NewThrottleWithClock(clock.Now)
	key := th.Key("user@example.com", "10.0.0.1")

	for i := 0; i < 4; i++ {
		th.RegisterFailure(key)
		assert.False(t, th.IsThrottled(key), "attempt %d should not block", i+1)
	}

	th.RegisterFailure(key)
	assert.True(t, th.IsThrottled(key))
}

func TestThrottle_BlockExpires(t *testing.T) {
	clock := newTestClock()
	th := NewThrottleWithClock(clock.Now)
	key := th.Key("user@example.com", "10.0.0.1")

	for i := 0; i < 5; i++ {
		th.RegisterFailure(key)
	}
	assert.True(t, th.IsThrottled(key))

	clock.Advance(15*time.Minute + time.Second)
	assert.False(t, th.IsThrottled(key))
}

func TestThrottle_WindowElapsesBetweenFailures(t *testing.T) {
	clock := newTestClock()
	th := NewThrottleWithClock(clock.Now)
	key := th.Key("user@example.com", "10.0.0.1")

	for i := 0; i < 4; i++ {
		th.RegisterFailure(key)
	}

	// Window elapses; the next failure starts a fresh count instead of
	// tripping the block.
	clock.Advance(10*time.Minute + time.Second)
	th.RegisterFailure(key)
	assert.False(t, th.IsThrottled(key))

	for i := 0; i < 4; i++ {
		th.RegisterFailure(key)
	}
	assert.True(t, th.IsThrottled(key))
}

func TestThrottle_ClearFailures(t *testing.T) {
	clock := newTestClock()
	th := NewThrottleWithClock(clock.Now)
	key := th.Key("user@example.com", "10.0.0.1")

	for i := 0; i < 5; i++ {
		th.RegisterFailure(key)
	}
	assert.True(t, th.IsThrottled(key))

	th.ClearFailures(key)
	assert.False(t, th.IsThrottled(key))
}

func TestThrottle_KeysAreIndependent(t *testing.T) {
	clock := newTestClock()
	th := NewThrottleWithClock(clock.Now)

	blocked := th.Key("user@example.com", "10.0.0.1")
	for i := 0; i < 5; i++ {
		th.RegisterFailure(blocked)
	}

	assert.True(t, th.IsThrottled(blocked))
	assert.False(t, th.IsThrottled(th.Key("user@example.com", "10.0.0.2")))
	assert.False(t, th.IsThrottled(th.Key("other@example.com", "10.0.0.1")))
}

func TestThrottle_Reset(t *testing.T) {
	th := NewThrottle()
	key := th.Key("user@example.com", "10.0.0.1")
	for i := 0; i < 5; i++ {
		th.RegisterFailure(key)
	}

	th.Reset()
	assert.False(t, th.IsThrottled(key))
}

func TestThrottle_ConcurrentAccess(t *testing.T) {
	th := NewThrottle()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := th.Key(fmt.Sprintf("user%d@example.com", n%4), "10.0.0.1")
			for j := 0; j < 100; j++ {
				th.RegisterFailure(key)
				th.IsThrottled(key)
			}
		}(i)
	}
	wg.Wait()
}
