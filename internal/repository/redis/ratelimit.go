package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/alexnev/accountcore/internal/model"
)

const keyPrefix = "ratelimit:"

var _ model.RateLimitStore = (*RateLimitStore)(nil)

// RateLimitStore keeps windowed request counters in Redis so the limit
// holds across replicas. Each key is an INCR counter whose TTL marks the
// end of the current window.
type RateLimitStore struct {
	client *goredis.Client
}

// NewRateLimitStore wraps an existing Redis client.
func NewRateLimitStore(client *goredis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

func (s *RateLimitStore) IncrementWindow(ctx context.Context, key string, now time.Time, window time.Duration) (model.WindowState, error) {
	redisKey := keyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return model.WindowState{}, fmt.Errorf("increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return model.WindowState{}, fmt.Errorf("set rate limit window: %w", err)
		}
		return model.WindowState{Count: count, ResetAt: now.Add(window)}, nil
	}

	ttl, err := s.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return model.WindowState{}, fmt.Errorf("read rate limit window: %w", err)
	}
	if ttl < 0 {
		// Counter lost its TTL (eviction or manual intervention). Restore
		// a full window rather than letting the key live forever.
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return model.WindowState{}, fmt.Errorf("set rate limit window: %w", err)
		}
		ttl = window
	}

	return model.WindowState{Count: count, ResetAt: now.Add(ttl)}, nil
}
