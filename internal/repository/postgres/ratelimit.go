package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/alexnev/accountcore/internal/model"
)

var _ model.RateLimitStore = (*RateLimitRepository)(nil)

// RateLimitRepository is the durable counter backend for the windowed rate
// limiter. The increment is a single upsert so two concurrent requests for
// the same key can never observe the same count.
type RateLimitRepository struct {
	db *Connection
}

// NewRateLimitRepository creates a RateLimitRepository on the shared connection.
func NewRateLimitRepository(db *Connection) *RateLimitRepository {
	return &RateLimitRepository{
		db: db,
	}
}

func (r *RateLimitRepository) IncrementWindow(ctx context.Context, key string, now time.Time, window time.Duration) (model.WindowState, error) {
	query := `INSERT INTO rate_limit_counters (key, count, reset_at, updated_at)
			  VALUES ($1, 1, $2, $3)
			  ON CONFLICT (key) DO UPDATE SET
			      count = CASE WHEN rate_limit_counters.reset_at <= $3 THEN 1 ELSE rate_limit_counters.count + 1 END,
			      reset_at = CASE WHEN rate_limit_counters.reset_at <= $3 THEN $2 ELSE rate_limit_counters.reset_at END,
			      updated_at = $3
			  RETURNING count, reset_at`

	var state model.WindowState
	err := r.db.QueryRowContext(ctx, query, key, now.Add(window), now).Scan(&state.Count, &state.ResetAt)
	if err != nil {
		return model.WindowState{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	return state, nil
}
