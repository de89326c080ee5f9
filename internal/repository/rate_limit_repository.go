package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRepository keeps request counters in Redis.
type RateLimitRepository struct {
	rdb *redis.Client
}

// NewRateLimitRepository creates a new RateLimitRepository.
func NewRateLimitRepository(rdb *redis.Client) *RateLimitRepository {
	return &RateLimitRepository{rdb: rdb}
}

// Hit increments key and returns the new count. The key expires one window
// after its first hit.
func (r *RateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
