package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nthumods/mods-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// FacetCacheRepository caches facet option lists in Redis and queues refreshes.
type FacetCacheRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFacetCacheRepository creates a new FacetCacheRepository.
func NewFacetCacheRepository(rdb *redis.Client, ttl time.Duration) *FacetCacheRepository {
	return &FacetCacheRepository{rdb: rdb, ttl: ttl}
}

// Get returns the cached values of facet. A miss returns ErrNotFound.
func (r *FacetCacheRepository) Get(ctx context.Context, facet string) ([]string, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.FacetKey(facet)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// Set caches values for facet.
func (r *FacetCacheRepository) Set(ctx context.Context, facet string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.CacheKey.FacetKey(facet), raw, r.ttl).Err()
}

// Enqueue pushes a refresh job for facet onto the worker queue.
func (r *FacetCacheRepository) Enqueue(ctx context.Context, facet string) error {
	return r.rdb.RPush(ctx, config.WorkerKey.FacetRefreshQueue, facet).Err()
}

// Pop waits up to timeout for a queued refresh job. ok is false when the
// wait timed out.
func (r *FacetCacheRepository) Pop(ctx context.Context, timeout time.Duration) (facet string, ok bool, err error) {
	item, err := r.rdb.BLPop(ctx, timeout, config.WorkerKey.FacetRefreshQueue).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(item) < 2 {
		return "", false, nil
	}
	return item[1], true, nil
}
