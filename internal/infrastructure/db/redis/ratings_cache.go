package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratehub/store-rating-api/internal/api/metrics"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

const defaultAggregateTTL = time.Minute

// RatingCache caches per-store rating aggregates.
// Key format: ratings:agg:<store_id>
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache creates a RatingCache wrapping the given Redis client.
// ttl <= 0 falls back to one minute.
func NewRatingCache(client *redis.Client, ttl time.Duration) *RatingCache {
	if ttl <= 0 {
		ttl = defaultAggregateTTL
	}
	return &RatingCache{client: client, ttl: ttl}
}

// Get returns the cached aggregate for a store, or (nil, nil) on a miss.
func (c *RatingCache) Get(ctx context.Context, storeID int64) (*ports.RatingAggregate, error) {
	raw, err := c.client.Get(ctx, c.key(storeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.AggregateCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("aggregate cache get: %w", err)
	}

	var agg ports.RatingAggregate
	if err := json.Unmarshal(raw, &agg); err != nil {
		return nil, fmt.Errorf("aggregate cache decode: %w", err)
	}
	metrics.AggregateCacheTotal.WithLabelValues("hit").Inc()
	return &agg, nil
}

// Set stores the aggregate with the configured TTL.
func (c *RatingCache) Set(ctx context.Context, storeID int64, agg ports.RatingAggregate) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("aggregate cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(storeID), raw, c.ttl).Err()
}

// Invalidate drops the cached aggregate after a rating write.
func (c *RatingCache) Invalidate(ctx context.Context, storeID int64) error {
	return c.client.Del(ctx, c.key(storeID)).Err()
}

func (c *RatingCache) key(storeID int64) string {
	return fmt.Sprintf("ratings:agg:%d", storeID)
}
