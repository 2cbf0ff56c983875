package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache is a short-lived byte cache backed by Redis, used to take
// repeated admin report queries off the primary store.
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get returns the cached value for key. The second return value is false
// when the key is absent or expired.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return raw, true, nil
}

// Set stores value under key, expiring after ttl.
func (c *ReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
