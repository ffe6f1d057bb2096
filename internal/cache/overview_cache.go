// Package cache holds the Redis-backed cache for hot booking read models.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OverviewCache caches the per-item last/next booking overview. Entries are
// invalidated whenever a booking of the item is mutated.
type OverviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOverviewCache creates an OverviewCache with the given entry TTL.
func NewOverviewCache(client *redis.Client, ttl time.Duration) *OverviewCache {
	return &OverviewCache{client: client, ttl: ttl}
}

func overviewKey(itemID uuid.UUID) string {
	return fmt.Sprintf("booking:item-overview:%s", itemID)
}

// Get returns the cached overview payload and whether it was present.
func (c *OverviewCache) Get(ctx context.Context, itemID uuid.UUID) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, overviewKey(itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read overview cache: %w", err)
	}
	return payload, true, nil
}

// Set stores the overview payload for the item.
func (c *OverviewCache) Set(ctx context.Context, itemID uuid.UUID, payload []byte) error {
	if err := c.client.Set(ctx, overviewKey(itemID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write overview cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached overview for the item.
func (c *OverviewCache) Invalidate(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Del(ctx, overviewKey(itemID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate overview cache: %w", err)
	}
	return nil
}
