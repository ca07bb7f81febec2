package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cargotrack/cargo-api/internal/core/domain"
)

const (
	recentTTL    = 30 * time.Second
	recentGenKey = "shipments:recent:gen"
)

// RecentCache caches the recent-shipments listing in Redis. Entries are
// keyed by a generation counter; invalidation bumps the counter so every
// mutation makes stale entries unreachable, and the TTL reclaims them.
type RecentCache struct {
	client *redis.Client
}

// NewRecentCache creates a RecentCache wrapping the given Redis client.
func NewRecentCache(client *redis.Client) *RecentCache {
	return &RecentCache{client: client}
}

// Get returns the cached listing for the given limit, or (nil, nil) on a
// cache miss.
func (c *RecentCache) Get(ctx context.Context, limit int) ([]*domain.Shipment, error) {
	key, err := c.key(ctx, limit)
	if err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("recent cache get: %w", err)
	}

	var shipments []*domain.Shipment
	if err := json.Unmarshal(payload, &shipments); err != nil {
		return nil, fmt.Errorf("recent cache decode: %w", err)
	}
	return shipments, nil
}

// Set stores the listing for the given limit under the current generation.
func (c *RecentCache) Set(ctx context.Context, limit int, shipments []*domain.Shipment) error {
	key, err := c.key(ctx, limit)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(shipments)
	if err != nil {
		return fmt.Errorf("recent cache encode: %w", err)
	}
	return c.client.Set(ctx, key, payload, recentTTL).Err()
}

// Invalidate bumps the generation counter, orphaning all cached listings.
func (c *RecentCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, recentGenKey).Err()
}

func (c *RecentCache) key(ctx context.Context, limit int) (string, error) {
	gen, err := c.client.Get(ctx, recentGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("recent cache generation: %w", err)
	}
	return fmt.Sprintf("shipments:recent:%d:%d", gen, limit), nil
}
