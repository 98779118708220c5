package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/service"
)

const cacheTTL = 5 * time.Minute

// RewardsCache stores computed reward summaries in Redis with a short TTL.
// It is a pure optimization: every failure is reported to the caller, which
// falls back to recomputation.
type RewardsCache struct {
	client *redis.Client
}

// NewRewardsCache creates a RewardsCache wrapping the given Redis client.
func NewRewardsCache(client *redis.Client) *RewardsCache {
	return &RewardsCache{client: client}
}

// Get returns the cached rewards for key, reporting whether the key existed.
func (c *RewardsCache) Get(ctx context.Context, key string) ([]*domain.CustomerRewards, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var rewards []*domain.CustomerRewards
	if err := json.Unmarshal(raw, &rewards); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return rewards, true, nil
}

// Set stores rewards under key, expiring after cacheTTL.
func (c *RewardsCache) Set(ctx context.Context, key string, rewards []*domain.CustomerRewards) error {
	raw, err := json.Marshal(rewards)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached rewards entry. Called after transaction
// ingestion so the next read recomputes.
func (c *RewardsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, service.RewardsKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache invalidate: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	return nil
}
