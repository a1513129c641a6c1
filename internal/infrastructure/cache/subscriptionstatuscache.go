// Package cache holds the Redis-backed read caches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/clock"
)

const subscriptionStatusKeyPrefix = "subledger:subscription:expires:"

// RedisSubscriptionStatusCache stores the expiry of active subscriptions as
// unix seconds. Keys expire at the earlier of the subscription expiry and
// maxTTL, so a value written by a racing reader is bounded in staleness.
type RedisSubscriptionStatusCache struct {
	client *redis.Client
	clock  clock.Clock
	maxTTL time.Duration
}

// NewRedisSubscriptionStatusCache creates the cache. A non-positive maxTTL
// leaves entries to lapse at the subscription expiry only.
func NewRedisSubscriptionStatusCache(client *redis.Client, clk clock.Clock, maxTTL time.Duration) *RedisSubscriptionStatusCache {
	return &RedisSubscriptionStatusCache{
		client: client,
		clock:  clk,
		maxTTL: maxTTL,
	}
}

func (c *RedisSubscriptionStatusCache) Get(ctx context.Context, identity shared.Identity) (time.Time, bool, error) {
	val, err := c.client.Get(ctx, c.buildKey(identity)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read subscription status: %w", err)
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid cached expiry %q: %w", val, err)
	}
	return time.Unix(unix, 0).UTC(), true, nil
}

// Set caches expiresAt. An expiry that already passed removes the entry.
func (c *RedisSubscriptionStatusCache) Set(ctx context.Context, identity shared.Identity, expiresAt time.Time) error {
	ttl := expiresAt.Sub(c.clock.Now())
	if ttl <= 0 {
		return c.Evict(ctx, identity)
	}
	if c.maxTTL > 0 && ttl > c.maxTTL {
		ttl = c.maxTTL
	}

	if err := c.client.Set(ctx, c.buildKey(identity), expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache subscription status: %w", err)
	}
	return nil
}

func (c *RedisSubscriptionStatusCache) Evict(ctx context.Context, identity shared.Identity) error {
	if err := c.client.Del(ctx, c.buildKey(identity)).Err(); err != nil {
		return fmt.Errorf("failed to evict subscription status: %w", err)
	}
	return nil
}

func (c *RedisSubscriptionStatusCache) buildKey(identity shared.Identity) string {
	return subscriptionStatusKeyPrefix + identity.String()
}
