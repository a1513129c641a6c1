package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/constants"
)

// RedisRateLimiter keeps one sorted set of call timestamps per key and
// window, so every instance sharing the Redis sees the same counts.
type RedisRateLimiter struct {
	client *redis.Client
	limit  Limit
	clock  clock.Clock
}

func NewRedisRateLimiter(client *redis.Client, limit Limit, clk clock.Clock) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		clock:  clk,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.clock.Now()

	windows := []struct {
		duration time.Duration
		limit    int
	}{
		{time.Minute, l.limit.PerMinute},
		{time.Hour, l.limit.PerHour},
	}

	for _, window := range windows {
		if window.limit <= 0 {
			continue
		}

		allowed, err := l.checkWindow(ctx, key, window.duration, window.limit, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}

	return true, nil
}

// checkWindow records the call and reports whether the window had room for
// it. Rejected calls are recorded too, so a caller hammering the endpoint
// stays throttled.
func (l *RedisRateLimiter) checkWindow(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := l.getKey(key, window)
	nowNano := now.UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(limit), nil
}

func (l *RedisRateLimiter) Remaining(ctx context.Context, key string, window time.Duration) (int64, error) {
	limit := l.limit.PerMinute
	if window == time.Hour {
		limit = l.limit.PerHour
	}

	redisKey := l.getKey(key, window)
	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(l.clock.Now().Add(-window).UnixNano(), 10))
	zcard := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	remaining := int64(limit) - zcard.Val()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	iter := l.client.Scan(ctx, 0, l.keyPrefix(key)+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) keyPrefix(key string) string {
	return constants.AppName + ":ratelimit:" + key + ":"
}

func (l *RedisRateLimiter) getKey(key string, window time.Duration) string {
	return l.keyPrefix(key) + window.String()
}
