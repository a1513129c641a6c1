// Package ratelimit throttles state-changing ledger calls per caller.
package ratelimit

import (
	"context"
	"time"
)

// Limit caps the number of calls a key may make in each window. A zero limit
// disables that window.
type Limit struct {
	PerMinute int
	PerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
