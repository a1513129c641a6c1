package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared"
)

// StatusCache remembers the expiry of active subscriptions so the
// entitlement check can skip the database. Implementations must let entries
// lapse no later than the cached expiry.
type StatusCache interface {
	// Get reports the cached expiry, ok=false on a miss.
	Get(ctx context.Context, identity shared.Identity) (expiresAt time.Time, ok bool, err error)
	Set(ctx context.Context, identity shared.Identity, expiresAt time.Time) error
	Evict(ctx context.Context, identity shared.Identity) error
}

// NopStatusCache always misses.
type NopStatusCache struct{}

func (NopStatusCache) Get(context.Context, shared.Identity) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

func (NopStatusCache) Set(context.Context, shared.Identity, time.Time) error { return nil }
func (NopStatusCache) Evict(context.Context, shared.Identity) error          { return nil }
