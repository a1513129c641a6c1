package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// HasActiveSubscriptionUseCase answers the entitlement predicate. Cached
// expiries are still compared against the clock. Only Subscribe and
// Unsubscribe write the cache, under the identity lock; a read never does,
// so a miss cannot bring back an entry an Unsubscribe has evicted.
type HasActiveSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	cache            StatusCache
	clock            clock.Clock
	logger           logger.Interface
}

func NewHasActiveSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	cache StatusCache,
	clk clock.Clock,
	logger logger.Interface,
) *HasActiveSubscriptionUseCase {
	if cache == nil {
		cache = NopStatusCache{}
	}
	return &HasActiveSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		cache:            cache,
		clock:            clk,
		logger:           logger,
	}
}

func (uc *HasActiveSubscriptionUseCase) Execute(ctx context.Context, identity shared.Identity) (bool, error) {
	now := uc.clock.Now()

	expiresAt, ok, err := uc.cache.Get(ctx, identity)
	if err != nil {
		uc.logger.Warnw("subscription status cache unavailable", "identity", identity, "error", err)
	} else if ok && expiresAt.After(now) {
		return true, nil
	}

	sub, err := uc.subscriptionRepo.Get(ctx, identity)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "identity", identity, "error", err)
		return false, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub != nil && sub.IsActive(now), nil
}
