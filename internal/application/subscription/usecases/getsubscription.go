package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/subscription/dto"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            clock.Clock
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.Repository, clk clock.Clock, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clk,
		logger:           logger,
	}
}

// Execute returns the stored record with its state at the current time.
// Identities without a record get state "none".
func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, identity shared.Identity) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.Get(ctx, identity)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "identity", identity, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return dto.ToSubscriptionDTO(identity, sub, uc.clock.Now()), nil
}
