// Package subscription exposes the subscription lifecycle engine: the four
// operations a caller needs to buy, cancel and check an entitlement.
package subscription

import (
	"context"

	catalogdto "github.com/orris-inc/subledger/internal/application/catalog/dto"
	catalogusecases "github.com/orris-inc/subledger/internal/application/catalog/usecases"
	"github.com/orris-inc/subledger/internal/application/subscription/dto"
	"github.com/orris-inc/subledger/internal/application/subscription/usecases"
	"github.com/orris-inc/subledger/internal/domain/shared"
)

type Engine struct {
	subscribe       *usecases.SubscribeUseCase
	unsubscribe     *usecases.UnsubscribeUseCase
	hasActive       *usecases.HasActiveSubscriptionUseCase
	getSubscription *usecases.GetSubscriptionUseCase
	getVariant      *catalogusecases.GetVariantUseCase
}

func NewEngine(
	subscribe *usecases.SubscribeUseCase,
	unsubscribe *usecases.UnsubscribeUseCase,
	hasActive *usecases.HasActiveSubscriptionUseCase,
	getSubscription *usecases.GetSubscriptionUseCase,
	getVariant *catalogusecases.GetVariantUseCase,
) *Engine {
	return &Engine{
		subscribe:       subscribe,
		unsubscribe:     unsubscribe,
		hasActive:       hasActive,
		getSubscription: getSubscription,
		getVariant:      getVariant,
	}
}

func (e *Engine) Subscribe(ctx context.Context, identity shared.Identity, variantID uint64) (*dto.SubscriptionDTO, error) {
	return e.subscribe.Execute(ctx, usecases.SubscribeCommand{Identity: identity, VariantID: variantID})
}

func (e *Engine) Unsubscribe(ctx context.Context, identity shared.Identity) (*dto.UnsubscribeResultDTO, error) {
	return e.unsubscribe.Execute(ctx, usecases.UnsubscribeCommand{Identity: identity})
}

func (e *Engine) HasActiveSubscription(ctx context.Context, identity shared.Identity) (bool, error) {
	return e.hasActive.Execute(ctx, identity)
}

func (e *Engine) GetSubscription(ctx context.Context, identity shared.Identity) (*dto.SubscriptionDTO, error) {
	return e.getSubscription.Execute(ctx, identity)
}

// GetVariant reads through to the catalog.
func (e *Engine) GetVariant(ctx context.Context, id uint64) (*catalogdto.VariantDTO, error) {
	return e.getVariant.Execute(ctx, id)
}
