package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/common"
	"github.com/orris-inc/subledger/internal/application/subscription/dto"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/guard"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type SubscribeCommand struct {
	Identity  shared.Identity
	VariantID uint64
}

type SubscribeOptions struct {
	// Beneficiary receives every subscription fee.
	Beneficiary shared.Identity
	// StrictAvailability rejects variants whose availability flag is off.
	StrictAvailability bool
	// RequireRegistration rejects identities missing from the registry.
	RequireRegistration bool
}

type SubscribeUseCase struct {
	subscriptionRepo subscription.Repository
	variantRepo      catalog.VariantRepository
	registrationRepo registration.Repository
	port             payment.ValueTransferPort
	eventLog         ledger.EventLog
	txMgr            *db.TransactionManager
	guard            *guard.Guard
	publisher        events.EventPublisher
	cache            StatusCache
	clock            clock.Clock
	opts             SubscribeOptions
	logger           logger.Interface
}

func NewSubscribeUseCase(
	subscriptionRepo subscription.Repository,
	variantRepo catalog.VariantRepository,
	registrationRepo registration.Repository,
	port payment.ValueTransferPort,
	eventLog ledger.EventLog,
	txMgr *db.TransactionManager,
	g *guard.Guard,
	publisher events.EventPublisher,
	cache StatusCache,
	clk clock.Clock,
	opts SubscribeOptions,
	logger logger.Interface,
) *SubscribeUseCase {
	if cache == nil {
		cache = NopStatusCache{}
	}
	return &SubscribeUseCase{
		subscriptionRepo: subscriptionRepo,
		variantRepo:      variantRepo,
		registrationRepo: registrationRepo,
		port:             port,
		eventLog:         eventLog,
		txMgr:            txMgr,
		guard:            g,
		publisher:        publisher,
		cache:            cache,
		clock:            clk,
		opts:             opts,
		logger:           logger,
	}
}

// Execute charges the variant's cost and starts a subscription for the
// caller. The record is written before the fee is pulled; both sit in one
// transaction, so a rejected payment leaves no trace. Payment errors are
// returned exactly as the port produced them.
func (uc *SubscribeUseCase) Execute(ctx context.Context, cmd SubscribeCommand) (*dto.SubscriptionDTO, error) {
	var (
		sub      *subscription.Subscription
		recorded []events.DomainEvent
	)

	err := uc.guard.Do(ctx, cmd.Identity.String(), func(ctx context.Context) error {
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			if uc.opts.RequireRegistration {
				registered, err := uc.registrationRepo.Exists(txCtx, cmd.Identity)
				if err != nil {
					return fmt.Errorf("failed to check registration: %w", err)
				}
				if !registered {
					return registration.ErrNotRegistered
				}
			}

			variant, err := uc.variantRepo.GetByID(txCtx, cmd.VariantID)
			if err != nil {
				return fmt.Errorf("failed to get variant: %w", err)
			}
			if variant == nil {
				return catalog.ErrVariantNotFoundByID(cmd.VariantID)
			}
			if uc.opts.StrictAvailability && !variant.IsAvailable() {
				return fmt.Errorf("%w: id=%d", subscription.ErrVariantUnavailable, cmd.VariantID)
			}

			now := uc.clock.Now()
			current, err := uc.subscriptionRepo.GetForUpdate(txCtx, cmd.Identity)
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}
			if !subscription.StateOf(current, now).CanSubscribe() {
				return subscription.ErrActiveUntil(current.ExpiresAt())
			}

			sub, err = subscription.NewSubscription(cmd.Identity, variant, now)
			if err != nil {
				return err
			}
			if err := uc.subscriptionRepo.Save(txCtx, sub); err != nil {
				return err
			}

			if err := uc.port.TransferFrom(txCtx, cmd.Identity, uc.opts.Beneficiary, variant.Cost()); err != nil {
				return err
			}

			recorded = sub.GetEvents()
			return uc.eventLog.Append(txCtx, recorded...)
		})
		if err != nil {
			return err
		}

		// Cache writes stay under the identity lock so a later Evict cannot
		// be overtaken.
		if err := uc.cache.Set(ctx, cmd.Identity, sub.ExpiresAt()); err != nil {
			uc.logger.Warnw("failed to cache subscription status", "identity", cmd.Identity, "error", err)
		}
		return nil
	})
	if err != nil {
		uc.logSubscribeFailure(cmd, err)
		return nil, err
	}

	common.PublishCommitted(uc.publisher, uc.logger, recorded)

	uc.logger.Infow("subscribed",
		"identity", cmd.Identity,
		"variant_id", cmd.VariantID,
		"cost", sub.AmountPaid(),
		"expires_at", sub.ExpiresAt(),
	)
	return dto.ToSubscriptionDTO(cmd.Identity, sub, sub.SubscribedAt()), nil
}

func (uc *SubscribeUseCase) logSubscribeFailure(cmd SubscribeCommand, err error) {
	switch {
	case errors.Is(err, catalog.ErrVariantNotFound),
		errors.Is(err, subscription.ErrAlreadyActive),
		errors.Is(err, subscription.ErrVariantUnavailable),
		errors.Is(err, subscription.ErrInvalidTimeToLive),
		errors.Is(err, registration.ErrNotRegistered),
		errors.Is(err, payment.ErrInsufficientFunds),
		errors.Is(err, payment.ErrTransferRejected),
		errors.Is(err, guard.ErrReentrantCall):
		uc.logger.Warnw("subscribe rejected", "identity", cmd.Identity, "variant_id", cmd.VariantID, "reason", err)
	default:
		uc.logger.Errorw("failed to subscribe", "identity", cmd.Identity, "variant_id", cmd.VariantID, "error", err)
	}
}
