package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/common"
	"github.com/orris-inc/subledger/internal/application/subscription/dto"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/guard"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type UnsubscribeCommand struct {
	Identity shared.Identity
}

type UnsubscribeUseCase struct {
	subscriptionRepo subscription.Repository
	port             payment.ValueTransferPort
	eventLog         ledger.EventLog
	txMgr            *db.TransactionManager
	guard            *guard.Guard
	publisher        events.EventPublisher
	cache            StatusCache
	refundPolicy     subscription.RefundPolicy
	beneficiary      shared.Identity
	clock            clock.Clock
	logger           logger.Interface
}

func NewUnsubscribeUseCase(
	subscriptionRepo subscription.Repository,
	port payment.ValueTransferPort,
	eventLog ledger.EventLog,
	txMgr *db.TransactionManager,
	g *guard.Guard,
	publisher events.EventPublisher,
	cache StatusCache,
	refundPolicy subscription.RefundPolicy,
	beneficiary shared.Identity,
	clk clock.Clock,
	logger logger.Interface,
) *UnsubscribeUseCase {
	if cache == nil {
		cache = NopStatusCache{}
	}
	if refundPolicy == nil {
		refundPolicy = subscription.NoRefund{}
	}
	return &UnsubscribeUseCase{
		subscriptionRepo: subscriptionRepo,
		port:             port,
		eventLog:         eventLog,
		txMgr:            txMgr,
		guard:            g,
		publisher:        publisher,
		cache:            cache,
		refundPolicy:     refundPolicy,
		beneficiary:      beneficiary,
		clock:            clk,
		logger:           logger,
	}
}

// Execute clears the caller's active subscription. Expired or missing
// records fail with subscription.ErrNotSubscribed. A refund, when the
// policy grants one, moves from the beneficiary back to the caller in the
// same transaction.
func (uc *UnsubscribeUseCase) Execute(ctx context.Context, cmd UnsubscribeCommand) (*dto.UnsubscribeResultDTO, error) {
	var (
		cleared  *subscription.Subscription
		refund   uint64
		recorded []events.DomainEvent
	)

	err := uc.guard.Do(ctx, cmd.Identity.String(), func(ctx context.Context) error {
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			now := uc.clock.Now()
			current, err := uc.subscriptionRepo.GetForUpdate(txCtx, cmd.Identity)
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}
			if current == nil {
				return subscription.ErrNotSubscribed
			}
			if err := current.Cancel(now); err != nil {
				return err
			}
			if err := uc.subscriptionRepo.Delete(txCtx, cmd.Identity); err != nil {
				return err
			}

			refund = uc.refundPolicy.RefundFor(current, now)
			if refund > 0 {
				if err := uc.port.Transfer(txCtx, uc.beneficiary, cmd.Identity, refund); err != nil {
					return fmt.Errorf("failed to refund %d to %s: %w", refund, cmd.Identity, err)
				}
				current.RecordRefund(refund, now)
			}

			cleared = current
			recorded = current.GetEvents()
			return uc.eventLog.Append(txCtx, recorded...)
		})
		if err != nil {
			return err
		}

		if err := uc.cache.Evict(ctx, cmd.Identity); err != nil {
			uc.logger.Warnw("failed to evict subscription status", "identity", cmd.Identity, "error", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, subscription.ErrNotSubscribed) || errors.Is(err, guard.ErrReentrantCall) {
			uc.logger.Warnw("unsubscribe rejected", "identity", cmd.Identity, "reason", err)
		} else {
			uc.logger.Errorw("failed to unsubscribe", "identity", cmd.Identity, "error", err)
		}
		return nil, err
	}

	common.PublishCommitted(uc.publisher, uc.logger, recorded)

	uc.logger.Infow("unsubscribed",
		"identity", cmd.Identity,
		"variant_id", cleared.VariantID(),
		"refund", refund,
		"refund_policy", uc.refundPolicy.Name(),
	)
	return &dto.UnsubscribeResultDTO{
		Identity:  cmd.Identity.String(),
		VariantID: cleared.VariantID(),
		ExpiresAt: cleared.ExpiresAt(),
		Refunded:  refund,
	}, nil
}
