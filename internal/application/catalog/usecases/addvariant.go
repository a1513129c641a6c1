package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/catalog/dto"
	"github.com/orris-inc/subledger/internal/application/common"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// AddVariantCommand carries cost and time-to-live. Zero values are stored
// as given; values above catalog.MaxStoredValue are rejected.
type AddVariantCommand struct {
	Cost       uint64 `yaml:"cost"`
	TimeToLive uint64 `yaml:"ttl"`
	Available  bool   `yaml:"available"`
}

type AddVariantUseCase struct {
	variantRepo catalog.VariantRepository
	idSequence  catalog.IDSequence
	eventLog    ledger.EventLog
	txMgr       *db.TransactionManager
	publisher   events.EventPublisher
	clock       clock.Clock
	logger      logger.Interface
}

func NewAddVariantUseCase(
	variantRepo catalog.VariantRepository,
	idSequence catalog.IDSequence,
	eventLog ledger.EventLog,
	txMgr *db.TransactionManager,
	publisher events.EventPublisher,
	clk clock.Clock,
	logger logger.Interface,
) *AddVariantUseCase {
	return &AddVariantUseCase{
		variantRepo: variantRepo,
		idSequence:  idSequence,
		eventLog:    eventLog,
		txMgr:       txMgr,
		publisher:   publisher,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *AddVariantUseCase) Execute(ctx context.Context, cmd AddVariantCommand) (*dto.VariantDTO, error) {
	if err := catalog.ValidateTerms(cmd.Cost, cmd.TimeToLive); err != nil {
		uc.logger.Warnw("variant rejected", "cost", cmd.Cost, "ttl", cmd.TimeToLive, "reason", err)
		return nil, err
	}

	var (
		variant  *catalog.Variant
		recorded []events.DomainEvent
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		id, err := uc.idSequence.NextVariantID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to allocate variant id: %w", err)
		}

		variant = catalog.NewVariant(id, cmd.Cost, cmd.TimeToLive, cmd.Available, uc.clock.Now())
		if err := uc.variantRepo.Create(txCtx, variant); err != nil {
			return err
		}
		recorded = variant.GetEvents()
		return uc.eventLog.Append(txCtx, recorded...)
	})
	if err != nil {
		uc.logger.Errorw("failed to add variant", "cost", cmd.Cost, "ttl", cmd.TimeToLive, "error", err)
		return nil, err
	}

	common.PublishCommitted(uc.publisher, uc.logger, recorded)
	uc.logger.Infow("variant issued",
		"variant_id", variant.ID(),
		"cost", variant.Cost(),
		"ttl", variant.TimeToLive(),
		"available", variant.IsAvailable(),
	)
	return dto.ToVariantDTO(variant), nil
}
