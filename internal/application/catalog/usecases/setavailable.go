package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/catalog/dto"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type SetAvailableCommand struct {
	VariantID uint64
	Available bool
}

// SetAvailableUseCase toggles the availability flag. Setting the current
// value is a no-op and no event is ever emitted.
type SetAvailableUseCase struct {
	variantRepo catalog.VariantRepository
	txMgr       *db.TransactionManager
	clock       clock.Clock
	logger      logger.Interface
}

func NewSetAvailableUseCase(
	variantRepo catalog.VariantRepository,
	txMgr *db.TransactionManager,
	clk clock.Clock,
	logger logger.Interface,
) *SetAvailableUseCase {
	return &SetAvailableUseCase{
		variantRepo: variantRepo,
		txMgr:       txMgr,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *SetAvailableUseCase) Execute(ctx context.Context, cmd SetAvailableCommand) (*dto.VariantDTO, error) {
	var variant *catalog.Variant
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		variant, err = uc.variantRepo.GetByID(txCtx, cmd.VariantID)
		if err != nil {
			return fmt.Errorf("failed to get variant: %w", err)
		}
		if variant == nil {
			return catalog.ErrVariantNotFoundByID(cmd.VariantID)
		}
		if !variant.SetAvailable(cmd.Available, uc.clock.Now()) {
			return nil
		}
		return uc.variantRepo.UpdateAvailability(txCtx, variant)
	})
	if err != nil {
		if errors.Is(err, catalog.ErrVariantNotFound) {
			uc.logger.Warnw("set availability rejected", "variant_id", cmd.VariantID, "reason", err)
		} else {
			uc.logger.Errorw("failed to set variant availability", "variant_id", cmd.VariantID, "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("variant availability set", "variant_id", cmd.VariantID, "available", cmd.Available)
	return dto.ToVariantDTO(variant), nil
}
