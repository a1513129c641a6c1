package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/catalog/dto"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type GetVariantUseCase struct {
	variantRepo catalog.VariantRepository
	logger      logger.Interface
}

func NewGetVariantUseCase(variantRepo catalog.VariantRepository, logger logger.Interface) *GetVariantUseCase {
	return &GetVariantUseCase{
		variantRepo: variantRepo,
		logger:      logger,
	}
}

// Execute fails with catalog.ErrVariantNotFound for ids never issued.
func (uc *GetVariantUseCase) Execute(ctx context.Context, id uint64) (*dto.VariantDTO, error) {
	v, err := uc.variantRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get variant", "variant_id", id, "error", err)
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	if v == nil {
		return nil, catalog.ErrVariantNotFoundByID(id)
	}
	return dto.ToVariantDTO(v), nil
}
