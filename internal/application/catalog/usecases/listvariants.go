package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/catalog/dto"
	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/shared/constants"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type ListVariantsQuery struct {
	Available *bool
	Page      int
	PageSize  int
}

type ListVariantsResult struct {
	Variants []*dto.VariantDTO
	Total    int64
	Page     int
	PageSize int
}

type ListVariantsUseCase struct {
	variantRepo catalog.VariantRepository
	logger      logger.Interface
}

func NewListVariantsUseCase(variantRepo catalog.VariantRepository, logger logger.Interface) *ListVariantsUseCase {
	return &ListVariantsUseCase{
		variantRepo: variantRepo,
		logger:      logger,
	}
}

func (uc *ListVariantsUseCase) Execute(ctx context.Context, query ListVariantsQuery) (*ListVariantsResult, error) {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.DefaultPageSize
	}

	variants, total, err := uc.variantRepo.List(ctx, catalog.VariantFilter{
		Available: query.Available,
		Page:      query.Page,
		PageSize:  query.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list variants", "error", err)
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}

	return &ListVariantsResult{
		Variants: dto.ToVariantDTOs(variants),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
