package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type VariantRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.VariantMapper
	logger logger.Interface
}

func NewVariantRepository(db *gorm.DB, logger logger.Interface) catalog.VariantRepository {
	return &VariantRepositoryImpl{
		db:     db,
		mapper: mappers.NewVariantMapper(),
		logger: logger,
	}
}

func (r *VariantRepositoryImpl) Create(ctx context.Context, v *catalog.Variant) error {
	model := r.mapper.ToModel(v)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create variant", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

func (r *VariantRepositoryImpl) GetByID(ctx context.Context, id uint64) (*catalog.Variant, error) {
	var model models.VariantModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get variant", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *VariantRepositoryImpl) UpdateAvailability(ctx context.Context, v *catalog.Variant) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.VariantModel{}).
		Where("id = ?", v.ID()).
		Updates(map[string]interface{}{
			"available":  v.IsAvailable(),
			"updated_at": v.UpdatedAt().Unix(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update variant availability", "id", v.ID(), "error", result.Error)
		return fmt.Errorf("failed to update variant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrVariantNotFoundByID(v.ID())
	}
	return nil
}

func (r *VariantRepositoryImpl) List(ctx context.Context, filter catalog.VariantFilter) ([]*catalog.Variant, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.VariantModel{})
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count variants", "error", err)
		return nil, 0, fmt.Errorf("failed to count variants: %w", err)
	}

	if filter.PageSize > 0 {
		query = query.Scopes(db.Paginate(filter.Page, filter.PageSize))
	}

	var rows []*models.VariantModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list variants", "error", err)
		return nil, 0, fmt.Errorf("failed to list variants: %w", err)
	}

	return r.mapper.ToEntities(rows), total, nil
}
