package mappers

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
)

type VariantMapper interface {
	ToEntity(model *models.VariantModel) *catalog.Variant
	ToModel(entity *catalog.Variant) *models.VariantModel
	ToEntities(models []*models.VariantModel) []*catalog.Variant
}

type VariantMapperImpl struct{}

func NewVariantMapper() VariantMapper {
	return &VariantMapperImpl{}
}

func (m *VariantMapperImpl) ToEntity(model *models.VariantModel) *catalog.Variant {
	if model == nil {
		return nil
	}
	return catalog.ReconstructVariant(
		model.ID,
		model.Cost,
		model.TimeToLive,
		model.Available,
		time.Unix(model.CreatedAt, 0).UTC(),
		time.Unix(model.UpdatedAt, 0).UTC(),
	)
}

func (m *VariantMapperImpl) ToModel(entity *catalog.Variant) *models.VariantModel {
	if entity == nil {
		return nil
	}
	return &models.VariantModel{
		ID:         entity.ID(),
		Cost:       entity.Cost(),
		TimeToLive: entity.TimeToLive(),
		Available:  entity.IsAvailable(),
		CreatedAt:  entity.CreatedAt().Unix(),
		UpdatedAt:  entity.UpdatedAt().Unix(),
	}
}

func (m *VariantMapperImpl) ToEntities(ms []*models.VariantModel) []*catalog.Variant {
	out := make([]*catalog.Variant, 0, len(ms))
	for _, model := range ms {
		out = append(out, m.ToEntity(model))
	}
	return out
}
