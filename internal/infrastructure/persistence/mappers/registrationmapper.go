package mappers

import (
	"fmt"
	"time"

	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
)

type RegistrationMapper interface {
	ToEntity(model *models.RegistrationModel) (*registration.Registration, error)
	ToModel(entity *registration.Registration) *models.RegistrationModel
}

type RegistrationMapperImpl struct{}

func NewRegistrationMapper() RegistrationMapper {
	return &RegistrationMapperImpl{}
}

func (m *RegistrationMapperImpl) ToEntity(model *models.RegistrationModel) (*registration.Registration, error) {
	if model == nil {
		return nil, nil
	}

	identity, err := shared.ParseIdentity(model.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored identity: %w", err)
	}

	return registration.ReconstructRegistration(
		identity,
		model.MetadataURL,
		time.Unix(model.RegisteredAt, 0).UTC(),
		time.Unix(model.UpdatedAt, 0).UTC(),
		model.Version,
	)
}

func (m *RegistrationMapperImpl) ToModel(entity *registration.Registration) *models.RegistrationModel {
	if entity == nil {
		return nil
	}
	return &models.RegistrationModel{
		Identity:     entity.Identity().String(),
		MetadataURL:  entity.MetadataURL(),
		RegisteredAt: entity.RegisteredAt().Unix(),
		UpdatedAt:    entity.UpdatedAt().Unix(),
		Version:      entity.Version(),
	}
}
