package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subledger/internal/shared/db"
	apperrors "github.com/orris-inc/subledger/internal/shared/errors"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type RegistrationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RegistrationMapper
	logger logger.Interface
}

func NewRegistrationRepository(db *gorm.DB, logger logger.Interface) registration.Repository {
	return &RegistrationRepositoryImpl{
		db:     db,
		mapper: mappers.NewRegistrationMapper(),
		logger: logger,
	}
}

func (r *RegistrationRepositoryImpl) Create(ctx context.Context, entity *registration.Registration) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return registration.ErrAlreadyRegistered
		}
		r.logger.Errorw("failed to create registration", "identity", model.Identity, "error", err)
		return fmt.Errorf("failed to create registration: %w", err)
	}

	r.logger.Debugw("registration created", "identity", model.Identity)
	return nil
}

// Update writes the new metadata guarded by the previous version.
func (r *RegistrationRepositoryImpl) Update(ctx context.Context, entity *registration.Registration) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RegistrationModel{}).
		Where("identity = ? AND version = ?", model.Identity, model.Version-1).
		Updates(map[string]interface{}{
			"metadata_url": model.MetadataURL,
			"updated_at":   model.UpdatedAt,
			"version":      model.Version,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update registration", "identity", model.Identity, "error", result.Error)
		return fmt.Errorf("failed to update registration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, entity.Identity())
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s is past version %d", registration.ErrStaleVersion, model.Identity, model.Version-1)
		}
		return fmt.Errorf("%w: %s", registration.ErrNotRegistered, model.Identity)
	}
	return nil
}

func (r *RegistrationRepositoryImpl) GetByIdentity(ctx context.Context, identity shared.Identity) (*registration.Registration, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), identity)
}

func (r *RegistrationRepositoryImpl) GetForUpdate(ctx context.Context, identity shared.Identity) (*registration.Registration, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), identity)
}

func (r *RegistrationRepositoryImpl) get(tx *gorm.DB, identity shared.Identity) (*registration.Registration, error) {
	var model models.RegistrationModel
	err := tx.Where("identity = ?", identity.String()).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get registration", "identity", identity, "error", err)
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *RegistrationRepositoryImpl) Exists(ctx context.Context, identity shared.Identity) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RegistrationModel{}).
		Where("identity = ?", identity.String()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check registration", "identity", identity, "error", err)
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return count > 0, nil
}
