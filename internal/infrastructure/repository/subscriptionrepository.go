package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Get(ctx context.Context, identity shared.Identity) (*subscription.Subscription, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), identity)
}

func (r *SubscriptionRepositoryImpl) GetForUpdate(ctx context.Context, identity shared.Identity) (*subscription.Subscription, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), identity)
}

func (r *SubscriptionRepositoryImpl) get(tx *gorm.DB, identity shared.Identity) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := tx.Where("identity = ?", identity.String()).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "identity", identity, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Save(ctx context.Context, s *subscription.Subscription) error {
	model := r.mapper.ToModel(s)
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to save subscription", "identity", model.Identity, "error", err)
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, identity shared.Identity) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("identity = ?", identity.String()).
		Delete(&models.SubscriptionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete subscription", "identity", identity, "error", result.Error)
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrNotSubscribed
	}
	return nil
}
