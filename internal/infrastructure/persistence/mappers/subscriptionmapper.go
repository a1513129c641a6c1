package mappers

import (
	"fmt"
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	identity, err := shared.ParseIdentity(model.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored identity: %w", err)
	}

	return subscription.ReconstructSubscription(
		identity,
		model.VariantID,
		time.Unix(model.SubscribedAt, 0),
		time.Unix(model.ExpiresAt, 0),
		model.AmountPaid,
	)
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}
	return &models.SubscriptionModel{
		Identity:     entity.Identity().String(),
		VariantID:    entity.VariantID(),
		SubscribedAt: entity.SubscribedAt().Unix(),
		ExpiresAt:    entity.ExpiresAt().Unix(),
		AmountPaid:   entity.AmountPaid(),
	}
}
