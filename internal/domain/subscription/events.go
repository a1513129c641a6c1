package subscription

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

const (
	EventTypeSubscribed   = "subscription.subscribed"
	EventTypeUnsubscribed = "subscription.unsubscribed"
	EventTypeRefunded     = "subscription.refunded"
)

// SubscribedEvent records a paid subscription. ExpiresAt is unix seconds.
type SubscribedEvent struct {
	events.BaseEvent
	Identity  shared.Identity `json:"identity"`
	VariantID uint64          `json:"variant_id"`
	ExpiresAt int64           `json:"expires_at"`
	Cost      uint64          `json:"cost"`
}

func NewSubscribedEvent(identity shared.Identity, variantID uint64, expiresAt time.Time, cost uint64, at time.Time) *SubscribedEvent {
	return &SubscribedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeSubscribed, identity.String(), at),
		Identity:  identity,
		VariantID: variantID,
		ExpiresAt: expiresAt.Unix(),
		Cost:      cost,
	}
}

// UnsubscribedEvent carries the values of the cleared record.
type UnsubscribedEvent struct {
	events.BaseEvent
	Identity  shared.Identity `json:"identity"`
	VariantID uint64          `json:"variant_id"`
	ExpiresAt int64           `json:"expires_at"`
}

func NewUnsubscribedEvent(identity shared.Identity, variantID uint64, expiresAt time.Time, at time.Time) *UnsubscribedEvent {
	return &UnsubscribedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeUnsubscribed, identity.String(), at),
		Identity:  identity,
		VariantID: variantID,
		ExpiresAt: expiresAt.Unix(),
	}
}

type RefundedEvent struct {
	events.BaseEvent
	Identity  shared.Identity `json:"identity"`
	VariantID uint64          `json:"variant_id"`
	Amount    uint64          `json:"amount"`
}

func NewRefundedEvent(identity shared.Identity, variantID, amount uint64, at time.Time) *RefundedEvent {
	return &RefundedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeRefunded, identity.String(), at),
		Identity:  identity,
		VariantID: variantID,
		Amount:    amount,
	}
}
