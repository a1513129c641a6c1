package dto

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
)

type SubscriptionDTO struct {
	Identity     string     `json:"identity"`
	State        string     `json:"state"`
	Active       bool       `json:"active"`
	VariantID    *uint64    `json:"variant_id,omitempty"`
	SubscribedAt *time.Time `json:"subscribed_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	AmountPaid   uint64     `json:"amount_paid"`
}

// ToSubscriptionDTO renders the record of identity as seen at now. A nil
// record yields state "none".
func ToSubscriptionDTO(identity shared.Identity, s *subscription.Subscription, now time.Time) *SubscriptionDTO {
	state := subscription.StateOf(s, now)
	out := &SubscriptionDTO{
		Identity: identity.String(),
		State:    state.String(),
		Active:   state == subscription.StateActive,
	}
	if s == nil {
		return out
	}

	variantID := s.VariantID()
	subscribedAt := s.SubscribedAt()
	expiresAt := s.ExpiresAt()
	out.VariantID = &variantID
	out.SubscribedAt = &subscribedAt
	out.ExpiresAt = &expiresAt
	out.AmountPaid = s.AmountPaid()
	return out
}

type UnsubscribeResultDTO struct {
	Identity  string    `json:"identity"`
	VariantID uint64    `json:"variant_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Refunded  uint64    `json:"refunded"`
}
