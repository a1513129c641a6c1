// Package subscription models the per-identity entitlement purchased from
// a catalog variant.
package subscription

import (
	"fmt"
	"time"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

// Subscription is the single record an identity may hold. Timestamps have
// second precision.
type Subscription struct {
	identity     shared.Identity
	variantID    uint64
	subscribedAt time.Time
	expiresAt    time.Time
	amountPaid   uint64

	events.Recorder
}

// NewSubscription starts an entitlement to variant at now. The variant's
// ttl must be non-zero.
func NewSubscription(identity shared.Identity, variant *catalog.Variant, now time.Time) (*Subscription, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("identity is required")
	}
	if variant == nil {
		return nil, catalog.ErrVariantNotFound
	}
	if variant.TimeToLive() == 0 {
		return nil, fmt.Errorf("%w: variant %d", ErrInvalidTimeToLive, variant.ID())
	}

	start := now.UTC().Truncate(time.Second)
	s := &Subscription{
		identity:     identity,
		variantID:    variant.ID(),
		subscribedAt: start,
		expiresAt:    expiryOf(start, variant.TimeToLive()),
		amountPaid:   variant.Cost(),
	}
	s.Record(NewSubscribedEvent(identity, s.variantID, s.expiresAt, s.amountPaid, start))
	return s, nil
}

// MaxExpiry is the latest expiry a subscription can carry. Longer ttls
// saturate to it.
var MaxExpiry = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

func expiryOf(start time.Time, ttl uint64) time.Time {
	if !start.Before(MaxExpiry) || ttl > uint64(MaxExpiry.Unix()-start.Unix()) {
		return MaxExpiry
	}
	return time.Unix(start.Unix()+int64(ttl), 0).UTC()
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(identity shared.Identity, variantID uint64, subscribedAt, expiresAt time.Time, amountPaid uint64) (*Subscription, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("identity is required")
	}
	if expiresAt.Before(subscribedAt) {
		return nil, fmt.Errorf("expiry %s precedes start %s", expiresAt, subscribedAt)
	}
	return &Subscription{
		identity:     identity,
		variantID:    variantID,
		subscribedAt: subscribedAt.UTC(),
		expiresAt:    expiresAt.UTC(),
		amountPaid:   amountPaid,
	}, nil
}

func (s *Subscription) Identity() shared.Identity { return s.identity }
func (s *Subscription) VariantID() uint64         { return s.variantID }
func (s *Subscription) SubscribedAt() time.Time   { return s.subscribedAt }
func (s *Subscription) ExpiresAt() time.Time      { return s.expiresAt }
func (s *Subscription) AmountPaid() uint64        { return s.amountPaid }

// Duration is the length of the purchased entitlement.
func (s *Subscription) Duration() time.Duration {
	return s.expiresAt.Sub(s.subscribedAt)
}

// IsActive holds while the expiry lies strictly in the future.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.expiresAt.After(now)
}

// Remaining is the unused part of the entitlement, zero once expired.
func (s *Subscription) Remaining(now time.Time) time.Duration {
	if !s.IsActive(now) {
		return 0
	}
	return s.expiresAt.Sub(now)
}

// StateOf derives the lifecycle state of a possibly absent record.
func StateOf(s *Subscription, now time.Time) State {
	switch {
	case s == nil:
		return StateNone
	case s.IsActive(now):
		return StateActive
	default:
		return StateExpired
	}
}

// Cancel ends an active subscription. The caller deletes the record after
// persisting the recorded event.
func (s *Subscription) Cancel(now time.Time) error {
	if !s.IsActive(now) {
		return ErrExpiredAt(s.expiresAt)
	}
	s.Record(NewUnsubscribedEvent(s.identity, s.variantID, s.expiresAt, now))
	return nil
}

// RecordRefund notes a refund paid back to the subscriber.
func (s *Subscription) RecordRefund(amount uint64, now time.Time) {
	s.Record(NewRefundedEvent(s.identity, s.variantID, amount, now))
}
