// Package catalog models the append-only list of subscription variants.
package catalog

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

// Variant is a purchasable subscription option. Cost and time-to-live never
// change after issue; only availability is mutable.
type Variant struct {
	id         uint64
	cost       uint64
	timeToLive uint64
	available  bool
	createdAt  time.Time
	updatedAt  time.Time

	events.Recorder
}

// NewVariant issues a variant under an id taken from the catalog sequence.
// Cost and time-to-live are accepted as given, including zero.
func NewVariant(id, cost, timeToLive uint64, available bool, now time.Time) *Variant {
	v := &Variant{
		id:         id,
		cost:       cost,
		timeToLive: timeToLive,
		available:  available,
		createdAt:  now,
		updatedAt:  now,
	}
	v.Record(NewVariantIssuedEvent(id, now))
	return v
}

// ReconstructVariant reconstructs a variant from persistence
func ReconstructVariant(id, cost, timeToLive uint64, available bool, createdAt, updatedAt time.Time) *Variant {
	return &Variant{
		id:         id,
		cost:       cost,
		timeToLive: timeToLive,
		available:  available,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (v *Variant) ID() uint64           { return v.id }
func (v *Variant) Cost() uint64         { return v.cost }
func (v *Variant) TimeToLive() uint64   { return v.timeToLive }
func (v *Variant) IsAvailable() bool    { return v.available }
func (v *Variant) CreatedAt() time.Time { return v.createdAt }
func (v *Variant) UpdatedAt() time.Time { return v.updatedAt }

// TimeToLiveDuration converts the ttl seconds to a duration.
func (v *Variant) TimeToLiveDuration() time.Duration {
	return time.Duration(v.timeToLive) * time.Second
}

// SetAvailable sets the flag and reports whether it changed.
func (v *Variant) SetAvailable(available bool, now time.Time) bool {
	if v.available == available {
		return false
	}
	v.available = available
	v.updatedAt = now
	return true
}
