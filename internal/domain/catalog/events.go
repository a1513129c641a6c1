package catalog

import (
	"strconv"
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

const EventTypeVariantIssued = "catalog.variant_issued"

// VariantIssuedEvent is emitted once per appended variant. Availability
// toggles are silent.
type VariantIssuedEvent struct {
	events.BaseEvent
	VariantID uint64 `json:"variant_id"`
}

func NewVariantIssuedEvent(variantID uint64, at time.Time) *VariantIssuedEvent {
	return &VariantIssuedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeVariantIssued, strconv.FormatUint(variantID, 10), at),
		VariantID: variantID,
	}
}
