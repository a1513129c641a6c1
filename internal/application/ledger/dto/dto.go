package dto

import (
	"encoding/json"
	"time"

	"github.com/orris-inc/subledger/internal/domain/ledger"
)

type EventDTO struct {
	Sequence    uint64          `json:"sequence"`
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func ToEventDTOs(records []*ledger.EventRecord) []*EventDTO {
	out := make([]*EventDTO, 0, len(records))
	for _, r := range records {
		out = append(out, &EventDTO{
			Sequence:    r.Sequence,
			EventID:     r.EventID,
			EventType:   r.EventType,
			AggregateID: r.AggregateID,
			Payload:     r.Payload,
			OccurredAt:  r.OccurredAt,
		})
	}
	return out
}
