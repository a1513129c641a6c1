// Package ledger describes the append-only audit log shared by all bounded
// contexts.
package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

// EventRecord is a persisted domain event.
type EventRecord struct {
	Sequence    uint64
	EventID     string
	EventType   string
	AggregateID string
	Payload     json.RawMessage
	OccurredAt  time.Time
	Version     int
}

type EventFilter struct {
	AggregateID string
	EventType   string
	// AfterSequence returns only records with a larger sequence.
	AfterSequence *uint64
	Page          int
	PageSize      int
}

// EventLog appends events inside the caller's transaction.
type EventLog interface {
	Append(ctx context.Context, evts ...events.DomainEvent) error
	List(ctx context.Context, filter EventFilter) ([]*EventRecord, int64, error)
}

// Sequence names used with Sequencer.
const (
	SequenceVariant = "variant"
	SequenceEvent   = "event"
)

// Sequencer hands out gap-free counters starting at 0. Next must run inside
// a transaction; a rollback returns the value to the pool.
type Sequencer interface {
	Next(ctx context.Context, name string) (uint64, error)
	Peek(ctx context.Context, name string) (uint64, error)
}
