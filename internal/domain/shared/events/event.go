package events

import (
	"time"

	"github.com/orris-inc/subledger/internal/shared/id"
)

// DomainEvent represents a domain event interface
type DomainEvent interface {
	// GetEventID returns the unique identifier of this occurrence
	GetEventID() string

	// GetAggregateID returns the ID of the aggregate that generated the event
	GetAggregateID() string

	// GetEventType returns the type/name of the event
	GetEventType() string

	// GetOccurredAt returns when the event occurred
	GetOccurredAt() time.Time

	// GetVersion returns the event version for schema evolution
	GetVersion() int
}

// BaseEvent provides common fields for all domain events
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	Version     int       `json:"version"`
}

// NewBaseEvent stamps a fresh event id at version 1.
func NewBaseEvent(eventType, aggregateID string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		EventID:     id.NewEventID(),
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  occurredAt.UTC(),
		Version:     1,
	}
}

func (e BaseEvent) GetEventID() string       { return e.EventID }
func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }
func (e BaseEvent) GetVersion() int          { return e.Version }

// EventHandler represents a handler for domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(event DomainEvent) error

	// CanHandle checks if this handler can handle the given event type
	CanHandle(eventType string) bool
}

// EventPublisher publishes domain events
type EventPublisher interface {
	// Publish publishes a single event
	Publish(event DomainEvent) error

	// PublishAll publishes the events of one committed transaction
	PublishAll(events []DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types
	Subscribe(eventType string, handler EventHandler) error
}

// EventDispatcher combines publisher and subscriber functionality
type EventDispatcher interface {
	EventPublisher
	EventSubscriber

	// Start starts the event dispatcher
	Start() error

	// Stop stops the event dispatcher
	Stop() error
}

// Recorder collects events raised by an aggregate until the application
// layer pulls them after persisting.
type Recorder struct {
	events []DomainEvent
}

func (r *Recorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// GetEvents returns and clears recorded domain events
func (r *Recorder) GetEvents() []DomainEvent {
	out := r.events
	r.events = nil
	return out
}
