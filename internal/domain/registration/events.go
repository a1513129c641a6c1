package registration

import (
	"time"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
)

const (
	EventTypeRegistered      = "registration.registered"
	EventTypeMetadataChanged = "registration.metadata_changed"
)

// RegisteredEvent is emitted once per identity.
type RegisteredEvent struct {
	events.BaseEvent
	Identity shared.Identity `json:"identity"`
	Metadata string          `json:"metadata"`
}

func NewRegisteredEvent(identity shared.Identity, metadata string, at time.Time) *RegisteredEvent {
	return &RegisteredEvent{
		BaseEvent: events.NewBaseEvent(EventTypeRegistered, identity.String(), at),
		Identity:  identity,
		Metadata:  metadata,
	}
}

// MetadataChangedEvent carries both values so the log alone can replay the
// registry.
type MetadataChangedEvent struct {
	events.BaseEvent
	Identity    shared.Identity `json:"identity"`
	OldMetadata string          `json:"old_metadata"`
	NewMetadata string          `json:"new_metadata"`
}

func NewMetadataChangedEvent(identity shared.Identity, oldMetadata, newMetadata string, at time.Time) *MetadataChangedEvent {
	return &MetadataChangedEvent{
		BaseEvent:   events.NewBaseEvent(EventTypeMetadataChanged, identity.String(), at),
		Identity:    identity,
		OldMetadata: oldMetadata,
		NewMetadata: newMetadata,
	}
}
