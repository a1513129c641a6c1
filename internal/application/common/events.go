// Package common holds helpers shared by the application use cases.
package common

import (
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// PublishCommitted hands events to the dispatcher after their transaction
// committed. The events are already in the ledger event log, so a failed
// delivery is logged and not returned.
func PublishCommitted(publisher events.EventPublisher, log logger.Interface, evts []events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(evts); err != nil {
		log.Warnw("failed to publish committed events", "count", len(evts), "error", err)
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(events.DomainEvent) error      { return nil }
func (NopPublisher) PublishAll([]events.DomainEvent) error { return nil }
