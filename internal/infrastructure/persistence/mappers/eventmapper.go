package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
)

type EventMapper interface {
	ToModel(sequence uint64, event events.DomainEvent) (*models.LedgerEventModel, error)
	ToRecord(model *models.LedgerEventModel) *ledger.EventRecord
	ToRecords(models []*models.LedgerEventModel) []*ledger.EventRecord
}

type EventMapperImpl struct{}

func NewEventMapper() EventMapper {
	return &EventMapperImpl{}
}

func (m *EventMapperImpl) ToModel(sequence uint64, event events.DomainEvent) (*models.LedgerEventModel, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event.GetEventType(), err)
	}
	return &models.LedgerEventModel{
		Sequence:    sequence,
		EventID:     event.GetEventID(),
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		Payload:     datatypes.JSON(payload),
		OccurredAt:  event.GetOccurredAt().Unix(),
		Version:     event.GetVersion(),
	}, nil
}

func (m *EventMapperImpl) ToRecord(model *models.LedgerEventModel) *ledger.EventRecord {
	if model == nil {
		return nil
	}
	return &ledger.EventRecord{
		Sequence:    model.Sequence,
		EventID:     model.EventID,
		EventType:   model.EventType,
		AggregateID: model.AggregateID,
		Payload:     json.RawMessage(model.Payload),
		OccurredAt:  time.Unix(model.OccurredAt, 0).UTC(),
		Version:     model.Version,
	}
}

func (m *EventMapperImpl) ToRecords(ms []*models.LedgerEventModel) []*ledger.EventRecord {
	out := make([]*ledger.EventRecord, 0, len(ms))
	for _, model := range ms {
		out = append(out, m.ToRecord(model))
	}
	return out
}
