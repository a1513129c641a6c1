package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type EventLogRepositoryImpl struct {
	db        *gorm.DB
	sequencer ledger.Sequencer
	mapper    mappers.EventMapper
	logger    logger.Interface
}

func NewEventLogRepository(db *gorm.DB, sequencer ledger.Sequencer, logger logger.Interface) ledger.EventLog {
	return &EventLogRepositoryImpl{
		db:        db,
		sequencer: sequencer,
		mapper:    mappers.NewEventMapper(),
		logger:    logger,
	}
}

func (r *EventLogRepositoryImpl) Append(ctx context.Context, evts ...events.DomainEvent) error {
	tx := db.GetTxFromContext(ctx, r.db)
	for _, event := range evts {
		seq, err := r.sequencer.Next(ctx, ledger.SequenceEvent)
		if err != nil {
			return fmt.Errorf("failed to allocate event sequence: %w", err)
		}

		model, err := r.mapper.ToModel(seq, event)
		if err != nil {
			return err
		}

		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to append event",
				"event_type", event.GetEventType(),
				"event_id", event.GetEventID(),
				"error", err,
			)
			return fmt.Errorf("failed to append event: %w", err)
		}
	}
	return nil
}

func (r *EventLogRepositoryImpl) List(ctx context.Context, filter ledger.EventFilter) ([]*ledger.EventRecord, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.LedgerEventModel{})
	if filter.AggregateID != "" {
		query = query.Where("aggregate_id = ?", filter.AggregateID)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.AfterSequence != nil {
		query = query.Where("seq > ?", *filter.AfterSequence)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count events", "error", err)
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	if filter.PageSize > 0 {
		query = query.Scopes(db.Paginate(filter.Page, filter.PageSize))
	}

	var rows []*models.LedgerEventModel
	if err := query.Order("seq ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list events", "error", err)
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return r.mapper.ToRecords(rows), total, nil
}
