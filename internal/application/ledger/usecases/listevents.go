package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/application/ledger/dto"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/shared/constants"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type ListEventsQuery struct {
	AggregateID   string
	EventType     string
	AfterSequence *uint64
	Page          int
	PageSize      int
}

type ListEventsResult struct {
	Events   []*dto.EventDTO
	Total    int64
	Page     int
	PageSize int
}

// ListEventsUseCase pages through the audit log in sequence order.
type ListEventsUseCase struct {
	eventLog ledger.EventLog
	logger   logger.Interface
}

func NewListEventsUseCase(eventLog ledger.EventLog, logger logger.Interface) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventLog: eventLog,
		logger:   logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, query ListEventsQuery) (*ListEventsResult, error) {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.DefaultPageSize
	}

	records, total, err := uc.eventLog.List(ctx, ledger.EventFilter{
		AggregateID:   query.AggregateID,
		EventType:     query.EventType,
		AfterSequence: query.AfterSequence,
		Page:          query.Page,
		PageSize:      query.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return &ListEventsResult{
		Events:   dto.ToEventDTOs(records),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
