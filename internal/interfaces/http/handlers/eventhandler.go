package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	ledgerdto "github.com/orris-inc/subledger/internal/application/ledger/dto"
	"github.com/orris-inc/subledger/internal/application/ledger/usecases"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/errors"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

var _ = ledgerdto.EventDTO{}

// EventHandler serves the ledger audit log.
type EventHandler struct {
	listEventsUC listEventsUseCase
	logger       logger.Interface
}

func NewEventHandler(listEventsUC listEventsUseCase, logger logger.Interface) *EventHandler {
	return &EventHandler{
		listEventsUC: listEventsUC,
		logger:       logger,
	}
}

// ListEvents godoc
//
//	@Summary		List ledger events
//	@Description	Events in sequence order. Variant events use the variant id as aggregate.
//	@Tags			events
//	@Produce		json
//	@Param			identity	query		string	false	"Filter by identity"
//	@Param			aggregate	query		string	false	"Filter by aggregate id"
//	@Param			type		query		string	false	"Filter by event type"
//	@Param			after		query		int		false	"Only events after this sequence"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Failure		400			{object}	utils.APIResponse
//	@Router			/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListEventsQuery{
		AggregateID: c.Query("aggregate"),
		EventType:   c.Query("type"),
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	}

	if raw := c.Query("identity"); raw != "" {
		identity, err := shared.ParseIdentity(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, toAppError(err))
			return
		}
		query.AggregateID = identity.String()
	}

	if raw := c.Query("after"); raw != "" {
		after, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid after sequence", raw))
			return
		}
		query.AfterSequence = &after
	}

	result, err := h.listEventsUC.Execute(c.Request.Context(), query)
	if err != nil {
		h.logger.Errorw("failed to list events", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Events, result.Total, result.Page, result.PageSize)
}
