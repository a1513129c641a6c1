package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "github.com/orris-inc/subledger/internal/application/subscription/dto"
	"github.com/orris-inc/subledger/internal/application/subscription/usecases"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

var (
	_ = subdto.SubscriptionDTO{}
	_ = subdto.UnsubscribeResultDTO{}
)

type SubscriptionHandler struct {
	subscribeUC       subscribeUseCase
	unsubscribeUC     unsubscribeUseCase
	getSubscriptionUC getSubscriptionUseCase
	hasActiveUC       hasActiveSubscriptionUseCase
	logger            logger.Interface
}

func NewSubscriptionHandler(
	subscribeUC subscribeUseCase,
	unsubscribeUC unsubscribeUseCase,
	getSubscriptionUC getSubscriptionUseCase,
	hasActiveUC hasActiveSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscribeUC:       subscribeUC,
		unsubscribeUC:     unsubscribeUC,
		getSubscriptionUC: getSubscriptionUC,
		hasActiveUC:       hasActiveUC,
		logger:            logger,
	}
}

type SubscribeRequest struct {
	VariantID *uint64 `json:"variant_id" binding:"required"`
}

// Subscribe godoc
//
//	@Summary		Subscribe to a variant
//	@Description	Pulls the variant cost from the caller into the beneficiary account. The caller must have approved the service beforehand.
//	@Tags			subscriptions
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		SubscribeRequest	true	"Variant to buy"
//	@Success		201		{object}	utils.APIResponse{data=subdto.SubscriptionDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		401		{object}	utils.APIResponse
//	@Failure		402		{object}	utils.APIResponse	"InsufficientFunds or TransferRejected"
//	@Failure		404		{object}	utils.APIResponse	"VariantNotFound"
//	@Failure		409		{object}	utils.APIResponse	"AlreadyActive"
//	@Router			/subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for subscribe", "identity", identity, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.subscribeUC.Execute(c.Request.Context(), usecases.SubscribeCommand{
		Identity:  identity,
		VariantID: *req.VariantID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.CreatedResponse(c, result, "Subscribed successfully")
}

// Unsubscribe godoc
//
//	@Summary		Cancel the caller's subscription
//	@Tags			subscriptions
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse{data=subdto.UnsubscribeResultDTO}
//	@Failure		401	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse	"NotSubscribed"
//	@Router			/subscriptions [delete]
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	result, err := h.unsubscribeUC.Execute(c.Request.Context(), usecases.UnsubscribeCommand{Identity: identity})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unsubscribed successfully", result)
}

// GetMySubscription godoc
//
//	@Summary		Get the caller's subscription
//	@Description	State is one of none, active, expired
//	@Tags			subscriptions
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse{data=subdto.SubscriptionDTO}
//	@Failure		401	{object}	utils.APIResponse
//	@Router			/subscriptions/me [get]
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.getSubscriptionUC.Execute(ctx, identity)
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	// Active goes through the status cache.
	active, err := h.hasActiveUC.Execute(ctx, identity)
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}
	result.Active = active

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
