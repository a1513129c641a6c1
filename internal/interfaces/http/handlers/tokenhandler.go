package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/application/token/usecases"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

var (
	_ = usecases.AllowanceResult{}
	_ = usecases.BalanceResult{}
)

// TokenHandler exposes the settlement token to account holders.
type TokenHandler struct {
	approveUC    approveUseCase
	transferUC   transferUseCase
	getBalanceUC getBalanceUseCase
	logger       logger.Interface
}

func NewTokenHandler(
	approveUC approveUseCase,
	transferUC transferUseCase,
	getBalanceUC getBalanceUseCase,
	logger logger.Interface,
) *TokenHandler {
	return &TokenHandler{
		approveUC:    approveUC,
		transferUC:   transferUC,
		getBalanceUC: getBalanceUC,
		logger:       logger,
	}
}

type ApproveRequest struct {
	Amount uint64 `json:"amount" binding:"max=9223372036854775807"`
}

type TransferRequest struct {
	To     string `json:"to" binding:"required,identity"`
	Amount uint64 `json:"amount" binding:"max=9223372036854775807"`
}

// Approve godoc
//
//	@Summary		Approve the subscription service as spender
//	@Description	Sets, not adds to, the amount the service may pull from the caller
//	@Tags			token
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		ApproveRequest	true	"Allowance"
//	@Success		200		{object}	utils.APIResponse{data=usecases.AllowanceResult}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		401		{object}	utils.APIResponse
//	@Router			/token/approve [post]
func (h *TokenHandler) Approve(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for approve", "identity", identity, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.approveUC.Execute(c.Request.Context(), usecases.ApproveCommand{
		Owner:  identity,
		Amount: req.Amount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Allowance updated", result)
}

// Transfer godoc
//
//	@Summary		Transfer tokens
//	@Tags			token
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		TransferRequest	true	"Recipient and amount"
//	@Success		200		{object}	utils.APIResponse{data=usecases.BalanceResult}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		401		{object}	utils.APIResponse
//	@Failure		402		{object}	utils.APIResponse	"InsufficientFunds"
//	@Router			/token/transfer [post]
func (h *TokenHandler) Transfer(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for transfer", "identity", identity, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	to, err := shared.ParseIdentity(req.To)
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	result, err := h.transferUC.Execute(c.Request.Context(), usecases.TransferCommand{
		From:   identity,
		To:     to,
		Amount: req.Amount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Transfer completed", result)
}

// GetBalance godoc
//
//	@Summary		Get a token balance
//	@Description	Includes the allowance granted to the subscription service
//	@Tags			token
//	@Produce		json
//	@Param			identity	path		string	true	"0x-prefixed identity"
//	@Success		200			{object}	utils.APIResponse{data=usecases.BalanceResult}
//	@Failure		400			{object}	utils.APIResponse
//	@Router			/token/balances/{identity} [get]
func (h *TokenHandler) GetBalance(c *gin.Context) {
	identity, err := parseIdentityParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getBalanceUC.Execute(c.Request.Context(), identity)
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
