package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogdto "github.com/orris-inc/subledger/internal/application/catalog/dto"
	"github.com/orris-inc/subledger/internal/application/catalog/usecases"
	"github.com/orris-inc/subledger/internal/shared/errors"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

var _ = catalogdto.VariantDTO{}

type CatalogHandler struct {
	addVariantUC   addVariantUseCase
	setAvailableUC setAvailableUseCase
	getVariantUC   getVariantUseCase
	listVariantsUC listVariantsUseCase
	logger         logger.Interface
}

func NewCatalogHandler(
	addVariantUC addVariantUseCase,
	setAvailableUC setAvailableUseCase,
	getVariantUC getVariantUseCase,
	listVariantsUC listVariantsUseCase,
	logger logger.Interface,
) *CatalogHandler {
	return &CatalogHandler{
		addVariantUC:   addVariantUC,
		setAvailableUC: setAvailableUC,
		getVariantUC:   getVariantUC,
		listVariantsUC: listVariantsUC,
		logger:         logger,
	}
}

type AddVariantRequest struct {
	Cost       uint64 `json:"cost" binding:"max=9223372036854775807"`
	TimeToLive uint64 `json:"time_to_live" binding:"max=9223372036854775807"`
	Available  *bool  `json:"available"`
}

type SetAvailableRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// AddVariant godoc
//
//	@Summary		Issue a subscription variant
//	@Description	Ids are assigned sequentially from 0. Available defaults to true.
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		AddVariantRequest	true	"Variant terms"
//	@Success		201		{object}	utils.APIResponse{data=catalogdto.VariantDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		403		{object}	utils.APIResponse
//	@Router			/admin/variants [post]
func (h *CatalogHandler) AddVariant(c *gin.Context) {
	var req AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add variant", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	result, err := h.addVariantUC.Execute(c.Request.Context(), usecases.AddVariantCommand{
		Cost:       req.Cost,
		TimeToLive: req.TimeToLive,
		Available:  available,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.CreatedResponse(c, result, "Variant created successfully")
}

// SetAvailable godoc
//
//	@Summary		Toggle variant availability
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Variant ID"
//	@Param			request	body		SetAvailableRequest	true	"Availability flag"
//	@Success		200		{object}	utils.APIResponse{data=catalogdto.VariantDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		403		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse	"VariantNotFound"
//	@Router			/admin/variants/{id}/availability [put]
func (h *CatalogHandler) SetAvailable(c *gin.Context) {
	variantID, err := parseVariantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetAvailableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set available",
			"variant_id", variantID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.setAvailableUC.Execute(c.Request.Context(), usecases.SetAvailableCommand{
		VariantID: variantID,
		Available: *req.Available,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Availability updated", result)
}

// GetVariant godoc
//
//	@Summary		Get a subscription variant
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		int	true	"Variant ID"
//	@Success		200	{object}	utils.APIResponse{data=catalogdto.VariantDTO}
//	@Failure		404	{object}	utils.APIResponse	"VariantNotFound"
//	@Router			/variants/{id} [get]
func (h *CatalogHandler) GetVariant(c *gin.Context) {
	variantID, err := parseVariantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getVariantUC.Execute(c.Request.Context(), variantID)
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListVariants godoc
//
//	@Summary		List subscription variants
//	@Description	Ordered by id
//	@Tags			catalog
//	@Produce		json
//	@Param			available	query		bool	false	"Filter by availability"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Failure		400			{object}	utils.APIResponse
//	@Router			/variants [get]
func (h *CatalogHandler) ListVariants(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListVariantsQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid available filter", raw))
			return
		}
		query.Available = &available
	}

	result, err := h.listVariantsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.ListSuccessResponse(c, result.Variants, result.Total, result.Page, result.PageSize)
}
