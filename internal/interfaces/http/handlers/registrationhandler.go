package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	regdto "github.com/orris-inc/subledger/internal/application/registration/dto"
	"github.com/orris-inc/subledger/internal/application/registration/usecases"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

var _ = regdto.RegistrationDTO{}

type RegistrationHandler struct {
	registerUC        registerUseCase
	updateMetadataUC  updateMetadataUseCase
	getRegistrationUC getRegistrationUseCase
	logger            logger.Interface
}

func NewRegistrationHandler(
	registerUC registerUseCase,
	updateMetadataUC updateMetadataUseCase,
	getRegistrationUC getRegistrationUseCase,
	logger logger.Interface,
) *RegistrationHandler {
	return &RegistrationHandler{
		registerUC:        registerUC,
		updateMetadataUC:  updateMetadataUC,
		getRegistrationUC: getRegistrationUC,
		logger:            logger,
	}
}

type RegisterRequest struct {
	MetadataURL string `json:"metadata_url" binding:"max=2048"`
}

type UpdateMetadataRequest struct {
	MetadataURL string `json:"metadata_url" binding:"max=2048"`
}

// Register godoc
//
//	@Summary		Register the caller
//	@Description	Adds the authenticated identity to the registry with its metadata URL
//	@Tags			registrations
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		RegisterRequest	true	"Registration metadata"
//	@Success		201		{object}	utils.APIResponse{data=regdto.RegistrationDTO}
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		401		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse	"AlreadyRegistered"
//	@Router			/registrations [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "identity", identity, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Identity:    identity,
		MetadataURL: req.MetadataURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.CreatedResponse(c, result, "Registered successfully")
}

// UpdateMetadata godoc
//
//	@Summary		Update registration metadata
//	@Tags			registrations
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		UpdateMetadataRequest	true	"New metadata"
//	@Success		200		{object}	utils.APIResponse{data=regdto.RegistrationDTO}
//	@Failure		401		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse	"NotRegistered"
//	@Failure		409		{object}	utils.APIResponse	"StaleVersion"
//	@Router			/registrations/metadata [put]
func (h *RegistrationHandler) UpdateMetadata(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update metadata", "identity", identity, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateMetadataUC.Execute(c.Request.Context(), usecases.UpdateMetadataCommand{
		Identity:    identity,
		MetadataURL: req.MetadataURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Metadata updated successfully", result)
}

// GetRegistration godoc
//
//	@Summary		Look up a registration
//	@Description	Unregistered identities are reported with registered=false
//	@Tags			registrations
//	@Produce		json
//	@Param			identity	path		string	true	"0x-prefixed identity"
//	@Success		200			{object}	utils.APIResponse{data=regdto.RegistrationDTO}
//	@Failure		400			{object}	utils.APIResponse
//	@Router			/registrations/{identity} [get]
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	identity, err := parseIdentityParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getRegistrationUC.Execute(c.Request.Context(), usecases.GetRegistrationQuery{Identity: identity})
	if err != nil {
		utils.ErrorResponseWithError(c, toAppError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
