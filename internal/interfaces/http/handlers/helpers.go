package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/errors"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

// callerIdentity returns the authenticated identity or writes a 401.
func callerIdentity(c *gin.Context) (shared.Identity, bool) {
	identity, ok := utils.GetIdentity(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return identity, true
}

func parseIdentityParam(c *gin.Context) (shared.Identity, error) {
	identity, err := shared.ParseIdentity(c.Param("identity"))
	if err != nil {
		return "", toAppError(err)
	}
	return identity, nil
}

func parseVariantID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("Invalid variant ID", c.Param("id"))
	}
	return id, nil
}
