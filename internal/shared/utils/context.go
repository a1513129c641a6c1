package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/constants"
)

// GetIdentity returns the caller identity stored by the auth middleware.
func GetIdentity(c *gin.Context) (shared.Identity, bool) {
	v, ok := c.Get(constants.ContextKeyIdentity)
	if !ok {
		return "", false
	}
	identity, ok := v.(shared.Identity)
	return identity, ok && !identity.IsZero()
}

// SetIdentity stores the caller identity on the request context.
func SetIdentity(c *gin.Context, identity shared.Identity) {
	c.Set(constants.ContextKeyIdentity, identity)
}
