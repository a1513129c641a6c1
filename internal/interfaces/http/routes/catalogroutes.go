package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/interfaces/http/handlers"
	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
	"github.com/orris-inc/subledger/internal/shared/constants"
)

// CatalogRouteConfig holds dependencies for catalog routes.
type CatalogRouteConfig struct {
	CatalogHandler       *handlers.CatalogHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupCatalogRoutes configures public catalog reads and the admin writes.
func SetupCatalogRoutes(engine *gin.Engine, cfg *CatalogRouteConfig) {
	variants := engine.Group("/variants")
	{
		variants.GET("", cfg.CatalogHandler.ListVariants)
		variants.GET("/:id", cfg.CatalogHandler.GetVariant)
	}

	adminVariants := engine.Group("/admin/variants")
	adminVariants.Use(
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequirePermission(constants.ObjectCatalog, constants.ActionWrite),
	)
	{
		adminVariants.POST("", cfg.CatalogHandler.AddVariant)
		adminVariants.PUT("/:id/availability", cfg.CatalogHandler.SetAvailable)
	}
}
