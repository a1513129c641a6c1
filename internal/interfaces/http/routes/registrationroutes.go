package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/interfaces/http/handlers"
	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
)

// RegistrationRouteConfig holds dependencies for registry routes.
type RegistrationRouteConfig struct {
	RegistrationHandler *handlers.RegistrationHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimit           *middleware.RateLimitMiddleware
}

// SetupRegistrationRoutes configures registry routes.
func SetupRegistrationRoutes(engine *gin.Engine, cfg *RegistrationRouteConfig) {
	registrations := engine.Group("/registrations")
	{
		registrations.POST("", cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit.Limit(), cfg.RegistrationHandler.Register)
		// Named endpoint registered before /:identity
		registrations.PUT("/metadata", cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit.Limit(), cfg.RegistrationHandler.UpdateMetadata)
		registrations.GET("/:identity", cfg.RegistrationHandler.GetRegistration)
	}
}
