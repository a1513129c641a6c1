package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/interfaces/http/handlers"
	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
)

// TokenRouteConfig holds dependencies for token and audit log routes.
type TokenRouteConfig struct {
	TokenHandler   *handlers.TokenHandler
	EventHandler   *handlers.EventHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

// SetupTokenRoutes configures token routes and the public audit log.
func SetupTokenRoutes(engine *gin.Engine, cfg *TokenRouteConfig) {
	token := engine.Group("/token")
	{
		token.POST("/approve", cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit.Limit(), cfg.TokenHandler.Approve)
		token.POST("/transfer", cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit.Limit(), cfg.TokenHandler.Transfer)
		token.GET("/balances/:identity", cfg.TokenHandler.GetBalance)
	}

	engine.GET("/events", cfg.EventHandler.ListEvents)
}
