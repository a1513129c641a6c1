package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subledger/internal/interfaces/http/handlers"
	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimit           *middleware.RateLimitMiddleware
}

// SetupSubscriptionRoutes configures the caller's subscription routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.POST("", cfg.RateLimit.Limit(), cfg.SubscriptionHandler.Subscribe)
		subscriptions.DELETE("", cfg.RateLimit.Limit(), cfg.SubscriptionHandler.Unsubscribe)
		subscriptions.GET("/me", cfg.SubscriptionHandler.GetMySubscription)
	}
}
