package http

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
	"github.com/orris-inc/subledger/internal/interfaces/http/routes"

	_ "github.com/orris-inc/subledger/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	routes.SetupRegistrationRoutes(c.engine, &routes.RegistrationRouteConfig{
		RegistrationHandler: c.hdlrs.registrationHandler,
		AuthMiddleware:      c.authMiddleware,
		RateLimit:           c.rateLimitMiddleware,
	})

	routes.SetupCatalogRoutes(c.engine, &routes.CatalogRouteConfig{
		CatalogHandler:       c.hdlrs.catalogHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupSubscriptionRoutes(c.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: c.hdlrs.subscriptionHandler,
		AuthMiddleware:      c.authMiddleware,
		RateLimit:           c.rateLimitMiddleware,
	})

	routes.SetupTokenRoutes(c.engine, &routes.TokenRouteConfig{
		TokenHandler:   c.hdlrs.tokenHandler,
		EventHandler:   c.hdlrs.eventHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimit:      c.rateLimitMiddleware,
	})
}
