package http

import (
	"github.com/orris-inc/subledger/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	registrationHandler *handlers.RegistrationHandler
	catalogHandler      *handlers.CatalogHandler
	subscriptionHandler *handlers.SubscriptionHandler
	tokenHandler        *handlers.TokenHandler
	eventHandler        *handlers.EventHandler
	healthHandler       *handlers.HealthHandler
}
