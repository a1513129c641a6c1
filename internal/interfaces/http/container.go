package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/application/subscription/usecases"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/infrastructure/auth"
	"github.com/orris-inc/subledger/internal/infrastructure/config"
	"github.com/orris-inc/subledger/internal/infrastructure/permission"
	"github.com/orris-inc/subledger/internal/infrastructure/pubsub"
	"github.com/orris-inc/subledger/internal/infrastructure/tokenledger"
	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/guard"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and provides Shutdown() for
// graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	clock  clock.Clock
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware

	// Ledger plumbing shared by the use cases
	txMgr       *db.TransactionManager
	guard       *guard.Guard
	tokens      *tokenledger.Ledger
	dispatcher  *events.InMemoryEventDispatcher
	statusCache usecases.StatusCache

	// Auth and authorization
	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer

	// Ledger event bus for cross-instance fan-out
	eventBus         *pubsub.RedisLedgerEventBus
	eventBusCancel   context.CancelFunc
	eventBusCancelMu sync.Mutex
}

// NewContainer creates a Container with all dependencies wired together.
// The database schema must already be at the required version.
func NewContainer(ctx context.Context, gdb *gorm.DB, cfg *config.Config, clk clock.Clock, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		clock:  clk,
	}

	// Section 1: Infrastructure - Redis, Repositories, Ledger plumbing
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Events - Dispatcher, Redis bridge
	if err := c.initEvents(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Use cases
	if err := c.initUseCases(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 4: Auth & authorization - JWT, casbin, middlewares
	if err := c.initAuthorization(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 5: Handlers
	c.initHandlers()

	// Section 6: Genesis supply
	if err := c.mintGenesis(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	return c, nil
}

// Engine returns the gin engine. Routes are added by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// JWTService exposes the token issuer for CLI commands.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}

// Shutdown stops background workers and closes the Redis client.
func (c *Container) Shutdown() {
	c.eventBusCancelMu.Lock()
	if c.eventBusCancel != nil {
		c.eventBusCancel()
		c.eventBusCancel = nil
	}
	c.eventBusCancelMu.Unlock()

	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			c.log.Debugw("event dispatcher stop", "error", err)
		}
		if dropped := c.dispatcher.Dropped(); dropped > 0 {
			c.log.Warnw("event batches dropped on full queue", "count", dropped)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}

func wrapInit(section string, err error) error {
	return fmt.Errorf("failed to initialize %s: %w", section, err)
}
