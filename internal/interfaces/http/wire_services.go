package http

import (
	"context"

	"github.com/redis/go-redis/v9"

	catalogUsecases "github.com/orris-inc/subledger/internal/application/catalog/usecases"
	ledgerUsecases "github.com/orris-inc/subledger/internal/application/ledger/usecases"
	registrationUsecases "github.com/orris-inc/subledger/internal/application/registration/usecases"
	"github.com/orris-inc/subledger/internal/application/subscription"
	subscriptionUsecases "github.com/orris-inc/subledger/internal/application/subscription/usecases"
	tokenUsecases "github.com/orris-inc/subledger/internal/application/token/usecases"
	domainSubscription "github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/domain/shared/events"
	"github.com/orris-inc/subledger/internal/infrastructure/auth"
	"github.com/orris-inc/subledger/internal/infrastructure/cache"
	"github.com/orris-inc/subledger/internal/infrastructure/config"
	"github.com/orris-inc/subledger/internal/infrastructure/permission"
	"github.com/orris-inc/subledger/internal/infrastructure/pubsub"
	"github.com/orris-inc/subledger/internal/infrastructure/ratelimit"
	"github.com/orris-inc/subledger/internal/infrastructure/tokenledger"
	"github.com/orris-inc/subledger/internal/interfaces/http/handlers"
	"github.com/orris-inc/subledger/internal/interfaces/http/middleware"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/goroutine"
	"github.com/orris-inc/subledger/internal/shared/guard"
	"github.com/orris-inc/subledger/internal/shared/logger"
	"github.com/orris-inc/subledger/internal/shared/utils"
)

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Ledger plumbing
// ============================================================

// initInfrastructure connects Redis when enabled and builds the
// repositories, transaction manager, reentrancy guard and token ledger.
func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(ctx, cfg, log)
		if err != nil {
			return wrapInit("redis", err)
		}
		c.redis = client
		c.statusCache = cache.NewRedisSubscriptionStatusCache(client, c.clock, cfg.Cache.MaxStatusTTL)
	}

	c.repos = newRepositories(c.db, log)
	c.txMgr = db.NewTransactionManager(c.db)
	c.guard = guard.New()

	_, service, _ := cfg.Identities()
	c.tokens = tokenledger.New(c.db, service, c.clock, log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, err
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Events - Dispatcher, Redis bridge
// ============================================================

// initEvents starts the in-process dispatcher. With Redis enabled every
// committed event is also published for other instances, and their events
// are logged here.
func (c *Container) initEvents(ctx context.Context) error {
	log := c.log.Named("events")

	c.dispatcher = events.NewInMemoryEventDispatcher(c.cfg.Events.BufferSize, log)
	if err := c.dispatcher.Subscribe(events.AllEvents, events.NewHandlerFunc(events.AllEvents, func(event events.DomainEvent) error {
		log.Debugw("ledger event committed",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"event_id", event.GetEventID(),
		)
		return nil
	})); err != nil {
		return wrapInit("event dispatcher", err)
	}

	if c.redis != nil {
		c.eventBus = pubsub.NewRedisLedgerEventBus(c.redis, c.cfg.Redis.Channel, log)
		if err := c.dispatcher.Subscribe(events.AllEvents, c.eventBus); err != nil {
			return wrapInit("ledger event bus", err)
		}

		busCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c.eventBusCancelMu.Lock()
		c.eventBusCancel = cancel
		c.eventBusCancelMu.Unlock()

		goroutine.SafeGo(log, "ledger-event-bus", func() {
			err := c.eventBus.Subscribe(busCtx, func(msg pubsub.LedgerEventMessage) {
				log.Debugw("ledger event from peer instance",
					"event_type", msg.EventType,
					"aggregate_id", msg.AggregateID,
					"instance_id", msg.InstanceID,
				)
			})
			if err != nil && busCtx.Err() == nil {
				log.Errorw("ledger event bus stopped", "error", err)
			}
		})
	}

	if err := c.dispatcher.Start(); err != nil {
		return wrapInit("event dispatcher", err)
	}
	return nil
}

// ============================================================
// Section 3: Use cases
// ============================================================

func (c *Container) initUseCases() error {
	cfg := c.cfg
	log := c.log
	repos := c.repos
	clk := c.clock
	pub := c.dispatcher

	_, _, beneficiary := cfg.Identities()
	refundPolicy, err := domainSubscription.NewRefundPolicy(cfg.Subscription.Refund.Mode, cfg.RefundPeriod())
	if err != nil {
		return wrapInit("refund policy", err)
	}

	ucs := &allUseCases{}

	// Registration
	ucs.registerUC = registrationUsecases.NewRegisterUseCase(repos.registrationRepo, repos.eventLog, c.txMgr, pub, clk, log)
	ucs.updateMetadataUC = registrationUsecases.NewUpdateMetadataUseCase(repos.registrationRepo, repos.eventLog, c.txMgr, c.guard, pub, clk, log)
	ucs.getRegistrationUC = registrationUsecases.NewGetRegistrationUseCase(repos.registrationRepo, log)

	// Catalog
	ucs.addVariantUC = catalogUsecases.NewAddVariantUseCase(repos.variantRepo, repos.sequenceRepo, repos.eventLog, c.txMgr, pub, clk, log)
	ucs.setAvailableUC = catalogUsecases.NewSetAvailableUseCase(repos.variantRepo, c.txMgr, clk, log)
	ucs.getVariantUC = catalogUsecases.NewGetVariantUseCase(repos.variantRepo, log)
	ucs.listVariantsUC = catalogUsecases.NewListVariantsUseCase(repos.variantRepo, log)
	ucs.importVariantsUC = catalogUsecases.NewImportVariantsUseCase(ucs.addVariantUC, log)

	// Subscription
	ucs.subscribeUC = subscriptionUsecases.NewSubscribeUseCase(
		repos.subscriptionRepo, repos.variantRepo, repos.registrationRepo,
		c.tokens, repos.eventLog, c.txMgr, c.guard, pub, c.statusCache, clk,
		subscriptionUsecases.SubscribeOptions{
			Beneficiary:         beneficiary,
			StrictAvailability:  cfg.Subscription.StrictAvailability,
			RequireRegistration: cfg.Subscription.RequireRegistration,
		},
		log,
	)
	ucs.unsubscribeUC = subscriptionUsecases.NewUnsubscribeUseCase(
		repos.subscriptionRepo, c.tokens, repos.eventLog, c.txMgr, c.guard, pub,
		c.statusCache, refundPolicy, beneficiary, clk, log,
	)
	ucs.hasActiveUC = subscriptionUsecases.NewHasActiveSubscriptionUseCase(repos.subscriptionRepo, c.statusCache, clk, log)
	ucs.getSubscriptionUC = subscriptionUsecases.NewGetSubscriptionUseCase(repos.subscriptionRepo, clk, log)
	ucs.engine = subscription.NewEngine(ucs.subscribeUC, ucs.unsubscribeUC, ucs.hasActiveUC, ucs.getSubscriptionUC, ucs.getVariantUC)

	// Token
	ucs.approveUC = tokenUsecases.NewApproveUseCase(c.tokens, log)
	ucs.transferUC = tokenUsecases.NewTransferUseCase(c.tokens, log)
	ucs.getBalanceUC = tokenUsecases.NewGetBalanceUseCase(c.tokens, log)
	ucs.mintGenesisUC = tokenUsecases.NewMintGenesisUseCase(c.tokens, c.txMgr, log)

	// Ledger
	ucs.listEventsUC = ledgerUsecases.NewListEventsUseCase(repos.eventLog, log)

	c.ucs = ucs
	return nil
}

// ============================================================
// Section 4: Auth & authorization - JWT, casbin, middlewares
// ============================================================

func (c *Container) initAuthorization() error {
	cfg := c.cfg
	log := c.log

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes, c.clock)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return wrapInit("permission enforcer", err)
	}
	owner, _, _ := cfg.Identities()
	if err := permission.InitCatalogPermissions(enforcer, owner, log); err != nil {
		return wrapInit("catalog permissions", err)
	}
	c.enforcer = enforcer

	utils.RegisterValidators()
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)

	// Without Redis the limiter stays nil and Limit() lets calls through.
	limit := ratelimit.Limit{PerMinute: cfg.RateLimit.RequestsPerMinute, PerHour: cfg.RateLimit.RequestsPerHour}
	if c.redis != nil && (limit.PerMinute > 0 || limit.PerHour > 0) {
		c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(ratelimit.NewRedisRateLimiter(c.redis, limit, c.clock), log)
	}
	return nil
}

// ============================================================
// Section 5: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	checks := map[string]handlers.HealthCheckFunc{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}

	c.hdlrs = &allHandlers{
		registrationHandler: handlers.NewRegistrationHandler(ucs.registerUC, ucs.updateMetadataUC, ucs.getRegistrationUC, log),
		catalogHandler:      handlers.NewCatalogHandler(ucs.addVariantUC, ucs.setAvailableUC, ucs.getVariantUC, ucs.listVariantsUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(ucs.subscribeUC, ucs.unsubscribeUC, ucs.getSubscriptionUC, ucs.hasActiveUC, log),
		tokenHandler:        handlers.NewTokenHandler(ucs.approveUC, ucs.transferUC, ucs.getBalanceUC, log),
		eventHandler:        handlers.NewEventHandler(ucs.listEventsUC, log),
		healthHandler:       handlers.NewHealthHandler(checks, log),
	}
}

// ============================================================
// Section 6: Genesis supply
// ============================================================

// mintGenesis credits the configured supply to the owner on first start.
func (c *Container) mintGenesis(ctx context.Context) error {
	supply := c.cfg.Token.GenesisSupply
	if supply == 0 {
		return nil
	}
	owner, _, _ := c.cfg.Identities()
	minted, err := c.ucs.mintGenesisUC.Execute(ctx, owner, supply)
	if err != nil {
		return wrapInit("genesis supply", err)
	}
	if minted {
		c.log.Infow("genesis supply minted", "owner", owner, "supply", supply, "symbol", c.cfg.Token.Symbol)
	}
	return nil
}

// SubscriptionEngine exposes the lifecycle engine to other entry points.
func (c *Container) SubscriptionEngine() *subscription.Engine {
	return c.ucs.engine
}

// ImportVariants exposes the catalog importer to the CLI.
func (c *Container) ImportVariants() *catalogUsecases.ImportVariantsUseCase {
	return c.ucs.importVariantsUC
}
