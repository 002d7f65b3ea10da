package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogusecases "permitflow/internal/application/catalog/usecases"
	submissionusecases "permitflow/internal/application/submission/usecases"
	"permitflow/internal/domain/rules"
	"permitflow/internal/infrastructure/auth"
	"permitflow/internal/infrastructure/cache"
	"permitflow/internal/infrastructure/config"
	"permitflow/internal/infrastructure/queue"
	"permitflow/internal/infrastructure/repository"
	jurisdictionhandlers "permitflow/internal/interfaces/http/handlers/jurisdiction"
	submissionhandlers "permitflow/internal/interfaces/http/handlers/submission"
	"permitflow/internal/interfaces/http/middleware"
	"permitflow/internal/interfaces/http/routes"
	"permitflow/internal/shared/constants"
	"permitflow/internal/shared/db"
	"permitflow/internal/shared/logger"
)

// Router wires repositories, use cases, handlers, and middleware into a gin
// engine.
type Router struct {
	engine *gin.Engine
	redis  *redis.Client
}

func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	if cfg.Server.Mode == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	rateLimiter := middleware.NewRateLimiter(
		redisClient,
		cfg.RateLimit.Limit,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)
	engine.Use(rateLimiter.Limit())

	// Repositories and shared services.
	txManager := db.NewTransactionManager(database)
	submissionRepo := repository.NewSubmissionRepository(database)
	eventRepo := repository.NewWorkflowEventRepository(database)
	jurisdictionRepo := repository.NewJurisdictionRepository(database)
	ruleSetRepo := repository.NewRuleSetRepository(database)
	packetRepo := repository.NewPacketRepository(database)

	catalog := rules.NewCatalog(jurisdictionRepo, ruleSetRepo, log.Named("catalog"))
	evaluator := rules.NewEvaluator(rules.NewRegistry(), log.Named("evaluator"))
	jobQueue := queue.NewRedisQueue(redisClient, cfg.Queue.Key)

	// Use cases.
	createUC := submissionusecases.NewCreateSubmissionUseCase(
		submissionRepo, eventRepo, catalog, evaluator, txManager, log.Named("create_submission"))
	getUC := submissionusecases.NewGetSubmissionUseCase(submissionRepo, log.Named("get_submission"))
	listUC := submissionusecases.NewListSubmissionsUseCase(submissionRepo, log.Named("list_submissions"))
	updateDraftUC := submissionusecases.NewUpdateDraftUseCase(
		submissionRepo, catalog, evaluator, txManager, log.Named("update_draft"))
	transitionUC := submissionusecases.NewTransitionSubmissionUseCase(
		submissionRepo, eventRepo, txManager, log.Named("transition_submission"))
	requestPacketUC := submissionusecases.NewRequestPacketUseCase(
		submissionRepo, jobQueue, log.Named("request_packet"))
	getPacketUC := submissionusecases.NewGetPacketUseCase(
		submissionRepo, packetRepo, log.Named("get_packet"))
	listEventsUC := submissionusecases.NewListEventsUseCase(
		submissionRepo, eventRepo, log.Named("list_events"))
	listJurisdictionsUC := catalogusecases.NewListJurisdictionsUseCase(
		jurisdictionRepo, log.Named("list_jurisdictions"))

	// Handlers.
	submissionHandler := submissionhandlers.NewSubmissionHandler(
		createUC, getUC, listUC, updateDraftUC, transitionUC,
		requestPacketUC, getPacketUC, listEventsUC)
	jurisdictionHandler := jurisdictionhandlers.NewJurisdictionHandler(listJurisdictionsUC)

	// Middleware bound to routes.
	jwtService := auth.NewJWTService(&cfg.Auth.JWT)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log.Named("auth"))
	idempotencyStore := cache.NewRedisIdempotencyStore(redisClient, &cfg.Idempotency)
	idempotencyMiddleware := middleware.NewIdempotencyMiddleware(idempotencyStore, log.Named("idempotency"))

	routes.SetupSubmissionRoutes(engine, &routes.SubmissionRouteConfig{
		SubmissionHandler:     submissionHandler,
		AuthMiddleware:        authMiddleware,
		IdempotencyMiddleware: idempotencyMiddleware,
	})
	routes.SetupJurisdictionRoutes(engine, &routes.JurisdictionRouteConfig{
		JurisdictionHandler: jurisdictionHandler,
		AuthMiddleware:      authMiddleware,
	})

	r := &Router{engine: engine, redis: redisClient}
	engine.GET("/health", r.health(database))

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) health(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if sqlDB, err := database.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := r.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, checks)
	}
}
