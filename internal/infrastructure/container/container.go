package container

import (
	"fmt"
	"log/slog"

	"github.com/gdugdh24/matches-backend/internal/config"
	"github.com/gdugdh24/matches-backend/internal/delivery/http"
	"github.com/gdugdh24/matches-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matches-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matches-backend/internal/infrastructure/database"
	"github.com/gdugdh24/matches-backend/internal/infrastructure/directory"
	"github.com/gdugdh24/matches-backend/internal/infrastructure/server"
	"github.com/gdugdh24/matches-backend/internal/logger"
	"github.com/gdugdh24/matches-backend/internal/repository/postgres"
	"github.com/gdugdh24/matches-backend/internal/usecase/candidates"
	"github.com/gdugdh24/matches-backend/internal/usecase/matchquery"
	"github.com/gdugdh24/matches-backend/internal/usecase/reconcile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New(&cfg.Logging)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis only backs the candidate cache; run without it when absent.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, candidate caching disabled", slog.Any("error", err))
		redisClient = nil
	}

	// Initialize collaborators
	matchStore := postgres.NewMatchStore(db)
	userDirectory := directory.NewClient(&cfg.UserDirectory)

	// Initialize use cases
	reconcileUseCase := reconcile.NewUseCase(
		matchStore,
		userDirectory,
		log,
		cfg.Reconcile.MaxParallel,
	)

	candidatesUseCase := candidates.NewUseCase(
		userDirectory,
		matchStore,
		redisClient,
		cfg.Reconcile.CandidateCacheTTL,
		log,
	)

	queryUseCase := matchquery.NewUseCase(matchStore, userDirectory)

	// Initialize handlers
	matchHandler := handler.NewMatchHandler(reconcileUseCase, queryUseCase)
	candidateHandler := handler.NewCandidateHandler(candidatesUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		matchHandler,
		candidateHandler,
		authMiddleware,
		log,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", slog.Any("error", err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
