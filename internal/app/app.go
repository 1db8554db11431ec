package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkalens/support-insights/internal/analytics"
	"github.com/mkalens/support-insights/internal/config"
	"github.com/mkalens/support-insights/internal/httpapi"
	"github.com/mkalens/support-insights/internal/httpapi/middleware"
	"github.com/mkalens/support-insights/internal/repository"
	"github.com/mkalens/support-insights/internal/service"
	"github.com/mkalens/support-insights/pkg/cache"
	dbbuilder "github.com/mkalens/support-insights/pkg/database"
	"github.com/mkalens/support-insights/pkg/httpserver"

	"go.uber.org/zap"
)

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	httpServer *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	interactionRepo := repository.NewInteractionRepository(dbPool)

	roster := analytics.NewRoster(cfg.TeamRoster)
	insightsService := service.NewInsightsService(interactionRepo, roster, logger)

	handlers := httpapi.NewHandlers(insightsService, cacheClient, logger, cfg.CacheTTL)

	limiterCfg := middleware.DefaultRateLimiterConfig()
	limiterCfg.RequestsPerSecond = cfg.RateLimit
	limiterCfg.BurstSize = cfg.RateBurst
	limiter := middleware.NewRateLimiter(limiterCfg)

	router := httpapi.NewRouter(handlers, logger, limiter)

	httpServer, err := httpserver.New(
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithLogger(logger),
		httpserver.WithHandler(router),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		httpServer: httpServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed successfully")

	_ = a.logger.Sync()
	return nil
}
