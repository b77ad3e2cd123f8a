package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/internal/api"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/middleware"
)

const rateLimitWindow = time.Minute

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Connects to Redis when configured; the rate limiter falls back to memory otherwise.
//   - Builds the repository and service layers (NewServices).
//   - Creates the HTTP handlers and the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	var rdb *redis.Client
	var counter middleware.Counter = middleware.NewMemoryCounter(rateLimitWindow)
	if cfg.Redis.Enabled() {
		rdb, err = redisOpener(cfg)
		if err != nil {
			logger.L().Warn().Err(err).Msg("redis unavailable, using in-memory rate limiter")
		} else {
			counter = middleware.NewRedisCounter(rdb, rateLimitWindow)
		}
	}

	svcs := NewServices(db)

	clients := api.NewClientsHandler(svcs.Clients, svcs.Analytics, svcs.Report)
	sales := api.NewSalesHandler(svcs.Sales)
	limiter := middleware.RateLimiter(counter, cfg.Server.RateLimitPerMinute)

	router := api.NewRouter(clients, sales, limiter)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = db.Close()
	}

	return router, cleanup, nil
}
