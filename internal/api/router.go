package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const requestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, rate limiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//   - Static client routes (/clients/report, /clients/stats/...) are registered before /clients/:id.
func NewRouter(clients *ClientsHandler, sales *SalesHandler, rateLimiter gin.HandlerFunc) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)
	if rateLimiter != nil {
		router.Use(rateLimiter)
	}

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		cg := v1.Group("/clients")
		cg.POST("", clients.Create)
		cg.GET("", clients.List)
		cg.GET("/report", clients.Report)
		cg.GET("/stats/top-total-sales", clients.TopTotalSales)
		cg.GET("/stats/top-average-sale", clients.TopAverageSale)
		cg.GET("/stats/top-purchase-frequency", clients.TopPurchaseFrequency)
		cg.GET("/:id", clients.Get)
		cg.PATCH("/:id", clients.Update)
		cg.DELETE("/:id", clients.Delete)

		sg := v1.Group("/sales")
		sg.POST("", sales.Create)
		sg.GET("", sales.List)
		sg.GET("/stats", sales.Stats)
		sg.GET("/:id", sales.Get)
		sg.PATCH("/:id", sales.Update)
		sg.DELETE("/:id", sales.Delete)
	}

	return router
}
