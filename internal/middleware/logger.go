package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available).
//
// Behavior:
//   - Stores a request-scoped logger (request_id, method, path) in the request
//     context so services log with the same fields via logger.Ctx.
//   - After request is processed, logs status and latency in ms.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/api/v1/clients/report status=200 latency_ms=15
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		rid, _ := c.Get(RequestIDKey)
		reqLog := logger.L().With().
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		reqLog.Info().
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
