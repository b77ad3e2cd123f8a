package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Counter counts requests per key inside a fixed time window.
type Counter interface {
	// Incr records one request for key and returns the count in the current window.
	Incr(ctx context.Context, key string) (int64, error)
}

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per counter window.
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 Too Many Requests.
//   - Counter failures are logged and the request is let through.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(middleware.NewMemoryCounter(time.Minute), 60))
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{
//	    "message": "rate limit exceeded",
//	    "timestamp": "..."
//	}
func RateLimiter(counter Counter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := counter.Incr(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if n > int64(limit) {
			AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int64
}

// MemoryCounter keeps per-process counters. Suitable for a single instance.
type MemoryCounter struct {
	mu      sync.Mutex
	clients map[string]*client
	window  time.Duration
	now     func() time.Time
}

func NewMemoryCounter(window time.Duration) *MemoryCounter {
	return &MemoryCounter{clients: make(map[string]*client), window: window, now: time.Now}
}

func (m *MemoryCounter) Incr(_ context.Context, key string) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	cl, ok := m.clients[key]
	if !ok || now.Sub(cl.windowStart) >= m.window {
		cl = &client{windowStart: now}
		m.clients[key] = cl
	}
	cl.count++
	return cl.count, nil
}

const windowKeyTemplate = "salespulse_rwin_%s_%d"

// redisCounterClient is the subset of *redis.Client used by RedisCounter.
type redisCounterClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisCounter shares fixed-window counters across instances. Each window
// gets its own key, expired after two windows.
type RedisCounter struct {
	cli    redisCounterClient
	window time.Duration
	now    func() time.Time
}

func NewRedisCounter(cli *redis.Client, window time.Duration) *RedisCounter {
	return &RedisCounter{cli: cli, window: window, now: time.Now}
}

func (r *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	slot := r.now().UnixNano() / int64(r.window)
	windowKey := fmt.Sprintf(windowKeyTemplate, key, slot)

	n, err := r.cli.Incr(ctx, windowKey).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.cli.Expire(ctx, windowKey, 2*r.window).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}
