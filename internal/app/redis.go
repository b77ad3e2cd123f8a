package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/salespulse/config"
)

const redisPingTimeout = 3 * time.Second

// InitRedis connects to the Redis instance named by cfg.Redis and pings it.
func InitRedis(cfg config.Config) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	return cli, nil
}

// redisOpener is an indirection used by InitializeApp; overridden in tests.
var redisOpener = InitRedis
