package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/cache"
	"shareit/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

// NewRedis returns nil when REDIS_ADDR is empty, which disables caching.
// An unreachable server is logged and tolerated.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("redis disabled, user lookups go straight to postgres")
		return nil
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis ping failed, cache will fall back to postgres", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
