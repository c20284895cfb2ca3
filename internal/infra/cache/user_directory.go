package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shareit/internal/pkg/config"
	"shareit/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const userExistsKey = "shareit:user:exists:%d"

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// UserDirectory caches positive existence answers of the underlying store.
// Users are never deleted, so a cached hit stays true; misses always go to
// the store. Redis failures fall back to the store.
type UserDirectory struct {
	client *redis.Client
	next   queries.UserReadStore
	ttl    time.Duration
	logger *slog.Logger
}

func NewUserDirectory(client *redis.Client, next queries.UserReadStore, ttl time.Duration, logger *slog.Logger) *UserDirectory {
	return &UserDirectory{client: client, next: next, ttl: ttl, logger: logger}
}

func (d *UserDirectory) Exists(ctx context.Context, id int64) (bool, error) {
	key := fmt.Sprintf(userExistsKey, id)

	err := d.client.Get(ctx, key).Err()
	switch {
	case err == nil:
		return true, nil
	case err != redis.Nil:
		d.logger.Warn("user directory cache read failed", "user_id", id, "error", err.Error())
	}

	ok, err := d.next.Exists(ctx, id)
	if err != nil || !ok {
		return ok, err
	}

	if err := d.client.Set(ctx, key, "1", d.ttl).Err(); err != nil {
		d.logger.Warn("user directory cache write failed", "user_id", id, "error", err.Error())
	}
	return true, nil
}
