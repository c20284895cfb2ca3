package bootstrap

import (
	"context"
	"log/slog"

	"shareit/internal/infra/db"
	"shareit/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB connects eagerly so a bad DSN fails the app before the server starts.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("database connected",
				"host", cfg.DB.Host,
				"database", cfg.DB.DBName,
				"max_conns", stat.MaxConns(),
				"idle_conns", stat.IdleConns())
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("closing database pool", "acquired_conns", pool.Stat().AcquiredConns())
			cleanup()
			return nil
		},
	})

	return pool, nil
}
