package bootstrap

import (
	"log/slog"

	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"go.uber.org/fx"
)

// LoggerModule exposes the request logger and its slog handle. The handle also
// becomes the process default so package-level slog calls share the format.
var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *middleware.Logger { return middleware.NewLogger(cfg.Log) },
		func(l *middleware.Logger) *slog.Logger { return l.GetSlogLogger() },
	),
	fx.Invoke(slog.SetDefault),
)
