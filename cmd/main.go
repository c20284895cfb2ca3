package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"shareit/cmd/bootstrap"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// release unless GIN_MODE says otherwise, so debug routes never leak
	gin.SetMode(gin.ReleaseMode)
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           shareit
// @version         1.0
// @description     Item sharing service: bookings, approvals and item availability.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func newHTTPServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("http server listening", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			logger.Info("http server draining", "timeout", cfg.Server.ShutdownTimeout)
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			newHTTPServer,
		),
		fx.Invoke(func(*http.Server) {}),
	)
	app.Run()
	slog.Info("shareit stopped")
}
