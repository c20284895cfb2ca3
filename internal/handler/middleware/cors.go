package middleware

import (
	"log/slog"
	"slices"

	"shareit/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always allows the identity header and exposes the request id,
// whatever the configured lists say.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, UserIDHeader),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

func withHeader(headers []string, header string) []string {
	if slices.Contains(headers, header) {
		return headers
	}
	return append(slices.Clone(headers), header)
}
