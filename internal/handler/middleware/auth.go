package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey = "user_id"
	bearerPrefix = "bearer "

	// UserIDHeader carries the caller id when a trusted gateway has already authenticated it.
	UserIDHeader = "X-Sharer-User-Id"
)

var (
	errMissingIdentity = errs.New("missing credentials")
	errInvalidIdentity = errs.New("invalid credentials")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	trustHeader    bool
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		trustHeader:    cfg.TrustUserHeader,
	}
}

// RequireUser resolves the caller from a bearer token, or from the
// X-Sharer-User-Id header when trusted. A token wins over the header.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := m.identify(c)
		if err != nil {
			slog.Warn("Authentication failed", "error", err.Error(), "path", c.Request.URL.Path)
			httperr.Abort(c, http.StatusUnauthorized, err, "Unauthorized")
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func (m *AuthMiddleware) identify(c *gin.Context) (int64, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(strings.ToLower(authHeader), bearerPrefix) {
			return 0, errInvalidIdentity
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			return 0, errs.Mark(err, errInvalidIdentity)
		}
		return userID, nil
	}

	if !m.trustHeader {
		return 0, errMissingIdentity
	}
	raw := c.GetHeader(UserIDHeader)
	if raw == "" {
		return 0, errMissingIdentity
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errInvalidIdentity
	}
	return userID, nil
}

func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int64)
	return id, ok
}
