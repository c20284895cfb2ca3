//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID int64) string {
	t.Helper()
	duration, err := h.cfg.TokenDuration()
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, -time.Minute).GenerateToken(userID)
	require.NoError(t, err)
	return token
}
