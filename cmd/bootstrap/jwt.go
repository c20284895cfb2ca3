package bootstrap

import (
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := cfg.JWT.TokenDuration()
	if err != nil {
		return nil, err
	}
	return jwt.NewService(cfg.JWT.Secret, duration), nil
}
