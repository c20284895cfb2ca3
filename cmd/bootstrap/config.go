package bootstrap

import (
	"shareit/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	SectionsOption,
)

// SectionsOption exposes the config sections individual constructors depend on.
var SectionsOption = fx.Provide(
	func(cfg config.Config) config.AuthConfig { return cfg.Auth },
	func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
	func(cfg config.Config) config.PageConfig { return cfg.Page },
)
