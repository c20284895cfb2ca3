package components

import (
	"shareit/internal/handler"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewItemHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiter,
		handler.NewHandlers,
		handler.NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)
