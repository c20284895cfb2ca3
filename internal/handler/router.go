package handler

import (
	"net/http"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Booking *api.BookingHandler
	Item    *api.ItemHandler
}

type Middlewares struct {
	Logger      *middleware.Logger
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
}

func NewHandlers(booking *api.BookingHandler, item *api.ItemHandler) Handlers {
	return Handlers{Booking: booking, Item: item}
}

func NewMiddlewares(logger *middleware.Logger, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) Middlewares {
	return Middlewares{Logger: logger, Auth: auth, RateLimiter: limiter}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(mw.RateLimiter.ByIP(), mw.Auth.RequireUser(), mw.RateLimiter.ByUser())
	{
		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.ListByBooker},
			{Method: http.MethodGet, Path: "/owner", Handler: h.Booking.ListByOwner},
			{Method: http.MethodGet, Path: "/:bookingId", Handler: h.Booking.Get},
			{Method: http.MethodPatch, Path: "/:bookingId", Handler: h.Booking.Decide},
		})

		items := apiGroup.Group("/items")
		addRoutes(items, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Item.ListOwn},
			{Method: http.MethodGet, Path: "/:itemId", Handler: h.Item.Get},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
