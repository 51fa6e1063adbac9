package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lateshow/lateshow-api/docs"
	"github.com/lateshow/lateshow-api/internal/api/handler"
	"github.com/lateshow/lateshow-api/internal/api/middleware"
	"github.com/lateshow/lateshow-api/internal/core/ports"
	"github.com/lateshow/lateshow-api/internal/infrastructure/http/handlers"
)

// Dependencies groups everything the HTTP layer needs; main wires the concrete types.
type Dependencies struct {
	Auth        ports.AuthService
	Guests      ports.GuestService
	Episodes    ports.EpisodeService
	Appearances ports.AppearanceService

	// ReadinessChecks are reported by GET /health/ready, keyed by dependency name.
	ReadinessChecks map[string]handlers.Check

	// Registry receives the HTTP metrics; nil uses the Prometheus default registry.
	Registry *prometheus.Registry

	Log          zerolog.Logger
	ExposeErrors bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.ExposeErrors)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "lateshow",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	guestHandler := handler.NewGuestHandler(deps.Guests)
	episodeHandler := handler.NewEpisodeHandler(deps.Episodes)
	appearanceHandler := handler.NewAppearanceHandler(deps.Appearances)
	requireAuth := middleware.Auth(deps.Auth)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Catalog ---
	e.GET("/guests", guestHandler.List)
	e.GET("/episodes", episodeHandler.List)
	e.GET("/episodes/:id", episodeHandler.Get)
	e.DELETE("/episodes/:id", episodeHandler.Delete, requireAuth)
	e.POST("/appearances", appearanceHandler.Create, requireAuth)
	e.GET("/appearances/:id", appearanceHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.ReadinessChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
