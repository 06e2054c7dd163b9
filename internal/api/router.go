package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/99minutos/tracker-dashboard/docs"
	"github.com/99minutos/tracker-dashboard/internal/api/handler"
	"github.com/99minutos/tracker-dashboard/internal/api/middleware"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
	"github.com/99minutos/tracker-dashboard/internal/infrastructure/http/handlers"
)

// RouterDeps carries everything the HTTP layer needs. Mongo and Redis are only
// used by the readiness probes and may be nil.
type RouterDeps struct {
	Trackers ports.TrackerService
	Mongo    *mongo.Database
	Redis    *redis.Client
	Logger   zerolog.Logger

	// Registry receives the HTTP request metrics and backs /metrics.
	// Nil means the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "tracker",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	trackerHandler := handler.NewTrackerHandler(deps.Trackers)
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	// --- Dashboard API ---
	g := e.Group("/api")
	g.GET("/trackers", trackerHandler.List)
	g.GET("/trackers/:id", trackerHandler.Get)
	g.GET("/export", trackerHandler.Export)
	g.GET("/health", healthDepsHandler.Store)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
