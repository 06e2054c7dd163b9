package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler checks the backing services. Either client may be
// nil: MongoDB is absent when the in-memory store is used and Redis when the
// detail cache is disabled. Absent dependencies are reported as "disabled".
type HealthDependenciesHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mongo: db,
		redis: rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	deps := map[string]dependencyStatus{
		"mongodb": h.check(ctx, h.pingMongo, h.mongo != nil),
		"redis":   h.check(ctx, h.pingRedis, h.redis != nil),
	}

	status := "ok"
	httpStatus := http.StatusOK
	for _, d := range deps {
		if d.Status == "unhealthy" {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// Store handles GET /api/health. It reports only on the document store, which
// is what the dashboard pages need before they can render.
func (h *HealthDependenciesHandler) Store(c echo.Context) error {
	if h.mongo == nil {
		return c.JSON(http.StatusOK, map[string]string{"message": "In-memory store is ready"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	if err := h.pingMongo(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to connect to MongoDB").SetInternal(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Successfully connected to MongoDB!"})
}

func (h *HealthDependenciesHandler) check(ctx context.Context, ping func(context.Context) error, enabled bool) dependencyStatus {
	if !enabled {
		return dependencyStatus{Status: "disabled"}
	}
	if err := ping(ctx); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func (h *HealthDependenciesHandler) pingMongo(ctx context.Context) error {
	return h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (h *HealthDependenciesHandler) pingRedis(ctx context.Context) error {
	return h.redis.Ping(ctx).Err()
}
