package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ratehub/store-rating-api/internal/infrastructure/db/postgres"
)

const readinessTimeout = 2 * time.Second

// HealthHandler handles GET /health. Returns 200 immediately; confirms the
// process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler handles GET /health/ready, reporting whether the database
// and cache are reachable.
type ReadinessHandler struct {
	db  *postgres.DB
	rdb *redis.Client
}

func NewReadinessHandler(db *postgres.DB, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{db: db, rdb: rdb}
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := map[string]string{"postgres": "up", "redis": "up"}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		deps["postgres"] = "down"
		status = http.StatusServiceUnavailable
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			deps["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
	}

	return c.JSON(status, deps)
}
