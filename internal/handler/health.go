package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler exposes liveness and readiness probes.  Liveness only proves
// the process is up; readiness additionally pings the database.
type HealthHandler struct {
	DB *sql.DB
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Ready handles GET /health/ready.  A failed ping answers 503 so load
// balancers stop routing traffic here until the store recovers.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
