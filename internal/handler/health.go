package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/car-doctor/internal/middleware"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the process and its dependencies are
// reachable. Checks run only when enabled under
// observability.health_checks.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type pingFunc func(ctx context.Context) error

// CheckHealth returns 200 when every enabled check passes and 503
// otherwise. A failing Redis only degrades the result: the catalog falls
// back to MongoDB and e-mails are skipped.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	status := "healthy"

	obs := h.server.Config.Observability

	if obs.HealthCheckEnabled("database") {
		var ping pingFunc
		if h.server.DB != nil {
			ping = h.server.DB.Ping
		}
		if !h.runCheck(c.Request().Context(), &logger, "database", ping, checks) {
			status = "unhealthy"
		}
	}

	if obs.HealthCheckEnabled("redis") {
		var ping pingFunc
		if h.server.Redis != nil {
			ping = func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }
		}
		if !h.runCheck(c.Request().Context(), &logger, "redis", ping, checks) && status == "healthy" {
			status = "degraded"
		}
	}

	response := map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if status == "unhealthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError("overall", map[string]interface{}{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Str("status", status).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// runCheck pings one dependency within the configured timeout and
// records the outcome in checks. A nil ping means the dependency was
// never connected.
func (h *HealthHandler) runCheck(parent context.Context, logger *zerolog.Logger, name string, ping pingFunc, checks map[string]interface{}) bool {
	if ping == nil {
		checks[name] = map[string]interface{}{
			"status": "unhealthy",
			"error":  "not connected",
		}
		return false
	}

	ctx, cancel := context.WithTimeout(parent, h.server.Config.Observability.HealthCheckTimeout())
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordHealthCheckError(name, map[string]interface{}{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}

	logger.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return true
}

func (h *HealthHandler) recordHealthCheckError(checkType string, attrs map[string]interface{}) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
