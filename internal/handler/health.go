package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/accounts-api/internal/middleware"
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/deppfellow/accounts-api/internal/service"
	"github.com/labstack/echo/v4"
)

const defaultReadinessTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
	health *service.HealthService
}

func NewHealthHandler(s *server.Server, health *service.HealthService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		health:  health,
	}
}

// CheckHealth answers liveness checks. It never touches dependencies.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

// CheckReadiness pings the configured dependencies and answers 503 when any
// of them fails.
func (h *HealthHandler) CheckReadiness(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "readiness_check").
		Logger()

	timeout := defaultReadinessTimeout
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	checks := map[string]any{}
	healthy := true

	if h.checkEnabled("database") {
		result := h.health.CheckDatabase(ctx)
		check := map[string]any{
			"status":        result.Status,
			"response_time": result.ResponseTime.String(),
		}

		if result.Error != "" {
			healthy = false
			check["error"] = result.Error

			logger.Error().
				Str("error", result.Error).
				Dur("response_time", result.ResponseTime).
				Msg("database health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       "database",
					"operation":        "readiness_check",
					"response_time_ms": result.ResponseTime.Milliseconds(),
					"error_message":    result.Error,
				})
			}
		}
		checks["database"] = check
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("readiness check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("readiness check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) checkEnabled(name string) bool {
	obs := h.server.Config.Observability
	if obs == nil || len(obs.HealthChecks.Checks) == 0 {
		return true
	}
	return slices.Contains(obs.HealthChecks.Checks, name)
}
