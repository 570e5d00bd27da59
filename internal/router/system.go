package router

import (
	"github.com/deppfellow/accounts-api/internal/handler"
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not about accounts.
func registerSystemRoutes(s *server.Server, r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Index.Index)
	r.GET("/health", h.Health.CheckHealth)

	if obs := s.Config.Observability; obs == nil || obs.HealthChecks.Enabled {
		r.GET("/health/ready", h.Health.CheckReadiness)
	}
}
