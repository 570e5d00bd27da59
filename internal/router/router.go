// Package router builds the echo instance: global middleware in order, the
// error handler, and every route group.
package router

import (
	"github.com/deppfellow/accounts-api/internal/handler"
	"github.com/deppfellow/accounts-api/internal/middleware"
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes.
//
// Order matters: the request id exists before the New Relic transaction and
// the context logger are built, and the request logger sees the status the
// error handler will write.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(s, router, h)
	registerAccountRoutes(router, h)

	return router
}
