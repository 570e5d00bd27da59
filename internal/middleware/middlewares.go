// Package middleware holds the echo middleware shared by every route:
// request ids, request-scoped logging, New Relic tracing, security headers,
// CORS, panic recovery and the global error handler.
package middleware

import (
	"github.com/deppfellow/accounts-api/internal/server"
)

// Middlewares groups the middleware components so the router receives them
// as one value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
	}
}
