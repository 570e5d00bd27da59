// Package handler is the HTTP layer. Handlers receive bound and validated
// requests from the shared pipeline in base.go, call the services and shape
// the responses.
package handler

import (
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/deppfellow/accounts-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	Index   *IndexHandler
	Account *AccountHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s, services.Health),
		Index:   NewIndexHandler(s),
		Account: NewAccountHandler(s, services.Account),
	}
}
