// Package service contains the business logic. It sits between the HTTP
// handlers and the repositories: handlers pass in validated requests and the
// services decide what to read and write.
package service

import (
	"github.com/deppfellow/accounts-api/internal/repository"
	"github.com/deppfellow/accounts-api/internal/server"
)

type Services struct {
	Account *AccountService
	Health  *HealthService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var db Pinger
	if s.DB != nil {
		db = s.DB
	}

	return &Services{
		Account: NewAccountService(repos.Account),
		Health:  NewHealthService(db),
	}
}
