// Package repository holds the SQL access layer. Each repository owns the
// queries for one table and talks to PostgreSQL through the shared pgx pool.
package repository

import (
	"github.com/deppfellow/accounts-api/internal/server"
)

// Repositories groups every repository so they can be handed to the service
// layer as one dependency.
type Repositories struct {
	Account *AccountRepository
}

// NewRepositories builds all repositories on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Account: NewAccountRepository(s.DB.Pool),
	}
}
