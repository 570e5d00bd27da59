package service

import (
	"context"
	"errors"
	"time"
)

var ErrNoDatabase = errors.New("database not configured")

// Pinger is satisfied by *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"-"`
	Error        string        `json:"error,omitempty"`
}

type HealthService struct {
	db Pinger
}

func NewHealthService(db Pinger) *HealthService {
	return &HealthService{db: db}
}

// CheckDatabase pings the database within ctx.
func (s *HealthService) CheckDatabase(ctx context.Context) CheckResult {
	start := time.Now()

	err := ErrNoDatabase
	if s.db != nil {
		err = s.db.Ping(ctx)
	}

	result := CheckResult{Status: "healthy", ResponseTime: time.Since(start)}
	if err != nil {
		result.Status = "unhealthy"
		result.Error = err.Error()
	}
	return result
}
