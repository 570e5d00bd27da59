package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_RequiresSetup(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Config: config.DefaultConfig(), Logger: &logger}

	assert.EqualError(t, s.Start(), "HTTP server not initialized")
}

func TestSetupHTTPServer_Timeouts(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = "9999"
	s := &Server{Config: cfg}

	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":9999", s.httpServer.Addr)
	assert.Equal(t, 30*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 60*time.Second, s.httpServer.IdleTimeout)
}

func TestShutdown_WithoutResources(t *testing.T) {
	s := &Server{Config: config.DefaultConfig()}
	assert.NoError(t, s.Shutdown(context.Background()))
}
