package handler

import (
	"net/http"

	"github.com/deppfellow/accounts-api/internal/config"
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/labstack/echo/v4"
)

type IndexHandler struct {
	Handler
}

func NewIndexHandler(s *server.Server) *IndexHandler {
	return &IndexHandler{Handler: NewHandler(s)}
}

// ServiceInfo is the body of GET /.
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (h *IndexHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, ServiceInfo{
		Name:    config.ServiceName,
		Version: config.ServiceVersion,
	})
}
