package router

import (
	"net/http"

	"github.com/deppfellow/accounts-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerAccountRoutes(r *echo.Echo, h *handler.Handlers) {
	base := h.Account.Handler
	accounts := r.Group("/accounts")

	accounts.POST("", handler.Handle(base, h.Account.CreateAccount, http.StatusCreated))
	accounts.GET("", handler.Handle(base, h.Account.ListAccounts, http.StatusOK))
	accounts.GET("/:id", handler.Handle(base, h.Account.GetAccount, http.StatusOK)).Name = handler.RouteGetAccount
	accounts.PUT("/:id", handler.Handle(base, h.Account.UpdateAccount, http.StatusOK))
	accounts.DELETE("/:id", handler.HandleNoContent(base, h.Account.DeleteAccount, http.StatusNoContent))
}
