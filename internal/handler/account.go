package handler

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/accounts-api/internal/middleware"
	"github.com/deppfellow/accounts-api/internal/model"
	"github.com/deppfellow/accounts-api/internal/server"
	"github.com/deppfellow/accounts-api/internal/service"
	"github.com/labstack/echo/v4"
)

// RouteGetAccount names the GET /accounts/:id route so Location headers can
// be built with echo's Reverse.
const RouteGetAccount = "accounts.get"

type AccountHandler struct {
	Handler
	accounts *service.AccountService
}

func NewAccountHandler(s *server.Server, accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{
		Handler:  NewHandler(s),
		accounts: accounts,
	}
}

func (h *AccountHandler) CreateAccount(c echo.Context, req *CreateAccountRequest) (*model.Account, error) {
	middleware.GetLogger(c).Info().Msg("Request to create an Account")

	account, err := h.accounts.Create(c.Request().Context(), req.Body)
	if err != nil {
		return nil, err
	}

	setLocation(c, account.ID)
	return account, nil
}

// ListAccounts always answers with a JSON array, empty when there are no
// accounts.
func (h *AccountHandler) ListAccounts(c echo.Context, req *ListAccountsRequest) ([]*model.Account, error) {
	middleware.GetLogger(c).Info().Msg("Request to list all Accounts")

	return h.accounts.List(c.Request().Context())
}

func (h *AccountHandler) GetAccount(c echo.Context, req *GetAccountRequest) (*model.Account, error) {
	middleware.GetLogger(c).Info().Str("account_id", req.ID).Msg("Request to read an Account")

	return h.accounts.Get(c.Request().Context(), req.ID)
}

func (h *AccountHandler) UpdateAccount(c echo.Context, req *UpdateAccountRequest) (*model.Account, error) {
	middleware.GetLogger(c).Info().Str("account_id", req.ID).Msg("Request to update an Account")

	account, err := h.accounts.Update(c.Request().Context(), req.ID, req.Body)
	if err != nil {
		return nil, err
	}

	setLocation(c, account.ID)
	return account, nil
}

func (h *AccountHandler) DeleteAccount(c echo.Context, req *DeleteAccountRequest) error {
	middleware.GetLogger(c).Info().Str("account_id", req.ID).Msg("Request to delete an Account")

	return h.accounts.Delete(c.Request().Context(), req.ID)
}

func setLocation(c echo.Context, id int64) {
	location := c.Echo().Reverse(RouteGetAccount, strconv.FormatInt(id, 10))
	if location == "" {
		location = fmt.Sprintf("/accounts/%d", id)
	}
	c.Response().Header().Set(echo.HeaderLocation, location)
}
