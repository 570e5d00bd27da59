package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// AccountPath binds the :id path parameter. The id is parsed by the service
// so an unknown and a malformed id get the same 404.
type AccountPath struct {
	ID string `param:"id"`
}

// Validate rejects ids spanning more than one path segment. Echo hands the
// rest of the path to a trailing :id, so /accounts/1/x arrives as "1/x" and
// is answered like any other unknown route.
func (p *AccountPath) Validate() error {
	if strings.Contains(p.ID, "/") {
		return echo.ErrNotFound
	}
	return nil
}

type ListAccountsRequest struct{}

func (r *ListAccountsRequest) Validate() error {
	return nil
}

// CreateAccountRequest carries the raw JSON body. Decoding happens in the
// service so payload type checks share one code path with updates.
type CreateAccountRequest struct {
	Body []byte
}

func (r *CreateAccountRequest) SetBody(body []byte) {
	r.Body = body
}

func (r *CreateAccountRequest) Validate() error {
	return nil
}

type GetAccountRequest struct {
	AccountPath
}

type UpdateAccountRequest struct {
	AccountPath
	Body []byte
}

func (r *UpdateAccountRequest) SetBody(body []byte) {
	r.Body = body
}

type DeleteAccountRequest struct {
	AccountPath
}
