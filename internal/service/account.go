package service

import (
	"context"
	"errors"

	"github.com/deppfellow/accounts-api/internal/errs"
	"github.com/deppfellow/accounts-api/internal/model"
	"github.com/deppfellow/accounts-api/internal/repository"
	"github.com/deppfellow/accounts-api/internal/validation"
	"github.com/rs/zerolog"
)

// AccountStore is the persistence contract AccountService depends on.
// *repository.AccountRepository implements it.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	Find(ctx context.Context, id int64) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, account *model.Account) error
	All(ctx context.Context) ([]*model.Account, error)
}

type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// Create decodes body into a new account and stores it. The returned
// account carries the generated ID.
func (s *AccountService) Create(ctx context.Context, body []byte) (*model.Account, error) {
	account, err := decodeAccount(body)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, account); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create account")
		return nil, err
	}
	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]*model.Account, error) {
	return s.store.All(ctx)
}

// Get, Update and Delete take the id as it appeared in the request path.
// Anything ParseAccountID rejects names no stored account and is reported
// as not found.
func (s *AccountService) Get(ctx context.Context, rawID string) (*model.Account, error) {
	return s.find(ctx, rawID)
}

// Update replaces every mutable field of the account with the values in
// body. A missing account is reported before the body is looked at.
func (s *AccountService) Update(ctx context.Context, rawID string, body []byte) (*model.Account, error) {
	account, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}

	incoming, err := decodeAccount(body)
	if err != nil {
		return nil, err
	}

	account.Name = incoming.Name
	account.Email = incoming.Email
	account.Address = incoming.Address
	account.PhoneNumber = incoming.PhoneNumber
	account.DateJoined = incoming.DateJoined

	if err := s.store.Update(ctx, account); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("account_id", account.ID).Msg("failed to update account")
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, rawID string) error {
	account, err := s.find(ctx, rawID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, account)
}

func (s *AccountService) find(ctx context.Context, rawID string) (*model.Account, error) {
	id, ok := model.ParseAccountID(rawID)
	if !ok {
		return nil, notFound(rawID)
	}

	account, err := s.store.Find(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(rawID)
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("account_id", id).Msg("failed to load account")
		return nil, err
	}
	return account, nil
}

// notFound echoes rawID back exactly as the client sent it.
func notFound(rawID string) *errs.HTTPError {
	return errs.NewNotFoundError("Account with id "+rawID+" not found", true, nil)
}

func decodeAccount(body []byte) (*model.Account, error) {
	account, err := model.Decode(body)
	if err != nil {
		return nil, decodeError(err)
	}
	if err := account.Validate(); err != nil {
		return nil, validation.ToHTTPError(err)
	}
	return account, nil
}

// decodeError maps model decoding failures onto 400 responses.
func decodeError(err error) error {
	var dataErr *model.DataError
	if errors.As(err, &dataErr) {
		return errs.NewBadRequestError(dataErr.Error(), true, nil, nil, nil)
	}

	var modelErr *model.ValidationError
	if errors.As(err, &modelErr) {
		var fieldErrors []errs.FieldError
		for _, issue := range modelErr.Issues {
			if issue.Field == "" {
				continue
			}
			fieldErrors = append(fieldErrors, errs.FieldError{Field: issue.Field, Error: issue.Message})
		}
		return errs.NewBadRequestError(modelErr.Error(), true, nil, fieldErrors, nil)
	}

	return validation.ToHTTPError(err)
}
