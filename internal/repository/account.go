package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/accounts-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by Find when no row has the requested id.
var ErrNotFound = errors.New("account not found")

// DBTX is the subset of *pgxpool.Pool used by the repositories. A pgx.Tx
// also satisfies it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const accountColumns = `id, name, email, address, phone_number, date_joined`

// AccountRepository persists accounts in the accounts table. Every method is
// a single statement.
type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts account and sets its ID from the generated key.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (name, email, address, phone_number, date_joined)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		account.Name, account.Email, account.Address, account.PhoneNumber, account.DateJoined,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Find returns the account with id, or ErrNotFound.
func (r *AccountRepository) Find(ctx context.Context, id int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account %d: %w", id, err)
	}
	return account, nil
}

// Update writes every mutable column of account. Updating an id that does
// not exist affects no rows and is not an error.
func (r *AccountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, email = $3, address = $4, phone_number = $5, date_joined = $6
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query,
		account.ID, account.Name, account.Email, account.Address, account.PhoneNumber, account.DateJoined,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}
	return nil
}

// Delete removes the row for account. Deleting a missing row is a no-op.
func (r *AccountRepository) Delete(ctx context.Context, account *model.Account) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, account.ID); err != nil {
		return fmt.Errorf("failed to delete account %d: %w", account.ID, err)
	}
	return nil
}

// All returns every account ordered by id.
func (r *AccountRepository) All(ctx context.Context) ([]*model.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.Address,
		&account.PhoneNumber, &account.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
