package repositories

import (
	"context"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// AccountFilter narrows ListAccounts results. Nil fields are ignored.
type AccountFilter struct {
	AccountType *domain.AccountType
	Status      *domain.AccountStatus
	ParentID    *string
}

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique human-facing code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs, keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code ascending.
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)

	// ListChildAccounts retrieves the direct children of an account.
	ListChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account permanently.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
