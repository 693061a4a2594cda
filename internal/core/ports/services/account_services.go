package services

import (
	"context"

	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/fincore-app/fincore/internal/dto"
)

// AccountReaderSvc defines read operations over the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID. Missing
	// IDs are simply absent from the map.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)

	// Descendants returns the IDs of the account and all accounts below
	// it in the tree.
	Descendants(ctx context.Context, accountID string) ([]string, error)
}

// AccountWriterSvc defines write operations over the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount applies a partial update; code and account type are
	// immutable through this path.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Existing posted
	// entries are unaffected; new entries may no longer reference it.
	DeactivateAccount(ctx context.Context, accountID string) error

	// DeleteAccount removes an unreferenced, childless account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
