package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	"github.com/fincore-app/fincore/internal/models"
	"github.com/fincore-app/fincore/internal/utils/mapping"
)

type PgxAccountRepository struct {
	db dbConn
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{db: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, parent_account_id, description, status, created_at, last_updated_at`

// scanAccount reads one account row. parent_account_id is nullable.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&parentID,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

func nullableID(id string) sql.NullString {
	if id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}

// SaveAccount inserts a new account. A duplicate code surfaces as
// apperrors.ErrConflict.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, code, name, account_type, parent_account_id, description, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		nullableID(m.ParentAccountID),
		m.Description,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its unique code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	m, err := scanAccount(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. The map
// simply omits IDs that were not found; the caller decides whether that
// is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves accounts matching the filter, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []any{}

	if filter.AccountType != nil {
		args = append(args, string(*filter.AccountType))
		query += fmt.Sprintf(" AND account_type = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ParentID != nil {
		args = append(args, *filter.ParentID)
		query += fmt.Sprintf(" AND parent_account_id = $%d", len(args))
	}
	query += " ORDER BY code;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListChildAccounts retrieves the direct children of an account, ordered by code.
func (r *PgxAccountRepository) ListChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE parent_account_id = $1 ORDER BY code;`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child accounts of %s: %w", parentID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating child account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's mutable fields. Code is
// immutable and deliberately absent from the SET list.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, parent_account_id = $4, description = $5, status = $6, last_updated_at = $7
		WHERE account_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		nullableID(m.ParentAccountID),
		m.Description,
		m.Status,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account permanently. A foreign key violation
// means journal lines still reference it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: account %s is referenced by journal lines", apperrors.ErrConflict, accountID)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
