package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db dbConn
}

// newPgxReportingRepository creates a new repository for aggregate reads.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData aggregates posted debits and credits per account
// up to asOf. Accounts without posted activity do not appear.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, e.currency_code,
		       COALESCE(SUM(l.debit_minor), 0), COALESCE(SUM(l.credit_minor), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.status = 'POSTED' AND e.entry_date <= $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, e.currency_code
		ORDER BY a.code;
	`
	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.CurrencyCode,
			&row.DebitMinor,
			&row.CreditMinor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetAccountActivity aggregates posted debits and credits for the given
// accounts up to asOf, grouped by account and currency.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, accountIDs []string, asOf time.Time) ([]domain.AccountActivity, error) {
	if len(accountIDs) == 0 {
		return []domain.AccountActivity{}, nil
	}

	query := `
		SELECT l.account_id, e.currency_code,
		       COALESCE(SUM(l.debit_minor), 0), COALESCE(SUM(l.credit_minor), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.status = 'POSTED' AND e.entry_date <= $1 AND l.account_id = ANY($2)
		GROUP BY l.account_id, e.currency_code;
	`
	rows, err := r.db.Query(ctx, query, asOf, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var activity domain.AccountActivity
		err := rows.Scan(&activity.AccountID, &activity.CurrencyCode, &activity.DebitMinor, &activity.CreditMinor)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		result = append(result, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}
