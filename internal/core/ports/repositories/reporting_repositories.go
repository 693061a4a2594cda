package repositories

import (
	"context"
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// ReportingRepository defines aggregate reads over posted journal lines.
// Only lines of Posted entries participate; drafts are invisible here.
type ReportingRepository interface {
	// GetTrialBalanceData aggregates posted debits and credits per
	// account for entries dated at or before asOf, ordered by account
	// code. Accounts without posted lines are omitted.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetAccountActivity aggregates posted debits and credits for the
	// given accounts, grouped by account and currency, for entries
	// dated at or before asOf.
	GetAccountActivity(ctx context.Context, accountIDs []string, asOf time.Time) ([]domain.AccountActivity, error)
}
