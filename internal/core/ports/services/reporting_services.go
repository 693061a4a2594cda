package services

import (
	"context"
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// ReportingSvc derives balances from posted journal lines.
type ReportingSvc interface {
	// AccountBalance sums the account's posted lines dated at or before
	// asOf, sign-adjusted for the account's normal side. With
	// includeDescendants the whole subtree is rolled up. Mixed
	// currencies fail with ErrBusinessRule.
	AccountBalance(ctx context.Context, accountID string, asOf time.Time, includeDescendants bool) (domain.Money, error)

	// TrialBalance lists every account with posted activity at or
	// before asOf; the report's debit and credit totals are equal.
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
