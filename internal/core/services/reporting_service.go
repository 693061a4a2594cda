package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/platform/config"
	"github.com/fincore-app/fincore/internal/utils/accounting"
)

// reportingService answers balance questions from posted lines only.
// Drafts never affect a balance.
type reportingService struct {
	BaseService
	reportingRepo   portsrepo.ReportingRepository
	accountSvc      portssvc.AccountReaderSvc
	defaultCurrency string
	currencyMixing  string
}

// NewReportingService creates a new reporting service. currencyMixing
// controls what happens when a balance would aggregate lines in more
// than one currency, see config.MixingReject.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountSvc portssvc.AccountReaderSvc, defaultCurrency, currencyMixing string) portssvc.ReportingSvc {
	return &reportingService{
		reportingRepo:   reportingRepo,
		accountSvc:      accountSvc,
		defaultCurrency: defaultCurrency,
		currencyMixing:  currencyMixing,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// AccountBalance computes the signed balance of an account as of a date,
// inclusive. Debit-normal accounts report debits minus credits,
// credit-normal accounts the opposite, so a healthy balance of either
// kind reads positive. With includeDescendants the whole subtree rolls
// up into one figure.
func (s *reportingService) AccountBalance(ctx context.Context, accountID string, asOf time.Time, includeDescendants bool) (domain.Money, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	ids := []string{account.AccountID}
	if includeDescendants {
		// Descendants already includes the account itself.
		ids, err = s.accountSvc.Descendants(ctx, account.AccountID)
		if err != nil {
			return domain.Money{}, err
		}
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, ids, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account activity")
		return domain.Money{}, err
	}

	if len(activity) == 0 {
		return domain.ZeroMoney(s.defaultCurrency), nil
	}

	currency := activity[0].CurrencyCode
	var debits, credits int64
	for _, row := range activity {
		if row.CurrencyCode != currency {
			if s.currencyMixing == config.MixingReject {
				return domain.Money{}, fmt.Errorf("%w: balance aggregates multiple currencies (%s, %s)", apperrors.ErrBusinessRule, currency, row.CurrencyCode)
			}
			return domain.Money{}, fmt.Errorf("%w: per-currency balance mode is not supported", apperrors.ErrBusinessRule)
		}
		debits += row.DebitMinor
		credits += row.CreditMinor
	}

	net, err := accounting.SignedBalance(account.AccountType, debits, credits)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return domain.NewMoney(net, currency), nil
}

// TrialBalance reports, per account with posted activity, total debits
// and total credits as of a date. The two grand totals are equal by
// construction since every posted entry balances.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance data")
		return nil, err
	}
	return rows, nil
}
