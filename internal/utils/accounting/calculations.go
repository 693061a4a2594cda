package accounting

import (
	"fmt"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// SignedBalance nets total debits against total credits by accounting
// convention, so a normal balance of either kind reads positive.
// ASSET/EXPENSE accounts are debit-normal, LIABILITY/EQUITY/REVENUE
// credit-normal. Amounts are integer minor units.
func SignedBalance(accountType domain.AccountType, debitMinor, creditMinor int64) (int64, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debitMinor - creditMinor, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return creditMinor - debitMinor, nil
	default:
		return 0, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateEntryBalance checks the structural rules of an entry's lines:
// at least two lines, every amount non-negative, exactly one side of
// each line positive, and debits equal to credits overall.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	var debits, credits int64
	for _, line := range lines {
		if line.Debit.MinorUnits < 0 || line.Credit.MinorUnits < 0 {
			return fmt.Errorf("line %s has a negative amount", line.LineID)
		}
		if (line.Debit.MinorUnits > 0) == (line.Credit.MinorUnits > 0) {
			return fmt.Errorf("line %s must have exactly one of debit or credit positive", line.LineID)
		}
		debits += line.Debit.MinorUnits
		credits += line.Credit.MinorUnits
	}

	if debits != credits {
		return fmt.Errorf("entry does not balance: debits %d, credits %d", debits, credits)
	}
	return nil
}
