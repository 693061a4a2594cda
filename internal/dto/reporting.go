package dto

import (
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Currency    string          `json:"currency"`
	Debit       int64           `json:"debit"`
	Credit      int64           `json:"credit"`
	DebitText   decimal.Decimal `json:"debit_text"`
	CreditText  decimal.Decimal `json:"credit_text"`
}

// TrialBalanceResponse is the trial balance report. Totals are the
// column sums; they are equal for any asOf date.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"as_of"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  int64 `json:"debit"`
		Credit int64 `json:"credit"`
	} `json:"totals"`
}

// AccountBalanceResponse is the balance of one account as of a date,
// sign-adjusted for the account's normal side.
type AccountBalanceResponse struct {
	AccountID          string          `json:"account_id"`
	AsOf               string          `json:"as_of"`
	Amount             int64           `json:"amount"`
	Currency           string          `json:"currency"`
	AmountText         decimal.Decimal `json:"amount_text"`
	IncludeDescendants bool            `json:"include_descendants"`
}

// ToTrialBalanceResponse converts domain trial balance rows to the wire
// shape, accumulating column totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: FormatDate(asOf),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}
	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Currency:    row.CurrencyCode,
			Debit:       row.DebitMinor,
			Credit:      row.CreditMinor,
			DebitText:   decimal.New(row.DebitMinor, -2),
			CreditText:  decimal.New(row.CreditMinor, -2),
		}
		response.Totals.Debit += row.DebitMinor
		response.Totals.Credit += row.CreditMinor
	}
	return response
}

// ToAccountBalanceResponse converts a computed balance to the wire shape.
func ToAccountBalanceResponse(accountID string, amount domain.Money, asOf time.Time, includeDescendants bool) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:          accountID,
		AsOf:               FormatDate(asOf),
		Amount:             amount.MinorUnits,
		Currency:           amount.CurrencyCode,
		AmountText:         amount.Decimal(),
		IncludeDescendants: includeDescendants,
	}
}
