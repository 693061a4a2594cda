package domain

// TrialBalanceRow is one account's accumulated posted debits and credits
// as of a date. The report's debit and credit column totals must match.
type TrialBalanceRow struct {
	AccountID    string      `json:"accountID"`
	AccountCode  string      `json:"accountCode"`
	AccountName  string      `json:"accountName"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	DebitMinor   int64       `json:"debitMinor"`
	CreditMinor  int64       `json:"creditMinor"`
}

// AccountActivity is the raw posted debit/credit aggregate for one
// account in one currency, as read from the store.
type AccountActivity struct {
	AccountID    string
	CurrencyCode string
	DebitMinor   int64
	CreditMinor  int64
}
