package domain

// AccountType defines the fundamental accounting nature of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the value is one of the five account natures.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports which side increases the balance of the type:
// Asset and Expense accounts grow with debits, the rest with credits.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// AccountStatus is the activation state of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account is a single node of the chart of accounts. The tree is stored
// as (id, parentID); traversal is by repeated lookup, never by owning
// child pointers.
type Account struct {
	AccountID       string        `json:"accountID"`
	Code            string        `json:"code"` // unique, immutable after creation
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	ParentAccountID string        `json:"parentAccountID,omitempty"` // empty means root
	Description     string        `json:"description,omitempty"`
	Status          AccountStatus `json:"status"`
	AuditFields
}

// IsActive reports whether the account may be referenced by new entries.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
