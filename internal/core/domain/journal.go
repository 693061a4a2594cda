package domain

import "time"

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalLine is a single debit or credit against one account within a
// journal entry. Exactly one of Debit/Credit is strictly positive; both
// carry the entry's currency.
type JournalLine struct {
	LineID      string `json:"lineID"`
	EntryID     string `json:"entryID"`
	AccountID   string `json:"accountID"`
	Debit       Money  `json:"debit"`
	Credit      Money  `json:"credit"`
	Description string `json:"description,omitempty"`
}

// JournalEntry is a dated, balanced, multi-line bookkeeping fact. Once
// posted it is immutable except for the transition to Reversed, which
// links it to the reversing entry.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`
	EntryNumber      string        `json:"entryNumber"`
	Date             time.Time     `json:"date"` // accounting date, day precision
	Description      string        `json:"description"`
	Reference        string        `json:"reference,omitempty"`
	CurrencyCode     string        `json:"currencyCode"`
	Status           EntryStatus   `json:"status"`
	ReversingEntryID string        `json:"reversingEntryID,omitempty"` // set when Status == Reversed
	OriginalEntryID  string        `json:"originalEntryID,omitempty"`  // set on the reversal itself
	Lines            []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// Totals sums the entry's debit and credit minor units.
func (e JournalEntry) Totals() (debits int64, credits int64) {
	for _, line := range e.Lines {
		debits += line.Debit.MinorUnits
		credits += line.Credit.MinorUnits
	}
	return debits, credits
}

// IsBalanced reports whether debit and credit totals agree exactly.
func (e JournalEntry) IsBalanced() bool {
	debits, credits := e.Totals()
	return debits == credits
}
