package models

import "time"

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Lines are stored in journal_lines and loaded separately.
type JournalEntry struct {
	EntryID          string      `db:"entry_id"`
	EntryNumber      string      `db:"entry_number"`
	EntryDate        time.Time   `db:"entry_date"`
	Description      string      `db:"description"`
	Reference        string      `db:"reference"`
	CurrencyCode     string      `db:"currency_code"`
	Status           EntryStatus `db:"status"`
	ReversingEntryID string      `db:"reversing_entry_id"` // Nullable
	OriginalEntryID  string      `db:"original_entry_id"`  // Nullable
	AuditFields
}

// JournalLine represents a single line within an entry, affecting one
// account. Amounts are integer minor units; exactly one side is positive.
type JournalLine struct {
	LineID      string `db:"line_id"`
	EntryID     string `db:"entry_id"`
	AccountID   string `db:"account_id"`
	DebitMinor  int64  `db:"debit_minor"`
	CreditMinor int64  `db:"credit_minor"`
	Description string `db:"description"`
	Position    int    `db:"position"` // preserves submitted line order
}
