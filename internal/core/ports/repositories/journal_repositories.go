package repositories

import (
	"context"
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// EntryFilter narrows ListEntries results. Nil fields are ignored.
type EntryFilter struct {
	AccountID *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Status    *domain.EntryStatus
}

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves an entry with its lines in stored order.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries (with lines) matching the
	// filter, ordered by date descending then entry number descending.
	// It also returns the total match count.
	ListEntries(ctx context.Context, filter EntryFilter, page, perPage int) ([]domain.JournalEntry, int64, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry persists a new entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry rewrites a draft entry's header and lines.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes an entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) error

	// UpdateEntryStatus transitions Status from 'from' to 'to' as a
	// compare-and-swap. It returns false when the entry was not in
	// 'from'; this is the concurrency primitive posting relies on.
	UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedAt time.Time) (bool, error)

	// LinkReversal records the reversing entry's ID on the original.
	LinkReversal(ctx context.Context, originalEntryID, reversingEntryID string, updatedAt time.Time) error
}

// EntryNumberSource hands out entry numbers from a persistent counter.
// Implementations must be monotonic and participate in the surrounding
// transaction so a rolled-back create does not consume a number.
type EntryNumberSource interface {
	NextEntryNumber(ctx context.Context, now time.Time) (string, error)
}

// AccountUsageReader answers referential questions other components ask
// about journal data.
type AccountUsageReader interface {
	// HasLinesForAccount reports whether any entry, draft or posted,
	// references the account.
	HasLinesForAccount(ctx context.Context, accountID string) (bool, error)

	// HasPostedLinesForAccount reports whether any posted entry
	// references the account.
	HasPostedLinesForAccount(ctx context.Context, accountID string) (bool, error)

	// HasDraftEntriesBetween reports whether any draft entry is dated
	// inside [start, end], both inclusive.
	HasDraftEntriesBetween(ctx context.Context, start, end time.Time) (bool, error)
}

// JournalRepository combines all journal-related repository interfaces.
type JournalRepository interface {
	EntryReader
	EntryWriter
	EntryNumberSource
	AccountUsageReader
}

// JournalRepositoryWithTx extends JournalRepository with a scoped
// transaction: fn runs against a repository bound to one store
// transaction, committed when fn returns nil and rolled back otherwise
// (including panics and context cancellation).
type JournalRepositoryWithTx interface {
	JournalRepository
	WithTx(ctx context.Context, fn func(repo JournalRepository) error) error
}
