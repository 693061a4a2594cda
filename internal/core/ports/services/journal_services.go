package services

import (
	"context"

	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/fincore-app/fincore/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data.
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated, filtered entry collection
	// ordered by date descending then entry number descending.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines the entry lifecycle operations.
type JournalWriterSvc interface {
	// CreateEntry validates a draft and persists it with a fresh entry
	// number.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error)

	// UpdateEntry rewrites a draft entry. Posted entries are immutable.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry. Posted entries cannot be deleted.
	DeleteEntry(ctx context.Context, entryID string) error

	// PostEntry transitions a draft to Posted after re-validating
	// accounts, period gating and balance. Concurrent posts of the same
	// entry see exactly one success; the loser gets ErrConflict.
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a mirror entry for a posted one,
	// marking the original Reversed and linking the pair.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
