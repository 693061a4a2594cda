package dto

import (
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// CreateEntryLineRequest is one debit or credit line of a new entry.
// Amounts are integer minor units; exactly one of debit/credit must be
// strictly positive.
type CreateEntryLineRequest struct {
	AccountID   string `json:"account_id" binding:"required"`
	Debit       int64  `json:"debit" binding:"min=0"`
	Credit      int64  `json:"credit" binding:"min=0"`
	Description string `json:"description,omitempty"`
}

// CreateEntryRequest is the body for POST /journal-entries. When
// currency is omitted the configured default currency applies.
type CreateEntryRequest struct {
	Date         string                   `json:"date" binding:"required,datetime=2006-01-02"`
	Description  string                   `json:"description" binding:"required"`
	Reference    string                   `json:"reference,omitempty"`
	CurrencyCode string                   `json:"currency,omitempty" binding:"omitempty,len=3,uppercase"`
	Lines        []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest is the body for PUT /journal-entries/{id}. Only
// draft entries may be updated; when lines are present they replace the
// draft's lines wholesale and are re-validated like a create.
type UpdateEntryRequest struct {
	Date         *string                  `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Description  *string                  `json:"description,omitempty"`
	Reference    *string                  `json:"reference,omitempty"`
	CurrencyCode *string                  `json:"currency,omitempty" binding:"omitempty,len=3,uppercase"`
	Lines        []CreateEntryLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// ReverseEntryRequest is the body for POST /journal-entries/{id}/reverse.
type ReverseEntryRequest struct {
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description" binding:"required"`
}

// ListEntriesParams are the query parameters for GET /journal-entries.
type ListEntriesParams struct {
	ListParams
	AccountID *string `form:"account_id"`
	DateFrom  *string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    *string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
}

// EntryLineResponse is the wire shape of a journal line.
type EntryLineResponse struct {
	LineID      string `json:"line_id"`
	AccountID   string `json:"account_id"`
	Debit       int64  `json:"debit"`
	Credit      int64  `json:"credit"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// EntryResponse is the wire shape of a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entry_id"`
	EntryNumber      string              `json:"entry_number"`
	Date             string              `json:"date"`
	Description      string              `json:"description"`
	Reference        string              `json:"reference,omitempty"`
	Currency         string              `json:"currency"`
	Status           string              `json:"status"`
	ReversingEntryID string              `json:"reversing_entry_id,omitempty"`
	OriginalEntryID  string              `json:"original_entry_id,omitempty"`
	Lines            []EntryLineResponse `json:"lines"`
	CreatedAt        time.Time           `json:"created_at"`
	LastUpdatedAt    time.Time           `json:"last_updated_at"`
}

// ListEntriesResponse is the paginated entry collection.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// ToEntryResponse converts a domain entry to its wire shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			Debit:       line.Debit.MinorUnits,
			Credit:      line.Credit.MinorUnits,
			Currency:    line.Debit.CurrencyCode,
			Description: line.Description,
		}
	}
	return EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		Date:             FormatDate(e.Date),
		Description:      e.Description,
		Reference:        e.Reference,
		Currency:         e.CurrencyCode,
		Status:           string(e.Status),
		ReversingEntryID: e.ReversingEntryID,
		OriginalEntryID:  e.OriginalEntryID,
		Lines:            lines,
		CreatedAt:        e.CreatedAt,
		LastUpdatedAt:    e.LastUpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
