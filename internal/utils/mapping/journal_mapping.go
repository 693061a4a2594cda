package mapping

import (
	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/fincore-app/fincore/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its header row.
// Lines are mapped separately via ToModelJournalLine.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntryNumber:      d.EntryNumber,
		EntryDate:        d.Date,
		Description:      d.Description,
		Reference:        d.Reference,
		CurrencyCode:     d.CurrencyCode,
		Status:           models.EntryStatus(d.Status),
		ReversingEntryID: d.ReversingEntryID,
		OriginalEntryID:  d.OriginalEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a header row to a domain JournalEntry
// without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		Date:             m.EntryDate,
		Description:      m.Description,
		Reference:        m.Reference,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.EntryStatus(m.Status),
		ReversingEntryID: m.ReversingEntryID,
		OriginalEntryID:  m.OriginalEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a line row. The
// currency lives on the entry header, so only the minor units persist.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		DebitMinor:  d.Debit.MinorUnits,
		CreditMinor: d.Credit.MinorUnits,
		Description: d.Description,
	}
}

// ToDomainJournalLine converts a line row to a domain JournalLine,
// restamping the entry's currency onto both sides.
func ToDomainJournalLine(m models.JournalLine, currencyCode string) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       domain.NewMoney(m.DebitMinor, currencyCode),
		Credit:      domain.NewMoney(m.CreditMinor, currencyCode),
		Description: m.Description,
	}
}
