package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
	"github.com/fincore-app/fincore/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = fmt.Errorf("%w: entry must balance", apperrors.ErrBusinessRule)
	ErrEntryMinLines      = fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
)

// journalService is the double-entry bookkeeping engine. It owns journal
// entries and their lines; accounts and the fiscal calendar are read
// through their own components.
type journalService struct {
	BaseService
	journalRepo     portsrepo.JournalRepositoryWithTx
	accountSvc      portssvc.AccountReaderSvc
	fiscalSvc       portssvc.FiscalCalendarSvc
	defaultCurrency string
}

// NewJournalService creates a new journal engine.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountReaderSvc, fiscalSvc portssvc.FiscalCalendarSvc, defaultCurrency string) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:     journalRepo,
		accountSvc:      accountSvc,
		fiscalSvc:       fiscalSvc,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines into domain lines carrying the
// entry's currency, enforcing the line shape rules: amounts are
// non-negative and exactly one side of each line is strictly positive.
func buildLines(entryID, currency string, reqLines []dto.CreateEntryLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		if lr.Debit < 0 || lr.Credit < 0 {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if (lr.Debit > 0) == (lr.Credit > 0) {
			return nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit positive", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Debit:       domain.NewMoney(lr.Debit, currency),
			Credit:      domain.NewMoney(lr.Credit, currency),
			Description: lr.Description,
		}
	}
	return lines, nil
}

// checkAccountsActive verifies every referenced account exists and is
// Active, naming the offending account. kind distinguishes the create
// path (unknown account is a validation error) from the post path
// (everything is a business rule failure).
func (s *journalService) checkAccountsActive(ctx context.Context, lines []domain.JournalLine, missingKind error) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s not found", missingKind, id)
		}
		if !account.IsActive() {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrBusinessRule, id)
		}
	}
	return nil
}

// validateDraft runs the create-time checks in their specified order:
// description, line count, line shape, single currency, account status,
// exact balance.
func (s *journalService) validateDraft(ctx context.Context, description, currency string, reqLines []dto.CreateEntryLineRequest, entryID string) ([]domain.JournalLine, error) {
	if description == "" {
		return nil, ErrDescriptionMissing
	}
	if len(reqLines) < 2 {
		return nil, ErrEntryMinLines
	}
	lines, err := buildLines(entryID, currency, reqLines)
	if err != nil {
		return nil, err
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter ISO code, got %q", apperrors.ErrValidation, currency)
	}
	if err := s.checkAccountsActive(ctx, lines, apperrors.ErrValidation); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{Lines: lines}
	if debits, credits := entry.Totals(); debits != credits {
		return nil, fmt.Errorf("%w: debits %d, credits %d", ErrEntryUnbalanced, debits, credits)
	}
	return lines, nil
}

// CreateEntry validates a draft and persists it. The entry number comes
// from the persistent counter inside the same store transaction, so a
// failed create consumes no number.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	currency := req.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	entryID := uuid.NewString()
	lines, err := s.validateDraft(ctx, req.Description, currency, req.Lines, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:      entryID,
		Date:         date,
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: currency,
		Status:       domain.Draft,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	err = s.journalRepo.WithTx(ctx, func(repo portsrepo.JournalRepository) error {
		number, err := repo.NextEntryNumber(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to allocate entry number: %w", err)
		}
		entry.EntryNumber = number
		return repo.SaveEntry(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a filtered, paginated entry collection ordered
// by date descending then entry number descending.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	params.Normalize()

	filter := portsrepo.EntryFilter{AccountID: params.AccountID}
	if params.DateFrom != nil {
		from, err := dto.ParseDate(*params.DateFrom)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}
	if params.DateTo != nil {
		to, err := dto.ParseDate(*params.DateTo)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &to
	}
	if params.Status != nil {
		st := domain.EntryStatus(*params.Status)
		filter.Status = &st
	}

	entries, total, err := s.journalRepo.ListEntries(ctx, filter, params.Page, params.PerPage)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries: dto.ToEntryResponses(entries),
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	}, nil
}

// UpdateEntry rewrites a draft. Posted and reversed entries are immutable.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*domain.JournalEntry, error) {
	var updated *domain.JournalEntry
	err := s.journalRepo.WithTx(ctx, func(repo portsrepo.JournalRepository) error {
		entry, err := repo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s, only drafts may be updated", apperrors.ErrConflict, entryID, entry.Status)
		}

		if req.Date != nil {
			date, err := dto.ParseDate(*req.Date)
			if err != nil {
				return err
			}
			entry.Date = date
		}
		if req.Description != nil {
			entry.Description = *req.Description
		}
		if req.Reference != nil {
			entry.Reference = *req.Reference
		}
		if req.CurrencyCode != nil {
			entry.CurrencyCode = *req.CurrencyCode
		}

		if req.Lines != nil {
			lines, err := s.validateDraft(ctx, entry.Description, entry.CurrencyCode, req.Lines, entry.EntryID)
			if err != nil {
				return err
			}
			entry.Lines = lines
		} else {
			// Header-only edits still re-validate the description and,
			// on a currency change, restamp the existing lines.
			if entry.Description == "" {
				return ErrDescriptionMissing
			}
			if req.CurrencyCode != nil {
				if len(entry.CurrencyCode) != 3 {
					return fmt.Errorf("%w: currency must be a 3-letter ISO code, got %q", apperrors.ErrValidation, entry.CurrencyCode)
				}
				for i := range entry.Lines {
					entry.Lines[i].Debit.CurrencyCode = entry.CurrencyCode
					entry.Lines[i].Credit.CurrencyCode = entry.CurrencyCode
				}
			}
		}

		entry.LastUpdatedAt = time.Now().UTC()
		if err := repo.UpdateEntry(ctx, *entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID))
	return updated, nil
}

// DeleteEntry removes a draft. Posted entries cannot be deleted; they
// can only be reversed.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string) error {
	err := s.journalRepo.WithTx(ctx, func(repo portsrepo.JournalRepository) error {
		entry, err := repo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s, only drafts may be deleted", apperrors.ErrConflict, entryID, entry.Status)
		}
		return repo.DeleteEntry(ctx, entryID)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// PostEntry transitions a draft to Posted. Accounts, period gating and
// balance are all re-validated; the flip itself is a compare-and-swap
// on status, so of two concurrent posters exactly one wins and the
// loser observes ErrConflict.
func (s *journalService) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.journalRepo.WithTx(ctx, func(repo portsrepo.JournalRepository) error {
		entry, err := repo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s, not a draft", apperrors.ErrConflict, entryID, entry.Status)
		}

		if err := s.checkAccountsActive(ctx, entry.Lines, apperrors.ErrBusinessRule); err != nil {
			return err
		}
		if err := s.fiscalSvc.IsOpenFor(ctx, entry.Date); err != nil {
			return err
		}
		if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrBusinessRule, err)
		}

		now := time.Now().UTC()
		ok, err := repo.UpdateEntryStatus(ctx, entryID, domain.Draft, domain.Posted, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: entry %s was concurrently modified", apperrors.ErrConflict, entryID)
		}

		entry.Status = domain.Posted
		entry.LastUpdatedAt = now
		posted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", posted.EntryNumber))
	return posted, nil
}

// ReverseEntry creates a mirror entry for a posted one, same accounts
// and amounts with debit and credit swapped line for line, and posts it
// through the normal validation path, so period gating applies to the
// reversal date. The original becomes Reversed and points at the
// reversal.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error) {
	reversalDate, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	var reversal *domain.JournalEntry
	err = s.journalRepo.WithTx(ctx, func(repo portsrepo.JournalRepository) error {
		original, err := repo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if original.Status != domain.Posted {
			return fmt.Errorf("%w: entry %s is %s, only posted entries may be reversed", apperrors.ErrConflict, entryID, original.Status)
		}

		now := time.Now().UTC()
		mirror := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			Date:            reversalDate,
			Description:     req.Description,
			Reference:       original.EntryNumber,
			CurrencyCode:    original.CurrencyCode,
			Status:          domain.Posted,
			OriginalEntryID: original.EntryID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		mirror.Lines = make([]domain.JournalLine, len(original.Lines))
		for i, line := range original.Lines {
			mirror.Lines[i] = domain.JournalLine{
				LineID:      uuid.NewString(),
				EntryID:     mirror.EntryID,
				AccountID:   line.AccountID,
				Debit:       line.Credit,
				Credit:      line.Debit,
				Description: line.Description,
			}
		}

		// Same preconditions as posting, applied to the reversal date.
		if err := s.checkAccountsActive(ctx, mirror.Lines, apperrors.ErrBusinessRule); err != nil {
			return err
		}
		if err := s.fiscalSvc.IsOpenFor(ctx, reversalDate); err != nil {
			return err
		}

		number, err := repo.NextEntryNumber(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to allocate entry number: %w", err)
		}
		mirror.EntryNumber = number

		if err := repo.SaveEntry(ctx, mirror); err != nil {
			return err
		}
		ok, err := repo.UpdateEntryStatus(ctx, original.EntryID, domain.Posted, domain.Reversed, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: entry %s was concurrently modified", apperrors.ErrConflict, entryID)
		}
		if err := repo.LinkReversal(ctx, original.EntryID, mirror.EntryID, now); err != nil {
			return err
		}

		reversal = &mirror
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversing_entry_id", reversal.EntryID))
	return reversal, nil
}
