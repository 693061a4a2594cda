package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
)

// memStore is an in-memory ledger store backing the lifecycle tests. It
// implements every repository port over plain maps so the real services
// can be exercised end to end without a database.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	years    map[string]domain.FiscalYear
	periods  map[string]domain.FiscalPeriod
	counter  int64
	prefix   string
}

func newMemStore(prefix string) *memStore {
	return &memStore{
		accounts: make(map[string]domain.Account),
		entries:  make(map[string]domain.JournalEntry),
		years:    make(map[string]domain.FiscalYear),
		periods:  make(map[string]domain.FiscalPeriod),
		prefix:   prefix,
	}
}

func (s *memStore) repos() portsrepo.RepositoryProvider {
	journal := &memJournalRepo{store: s}
	return portsrepo.RepositoryProvider{
		AccountRepo:   &memAccountRepo{store: s},
		JournalRepo:   journal,
		FiscalRepo:    &memFiscalRepo{store: s},
		ReportingRepo: &memReportingRepo{store: s},
		UsageRepo:     journal,
	}
}

// --- accounts ---

type memAccountRepo struct {
	store *memStore
}

var _ portsrepo.AccountRepository = (*memAccountRepo)(nil)

func (r *memAccountRepo) SaveAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.accounts {
		if existing.Code == account.Code {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, account.Code)
		}
	}
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *memAccountRepo) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &account, nil
}

func (r *memAccountRepo) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, account := range r.store.accounts {
		if account.Code == code {
			a := account
			return &a, nil
		}
	}
	return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
}

func (r *memAccountRepo) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := r.store.accounts[id]; ok {
			result[id] = account
		}
	}
	return result, nil
}

func (r *memAccountRepo) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var accounts []domain.Account
	for _, account := range r.store.accounts {
		if filter.AccountType != nil && account.AccountType != *filter.AccountType {
			continue
		}
		if filter.Status != nil && account.Status != *filter.Status {
			continue
		}
		if filter.ParentID != nil && account.ParentAccountID != *filter.ParentID {
			continue
		}
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (r *memAccountRepo) ListChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	return r.ListAccounts(ctx, portsrepo.AccountFilter{ParentID: &parentID})
}

func (r *memAccountRepo) UpdateAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[account.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *memAccountRepo) DeleteAccount(ctx context.Context, accountID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[accountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	delete(r.store.accounts, accountID)
	return nil
}

// --- journal ---

type memJournalRepo struct {
	store *memStore
}

var _ portsrepo.JournalRepositoryWithTx = (*memJournalRepo)(nil)

func (r *memJournalRepo) WithTx(ctx context.Context, fn func(repo portsrepo.JournalRepository) error) error {
	return fn(r)
}

func (r *memJournalRepo) NextEntryNumber(ctx context.Context, now time.Time) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.counter++
	return fmt.Sprintf("%s%s%010d", r.store.prefix, now.Format("20060102"), r.store.counter), nil
}

func (r *memJournalRepo) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries[entry.EntryID] = entry
	return nil
}

func (r *memJournalRepo) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry, ok := r.store.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return &entry, nil
}

func (r *memJournalRepo) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, page, perPage int) ([]domain.JournalEntry, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []domain.JournalEntry
	for _, entry := range r.store.entries {
		if filter.Status != nil && entry.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && entry.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && entry.Date.After(*filter.DateTo) {
			continue
		}
		if filter.AccountID != nil {
			found := false
			for _, line := range entry.Lines {
				if line.AccountID == *filter.AccountID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].EntryNumber > matched[j].EntryNumber
	})

	total := int64(len(matched))
	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memJournalRepo) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.entries[entry.EntryID]; !ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entry.EntryID)
	}
	r.store.entries[entry.EntryID] = entry
	return nil
}

func (r *memJournalRepo) DeleteEntry(ctx context.Context, entryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.entries[entryID]; !ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	delete(r.store.entries, entryID)
	return nil
}

func (r *memJournalRepo) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedAt time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry, ok := r.store.entries[entryID]
	if !ok || entry.Status != from {
		return false, nil
	}
	entry.Status = to
	entry.LastUpdatedAt = updatedAt
	r.store.entries[entryID] = entry
	return true, nil
}

func (r *memJournalRepo) LinkReversal(ctx context.Context, originalEntryID, reversingEntryID string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry, ok := r.store.entries[originalEntryID]
	if !ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, originalEntryID)
	}
	entry.ReversingEntryID = reversingEntryID
	entry.LastUpdatedAt = updatedAt
	r.store.entries[originalEntryID] = entry
	return nil
}

func (r *memJournalRepo) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, entry := range r.store.entries {
		for _, line := range entry.Lines {
			if line.AccountID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memJournalRepo) HasPostedLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, entry := range r.store.entries {
		if entry.Status != domain.Posted {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memJournalRepo) HasDraftEntriesBetween(ctx context.Context, start, end time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, entry := range r.store.entries {
		if entry.Status == domain.Draft && !entry.Date.Before(start) && !entry.Date.After(end) {
			return true, nil
		}
	}
	return false, nil
}

// --- fiscal calendar ---

type memFiscalRepo struct {
	store *memStore
}

var _ portsrepo.FiscalRepository = (*memFiscalRepo)(nil)

func (r *memFiscalRepo) SaveYear(ctx context.Context, year domain.FiscalYear) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.years[year.YearID] = year
	return nil
}

func (r *memFiscalRepo) UpdateYear(ctx context.Context, year domain.FiscalYear) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.years[year.YearID]; !ok {
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, year.YearID)
	}
	r.store.years[year.YearID] = year
	return nil
}

func (r *memFiscalRepo) FindYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	year, ok := r.store.years[yearID]
	if !ok {
		return nil, fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, yearID)
	}
	return &year, nil
}

func (r *memFiscalRepo) FindYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, year := range r.store.years {
		if year.Contains(date) {
			y := year
			return &y, nil
		}
	}
	return nil, fmt.Errorf("%w: no fiscal year for %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
}

func (r *memFiscalRepo) FindOverlappingYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, year := range r.store.years {
		if !end.Before(year.StartDate) && !start.After(year.EndDate) {
			y := year
			return &y, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memFiscalRepo) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var years []domain.FiscalYear
	for _, year := range r.store.years {
		years = append(years, year)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].StartDate.Before(years[j].StartDate) })
	return years, nil
}

func (r *memFiscalRepo) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.periods[period.PeriodID] = period
	return nil
}

func (r *memFiscalRepo) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.periods[period.PeriodID]; !ok {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, period.PeriodID)
	}
	r.store.periods[period.PeriodID] = period
	return nil
}

func (r *memFiscalRepo) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	period, ok := r.store.periods[periodID]
	if !ok {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
	}
	return &period, nil
}

func (r *memFiscalRepo) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, period := range r.store.periods {
		if period.Contains(date) {
			p := period
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memFiscalRepo) ListPeriodsByYear(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var periods []domain.FiscalPeriod
	for _, period := range r.store.periods {
		if period.YearID == yearID {
			periods = append(periods, period)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].StartDate.Before(periods[j].StartDate) })
	return periods, nil
}

// --- reporting ---

type memReportingRepo struct {
	store *memStore
}

var _ portsrepo.ReportingRepository = (*memReportingRepo)(nil)

func (r *memReportingRepo) GetAccountActivity(ctx context.Context, accountIDs []string, asOf time.Time) ([]domain.AccountActivity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}

	type key struct{ accountID, currency string }
	agg := make(map[key]*domain.AccountActivity)
	for _, entry := range r.store.entries {
		if entry.Status != domain.Posted || entry.Date.After(asOf) {
			continue
		}
		for _, line := range entry.Lines {
			if _, ok := wanted[line.AccountID]; !ok {
				continue
			}
			k := key{line.AccountID, entry.CurrencyCode}
			row, ok := agg[k]
			if !ok {
				row = &domain.AccountActivity{AccountID: line.AccountID, CurrencyCode: entry.CurrencyCode}
				agg[k] = row
			}
			row.DebitMinor += line.Debit.MinorUnits
			row.CreditMinor += line.Credit.MinorUnits
		}
	}

	var result []domain.AccountActivity
	for _, row := range agg {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AccountID != result[j].AccountID {
			return result[i].AccountID < result[j].AccountID
		}
		return result[i].CurrencyCode < result[j].CurrencyCode
	})
	return result, nil
}

func (r *memReportingRepo) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	type key struct{ accountID, currency string }
	agg := make(map[key]*domain.TrialBalanceRow)
	for _, entry := range r.store.entries {
		if entry.Status != domain.Posted || entry.Date.After(asOf) {
			continue
		}
		for _, line := range entry.Lines {
			account := r.store.accounts[line.AccountID]
			k := key{line.AccountID, entry.CurrencyCode}
			row, ok := agg[k]
			if !ok {
				row = &domain.TrialBalanceRow{
					AccountID:    line.AccountID,
					AccountCode:  account.Code,
					AccountName:  account.Name,
					AccountType:  account.AccountType,
					CurrencyCode: entry.CurrencyCode,
				}
				agg[k] = row
			}
			row.DebitMinor += line.Debit.MinorUnits
			row.CreditMinor += line.Credit.MinorUnits
		}
	}

	var rows []domain.TrialBalanceRow
	for _, row := range agg {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}
