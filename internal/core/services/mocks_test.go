package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock AccountUsageReader ---

type MockUsageReader struct {
	mock.Mock
}

var _ portsrepo.AccountUsageReader = (*MockUsageReader)(nil)

func (m *MockUsageReader) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsageReader) HasPostedLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsageReader) HasDraftEntriesBetween(ctx context.Context, start, end time.Time) (bool, error) {
	args := m.Called(ctx, start, end)
	return args.Bool(0), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

// WithTx runs fn against the mock itself, so expectations set on the
// mock cover the transactional calls too.
func (m *MockJournalRepository) WithTx(ctx context.Context, fn func(repo portsrepo.JournalRepository) error) error {
	return fn(m)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, page, perPage int) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, filter, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, entryID, from, to, updatedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) LinkReversal(ctx context.Context, originalEntryID, reversingEntryID string, updatedAt time.Time) error {
	args := m.Called(ctx, originalEntryID, reversingEntryID, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context, now time.Time) (string, error) {
	args := m.Called(ctx, now)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) HasPostedLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) HasDraftEntriesBetween(ctx context.Context, start, end time.Time) (bool, error) {
	args := m.Called(ctx, start, end)
	return args.Bool(0), args.Error(1)
}

// --- Mock FiscalRepository ---

type MockFiscalRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalRepository = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) FindYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindOverlappingYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) SaveYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalRepository) UpdateYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) ListPeriodsByYear(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockFiscalRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, accountIDs []string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, accountIDs, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

// --- Mock AccountReaderSvc (as used by the journal engine and reporting) ---

type MockAccountReaderSvc struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountReaderSvc)(nil)

func (m *MockAccountReaderSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountReaderSvc) Descendants(ctx context.Context, accountID string) ([]string, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock FiscalCalendarSvc (as used by the journal engine) ---

type MockFiscalCalendarSvc struct {
	mock.Mock
}

var _ portssvc.FiscalCalendarSvc = (*MockFiscalCalendarSvc)(nil)

func (m *MockFiscalCalendarSvc) CreateYear(ctx context.Context, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalCalendarSvc) GetYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalCalendarSvc) GetCurrentYear(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalCalendarSvc) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalCalendarSvc) CloseYear(ctx context.Context, yearID string, force bool) (*domain.FiscalYear, error) {
	args := m.Called(ctx, yearID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalCalendarSvc) ReopenYear(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalCalendarSvc) IsOpenFor(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockFiscalCalendarSvc) CreatePeriod(ctx context.Context, yearID string, req dto.CreateFiscalPeriodRequest) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, yearID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalCalendarSvc) ListPeriods(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalCalendarSvc) ClosePeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalCalendarSvc) ReopenPeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}
