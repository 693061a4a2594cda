package repositories

import (
	"context"
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal year data.
type FiscalYearReader interface {
	// FindYearByID retrieves a fiscal year by its identifier.
	FindYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error)

	// FindYearForDate retrieves the year whose interval contains the
	// date, end inclusive.
	FindYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)

	// FindOverlappingYear retrieves any year whose interval intersects
	// [start, end], both inclusive.
	FindOverlappingYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error)

	// ListYears retrieves all years ordered by start date ascending.
	ListYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal year data.
type FiscalYearWriter interface {
	SaveYear(ctx context.Context, year domain.FiscalYear) error
	UpdateYear(ctx context.Context, year domain.FiscalYear) error
}

// FiscalPeriodReader defines read operations for fiscal period data.
type FiscalPeriodReader interface {
	// FindPeriodByID retrieves a period by its identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period containing the date, or
	// apperrors.ErrNotFound when the date is not subdivided.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriodsByYear retrieves a year's periods ordered by start date.
	ListPeriodsByYear(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data.
type FiscalPeriodWriter interface {
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error
	UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error
}

// FiscalRepository combines all fiscal calendar repository interfaces.
type FiscalRepository interface {
	FiscalYearReader
	FiscalYearWriter
	FiscalPeriodReader
	FiscalPeriodWriter
}
