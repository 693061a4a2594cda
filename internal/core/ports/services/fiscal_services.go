package services

import (
	"context"
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/fincore-app/fincore/internal/dto"
)

// FiscalCalendarSvc manages fiscal years and periods and answers the
// posting-gate question for dated entries.
type FiscalCalendarSvc interface {
	// CreateYear validates and persists a new fiscal year, created Open.
	CreateYear(ctx context.Context, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error)

	// GetYearByID retrieves a fiscal year by ID.
	GetYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error)

	// GetCurrentYear retrieves the single Open year.
	GetCurrentYear(ctx context.Context) (*domain.FiscalYear, error)

	// ListYears retrieves all years ordered by start date.
	ListYears(ctx context.Context) ([]domain.FiscalYear, error)

	// CloseYear closes a year. Years holding draft entries refuse to
	// close unless force is set and forced closure is configured.
	CloseYear(ctx context.Context, yearID string, force bool) (*domain.FiscalYear, error)

	// ReopenYear reopens a closed year.
	ReopenYear(ctx context.Context, yearID string) (*domain.FiscalYear, error)

	// IsOpenFor reports whether the date may be posted to. When the
	// date falls in a period, the period's status wins over the year's.
	// Dates covered by no year fail with ErrBusinessRule.
	IsOpenFor(ctx context.Context, date time.Time) error

	// CreatePeriod subdivides a year with a new period, created Open.
	CreatePeriod(ctx context.Context, yearID string, req dto.CreateFiscalPeriodRequest) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves a year's periods ordered by start date.
	ListPeriods(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error)

	// ClosePeriod closes a period.
	ClosePeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// ReopenPeriod reopens a closed period.
	ReopenPeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)
}
