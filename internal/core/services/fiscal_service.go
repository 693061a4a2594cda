package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
)

// fiscalService defines accounting time windows and gates posting.
type fiscalService struct {
	BaseService
	fiscalRepo           portsrepo.FiscalRepository
	usageRepo            portsrepo.AccountUsageReader
	allowForcedYearClose bool
}

// NewFiscalService creates a new fiscal calendar service. usageRepo is
// consulted for draft entries when closing a year.
func NewFiscalService(fiscalRepo portsrepo.FiscalRepository, usageRepo portsrepo.AccountUsageReader, allowForcedYearClose bool) portssvc.FiscalCalendarSvc {
	return &fiscalService{
		fiscalRepo:           fiscalRepo,
		usageRepo:            usageRepo,
		allowForcedYearClose: allowForcedYearClose,
	}
}

var _ portssvc.FiscalCalendarSvc = (*fiscalService)(nil)

// CreateYear validates and persists a new fiscal year, created Open.
// Intervals are end-inclusive and must not overlap any existing year.
func (s *fiscalService) CreateYear(ctx context.Context, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: fiscal year name is required", apperrors.ErrValidation)
	}
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}

	overlapping, err := s.fiscalRepo.FindOverlappingYear(ctx, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check fiscal year overlap")
		return nil, err
	}
	if overlapping != nil {
		return nil, fmt.Errorf("%w: interval overlaps fiscal year %q", apperrors.ErrConflict, overlapping.Name)
	}

	now := time.Now().UTC()
	year := domain.FiscalYear{
		YearID:    uuid.NewString(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.YearOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.fiscalRepo.SaveYear(ctx, year); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("year_id", year.YearID), slog.String("name", name))
	return &year, nil
}

// GetYearByID retrieves a fiscal year by ID.
func (s *fiscalService) GetYearByID(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	return s.fiscalRepo.FindYearByID(ctx, yearID)
}

// GetCurrentYear retrieves the Open year covering today, falling back
// to the most recent Open year.
func (s *fiscalService) GetCurrentYear(ctx context.Context) (*domain.FiscalYear, error) {
	years, err := s.fiscalRepo.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC()
	var latestOpen *domain.FiscalYear
	for i := range years {
		year := years[i]
		if year.Status != domain.YearOpen {
			continue
		}
		if year.Contains(today) {
			return &year, nil
		}
		latestOpen = &years[i]
	}
	if latestOpen == nil {
		return nil, fmt.Errorf("%w: no open fiscal year", apperrors.ErrNotFound)
	}
	return latestOpen, nil
}

// ListYears retrieves all years ordered by start date.
func (s *fiscalService) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.fiscalRepo.ListYears(ctx)
}

// CloseYear closes a year. A year still holding draft entries refuses
// to close unless force is set and forced closure is configured; forced
// closure leaves those drafts unable to post.
func (s *fiscalService) CloseYear(ctx context.Context, yearID string, force bool) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if year.Status == domain.YearClosed {
		return nil, fmt.Errorf("%w: fiscal year %q is already closed", apperrors.ErrConflict, year.Name)
	}

	if force && !s.allowForcedYearClose {
		return nil, fmt.Errorf("%w: forced year closure is disabled", apperrors.ErrValidation)
	}

	if !force {
		hasDrafts, err := s.usageRepo.HasDraftEntriesBetween(ctx, year.StartDate, year.EndDate)
		if err != nil {
			return nil, err
		}
		if hasDrafts {
			return nil, fmt.Errorf("%w: fiscal year %q still has draft entries", apperrors.ErrBusinessRule, year.Name)
		}
	}

	year.Status = domain.YearClosed
	year.LastUpdatedAt = time.Now().UTC()
	if err := s.fiscalRepo.UpdateYear(ctx, *year); err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year", slog.String("year_id", yearID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal year closed", slog.String("year_id", yearID), slog.Bool("forced", force))
	return year, nil
}

// ReopenYear reopens a closed year.
func (s *fiscalService) ReopenYear(ctx context.Context, yearID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if year.Status == domain.YearOpen {
		return nil, fmt.Errorf("%w: fiscal year %q is already open", apperrors.ErrConflict, year.Name)
	}
	year.Status = domain.YearOpen
	year.LastUpdatedAt = time.Now().UTC()
	if err := s.fiscalRepo.UpdateYear(ctx, *year); err != nil {
		s.LogError(ctx, err, "Failed to reopen fiscal year", slog.String("year_id", yearID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal year reopened", slog.String("year_id", yearID))
	return year, nil
}

// IsOpenFor reports whether the date may be posted to. A period
// containing the date overrides its year's status; a date covered by no
// year is a business rule failure.
func (s *fiscalService) IsOpenFor(ctx context.Context, date time.Time) error {
	period, err := s.fiscalRepo.FindPeriodForDate(ctx, date)
	if err == nil {
		if period.Status != domain.YearOpen {
			return fmt.Errorf("%w: period %q is closed for %s", apperrors.ErrBusinessRule, period.Name, dto.FormatDate(date))
		}
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	year, err := s.fiscalRepo.FindYearForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no fiscal year covers %s", apperrors.ErrBusinessRule, dto.FormatDate(date))
		}
		return err
	}
	if year.Status != domain.YearOpen {
		return fmt.Errorf("%w: period closed for %s", apperrors.ErrBusinessRule, dto.FormatDate(date))
	}
	return nil
}

// CreatePeriod subdivides a year with a new period, created Open. The
// period must lie inside the year and not overlap sibling periods.
func (s *fiscalService) CreatePeriod(ctx context.Context, yearID string, req dto.CreateFiscalPeriodRequest) (*domain.FiscalPeriod, error) {
	year, err := s.fiscalRepo.FindYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: period name is required", apperrors.ErrValidation)
	}
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidation)
	}
	if start.Before(year.StartDate) || end.After(year.EndDate) {
		return nil, fmt.Errorf("%w: period must lie inside fiscal year %q", apperrors.ErrValidation, year.Name)
	}

	siblings, err := s.fiscalRepo.ListPeriodsByYear(ctx, yearID)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if !end.Before(sibling.StartDate) && !start.After(sibling.EndDate) {
			return nil, fmt.Errorf("%w: interval overlaps period %q", apperrors.ErrConflict, sibling.Name)
		}
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		YearID:    yearID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.YearOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.fiscalRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal period", slog.String("year_id", yearID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("year_id", yearID))
	return &period, nil
}

// ListPeriods retrieves a year's periods ordered by start date.
func (s *fiscalService) ListPeriods(ctx context.Context, yearID string) ([]domain.FiscalPeriod, error) {
	if _, err := s.fiscalRepo.FindYearByID(ctx, yearID); err != nil {
		return nil, err
	}
	return s.fiscalRepo.ListPeriodsByYear(ctx, yearID)
}

// ClosePeriod closes a period.
func (s *fiscalService) ClosePeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	return s.setPeriodStatus(ctx, periodID, domain.YearClosed)
}

// ReopenPeriod reopens a closed period.
func (s *fiscalService) ReopenPeriod(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	return s.setPeriodStatus(ctx, periodID, domain.YearOpen)
}

func (s *fiscalService) setPeriodStatus(ctx context.Context, periodID string, status domain.YearStatus) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == status {
		return nil, fmt.Errorf("%w: period %q is already %s", apperrors.ErrConflict, period.Name, strings.ToLower(string(status)))
	}
	period.Status = status
	period.LastUpdatedAt = time.Now().UTC()
	if err := s.fiscalRepo.UpdatePeriod(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to update fiscal period status", slog.String("period_id", periodID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal period status changed", slog.String("period_id", periodID), slog.String("status", string(status)))
	return period, nil
}
