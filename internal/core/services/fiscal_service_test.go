package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/fincore-app/fincore/internal/core/services"
	"github.com/fincore-app/fincore/internal/dto"
)

type FiscalServiceTestSuite struct {
	suite.Suite
	mockFiscalRepo *MockFiscalRepository
	mockUsageRepo  *MockUsageReader
	openYear       domain.FiscalYear
}

func (suite *FiscalServiceTestSuite) SetupTest() {
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.mockUsageRepo = new(MockUsageReader)

	suite.openYear = domain.FiscalYear{
		YearID:    uuid.NewString(),
		Name:      "FY2026",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.YearOpen,
	}
}

func (suite *FiscalServiceTestSuite) TestCreateYear_Success() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	req := dto.CreateFiscalYearRequest{Name: "FY2027", StartDate: "2027-01-01", EndDate: "2027-12-31"}

	suite.mockFiscalRepo.On("FindOverlappingYear", ctx,
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("SaveYear", ctx, mock.AnythingOfType("domain.FiscalYear")).Return(nil).Once()

	year, err := service.CreateYear(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(year)
	suite.Equal(domain.YearOpen, year.Status)
	suite.Equal("FY2027", year.Name)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestCreateYear_Overlap() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	req := dto.CreateFiscalYearRequest{Name: "FY2026b", StartDate: "2026-07-01", EndDate: "2027-06-30"}

	suite.mockFiscalRepo.On("FindOverlappingYear", ctx, mock.Anything, mock.Anything).Return(&suite.openYear, nil).Once()

	_, err := service.CreateYear(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "FY2026")
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SaveYear", mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCreateYear_EndBeforeStart() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	req := dto.CreateFiscalYearRequest{Name: "Backwards", StartDate: "2026-12-31", EndDate: "2026-01-01"}

	_, err := service.CreateYear(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalServiceTestSuite) TestCloseYear_DraftsBlock() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	year := suite.openYear

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()
	suite.mockUsageRepo.On("HasDraftEntriesBetween", ctx, year.StartDate, year.EndDate).Return(true, nil).Once()

	_, err := service.CloseYear(ctx, year.YearID, false)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdateYear", mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCloseYear_ForcedDisabled() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	year := suite.openYear

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()

	_, err := service.CloseYear(ctx, year.YearID, true)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsageRepo.AssertNotCalled(suite.T(), "HasDraftEntriesBetween", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCloseYear_ForcedSkipsDraftCheck() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, true)
	year := suite.openYear

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()
	suite.mockFiscalRepo.On("UpdateYear", ctx, mock.AnythingOfType("domain.FiscalYear")).Return(nil).Once()

	closed, err := service.CloseYear(ctx, year.YearID, true)

	suite.Require().NoError(err)
	suite.Equal(domain.YearClosed, closed.Status)
	suite.mockUsageRepo.AssertNotCalled(suite.T(), "HasDraftEntriesBetween", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCloseYear_AlreadyClosed() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	year := suite.openYear
	year.Status = domain.YearClosed

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()

	_, err := service.CloseYear(ctx, year.YearID, false)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *FiscalServiceTestSuite) TestReopenYear() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	year := suite.openYear
	year.Status = domain.YearClosed

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()
	suite.mockFiscalRepo.On("UpdateYear", ctx, mock.AnythingOfType("domain.FiscalYear")).Return(nil).Once()

	reopened, err := service.ReopenYear(ctx, year.YearID)

	suite.Require().NoError(err)
	suite.Equal(domain.YearOpen, reopened.Status)
}

func (suite *FiscalServiceTestSuite) TestIsOpenFor_PeriodOverridesClosedYear() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		YearID:    suite.openYear.YearID,
		Name:      "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.YearOpen,
	}

	// The year's own status is never consulted once a period matches.
	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, date).Return(&period, nil).Once()

	err := service.IsOpenFor(ctx, date)

	suite.Require().NoError(err)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "FindYearForDate", mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestIsOpenFor_ClosedPeriod() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	period := domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Name:     "2026-03",
		Status:   domain.YearClosed,
	}

	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, date).Return(&period, nil).Once()

	err := service.IsOpenFor(ctx, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (suite *FiscalServiceTestSuite) TestIsOpenFor_FallsBackToYear() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("FindYearForDate", ctx, date).Return(&suite.openYear, nil).Once()

	err := service.IsOpenFor(ctx, date)

	suite.Require().NoError(err)
}

func (suite *FiscalServiceTestSuite) TestIsOpenFor_NoYearCoversDate() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	date := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockFiscalRepo.On("FindPeriodForDate", ctx, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFiscalRepo.On("FindYearForDate", ctx, date).Return(nil, apperrors.ErrNotFound).Once()

	err := service.IsOpenFor(ctx, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (suite *FiscalServiceTestSuite) TestCreatePeriod_MustLieInsideYear() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	year := suite.openYear
	req := dto.CreateFiscalPeriodRequest{Name: "Spillover", StartDate: "2026-12-01", EndDate: "2027-01-31"}

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()

	_, err := service.CreatePeriod(ctx, year.YearID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalServiceTestSuite) TestCreatePeriod_OverlapRejected() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	year := suite.openYear
	existing := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		YearID:    year.YearID,
		Name:      "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.YearOpen,
	}
	req := dto.CreateFiscalPeriodRequest{Name: "Q1", StartDate: "2026-01-01", EndDate: "2026-03-31"}

	suite.mockFiscalRepo.On("FindYearByID", ctx, year.YearID).Return(&year, nil).Once()
	suite.mockFiscalRepo.On("ListPeriodsByYear", ctx, year.YearID).Return([]domain.FiscalPeriod{existing}, nil).Once()

	_, err := service.CreatePeriod(ctx, year.YearID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	service := services.NewFiscalService(suite.mockFiscalRepo, suite.mockUsageRepo, false)
	period := domain.FiscalPeriod{PeriodID: uuid.NewString(), Name: "2026-03", Status: domain.YearClosed}

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Once()

	_, err := service.ClosePeriod(ctx, period.PeriodID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestFiscalService(t *testing.T) {
	suite.Run(t, new(FiscalServiceTestSuite))
}
