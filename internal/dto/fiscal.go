package dto

import (
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// CreateFiscalYearRequest is the body for POST /fiscal-years.
type CreateFiscalYearRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// CloseFiscalYearRequest is the optional body for POST /fiscal-years/{id}/close.
type CloseFiscalYearRequest struct {
	Force bool `json:"force,omitempty"`
}

// CreateFiscalPeriodRequest is the body for POST /fiscal-years/{id}/periods.
type CreateFiscalPeriodRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// FiscalYearResponse is the wire shape of a fiscal year.
type FiscalYearResponse struct {
	YearID        string    `json:"year_id"`
	Name          string    `json:"name"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// FiscalPeriodResponse is the wire shape of a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID      string    `json:"period_id"`
	YearID        string    `json:"year_id"`
	Name          string    `json:"name"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// ToFiscalYearResponse converts a domain fiscal year to its wire shape.
func ToFiscalYearResponse(y *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		YearID:        y.YearID,
		Name:          y.Name,
		StartDate:     FormatDate(y.StartDate),
		EndDate:       FormatDate(y.EndDate),
		Status:        string(y.Status),
		CreatedAt:     y.CreatedAt,
		LastUpdatedAt: y.LastUpdatedAt,
	}
}

// ToFiscalYearResponses converts a slice of domain fiscal years.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	out := make([]FiscalYearResponse, len(years))
	for i := range years {
		out[i] = ToFiscalYearResponse(&years[i])
	}
	return out
}

// ToFiscalPeriodResponse converts a domain fiscal period to its wire shape.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:      p.PeriodID,
		YearID:        p.YearID,
		Name:          p.Name,
		StartDate:     FormatDate(p.StartDate),
		EndDate:       FormatDate(p.EndDate),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToFiscalPeriodResponses converts a slice of domain fiscal periods.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	out := make([]FiscalPeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToFiscalPeriodResponse(&periods[i])
	}
	return out
}
