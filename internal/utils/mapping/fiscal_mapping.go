package mapping

import (
	"github.com/fincore-app/fincore/internal/core/domain"
	"github.com/fincore-app/fincore/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		YearID:      d.YearID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		YearID:      m.YearID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.YearStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		YearID:      d.YearID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		YearID:      m.YearID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.YearStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
