package services

import (
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Accounts come first since both the journal engine and reporting
	// read through the account service.
	container.Account = NewAccountService(repos.AccountRepo, repos.UsageRepo)
	container.Fiscal = NewFiscalService(repos.FiscalRepo, repos.UsageRepo, cfg.AllowForcedYearClose)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Fiscal, cfg.DefaultCurrency)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Account, cfg.DefaultCurrency, cfg.BalanceCurrencyMixing)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.FiscalCalendarSvc = (*fiscalService)(nil)
	_ portssvc.JournalSvcFacade  = (*journalService)(nil)
	_ portssvc.ReportingSvc      = (*reportingService)(nil)
)
