package services

// ServiceContainer aggregates the service facades handed to the HTTP
// layer at route registration time.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Fiscal    FiscalCalendarSvc
	Journal   JournalSvcFacade
	Reporting ReportingSvc
}
