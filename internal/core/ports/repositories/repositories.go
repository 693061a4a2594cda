package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It is populated once at startup and handed to the service container.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	JournalRepo   JournalRepositoryWithTx
	FiscalRepo    FiscalRepository
	ReportingRepo ReportingRepository
	UsageRepo     AccountUsageReader
}
