package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories. The journal
// repository also serves as the account usage reader since line usage
// lives in its tables.
func NewRepositoryProvider(dbPool *pgxpool.Pool, entryNumberPrefix string) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, entryNumberPrefix)
	fiscalRepo := newPgxFiscalRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		FiscalRepo:    fiscalRepo,
		ReportingRepo: reportingRepo,
		UsageRepo:     journalRepo,
	}
}
