package pgsql

import (
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		PeriodRepo:  periodRepo,
		EntryRepo:   entryRepo,
		InvoiceRepo: invoiceRepo,
		LedgerRepo:  ledgerRepo,
		UserRepo:    userRepo,
	}
}
