package services

import (
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Period service first since entries and invoices validate against it
	container.Period = NewPeriodService(repos.PeriodRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Entry = NewEntryService(repos.EntryRepo, container.Account, container.Period)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.AccountRepo, container.Period)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)

	return container
}
