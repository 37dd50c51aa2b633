package repositories

// Store holds all repository interfaces needed by services.
// Implementations are the pgsql store and the in-memory store.
type Store interface {
	PayrollRepositoryFacade
	PayrollLineRepositoryFacade
	PayrollAuditRepositoryFacade
	EmployeeRepositoryFacade
	TaxRepositoryFacade
	CreditRepositoryFacade
	ExchangeRateRepositoryFacade
	LedgerRepositoryFacade
	ReportingRepository
	TransactionManager
}
