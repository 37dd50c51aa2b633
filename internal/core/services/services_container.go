package services

import (
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// rates may wrap store with a cache; scheduler may be nil.
func NewServiceContainer(cfg *config.Config, store portsrepo.Store, rates portsrepo.ExchangeRateRepositoryFacade, scheduler portssvc.TransitionScheduler) *portssvc.ServiceContainer {
	if rates == nil {
		rates = store
	}

	converter := domain.NewPeriodConverter(cfg.ConversionFactors)
	runs := payroll.NewRunCalculator(payroll.NewPayrollLineCalculator(converter), cfg.PayrollWorkers)

	return &portssvc.ServiceContainer{
		Payroll:      NewPayrollService(store, runs, payroll.NewPayrollLedgerPoster()),
		ExchangeRate: NewExchangeRateService(rates),
		Tax:          NewTaxService(store),
		Credit:       NewCreditService(store),
		Employee:     NewEmployeeService(store),
		Reporting:    NewReportingService(store),
		Payslip:      NewPayslipService(store),
		Scheduler:    scheduler,
	}
}
