package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Payroll      PayrollSvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Tax          TaxSvcFacade
	Credit       CreditSvcFacade
	Employee     EmployeeSvcFacade
	Reporting    ReportingService
	Payslip      PayslipService

	// Scheduler is nil when no job queue is configured; async transitions are then rejected.
	Scheduler TransitionScheduler
}
