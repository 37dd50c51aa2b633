package services

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/dto"
)

// ExchangeRateSvcFacade defines operations for managing exchange rates
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate records a new rate between two currencies.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// GetExchangeRate retrieves the latest rate for a pair, inverting the opposite
	// quote when only that one is stored.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}

// TaxSvcFacade defines operations for managing tax revisions and contributions
type TaxSvcFacade interface {
	CreateRevision(ctx context.Context, req dto.CreateTaxRevisionRequest, creatorUserID string) (*domain.TaxRevision, error)
	CreateContribution(ctx context.Context, req dto.CreateTaxContributionRequest, creatorUserID string) (*domain.TaxContribution, error)

	// OptIn subscribes an employee to a non-mandatory contribution.
	OptIn(ctx context.Context, contributionID string, req dto.OptInRequest) (*domain.EmployeeTaxOptIn, error)
}

// CreditSvcFacade defines operations for managing employee credits
type CreditSvcFacade interface {
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest, creatorUserID string) (*domain.Credit, error)
	AddPlan(ctx context.Context, creditID string, req dto.CreatePaymentPlanRequest, creatorUserID string) (*domain.PaymentPlan, error)

	// GetCredit retrieves a credit with its plans and the balance left to recover.
	GetCredit(ctx context.Context, creditID string) (*dto.CreditResponse, error)
}

// EmployeeSvcFacade defines operations for managing employees and their positions
type EmployeeSvcFacade interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)
	AddPosition(ctx context.Context, employeeID string, req dto.CreatePositionRequest, creatorUserID string) (*domain.EmployeePosition, error)
	AddBankAccount(ctx context.Context, employeeID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)
	AddTimeSheetEntry(ctx context.Context, employeeID string, req dto.CreateTimeSheetEntryRequest) (*domain.TimeSheetEntry, error)
}
