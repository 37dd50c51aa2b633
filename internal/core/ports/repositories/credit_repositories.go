package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// CreditReader defines read operations for credits and their plans
type CreditReader interface {
	// FindCreditByID retrieves a specific credit.
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// ListPlansByCredit retrieves the plans of a credit.
	ListPlansByCredit(ctx context.Context, creditID string) ([]domain.PaymentPlan, error)

	// ListCreditPlansByEmployees retrieves every plan of the employees' open credits,
	// ordered by credit ID then plan ID.
	ListCreditPlansByEmployees(ctx context.Context, employeeIDs []string) ([]domain.CreditPlan, error)
}

// CreditWriter defines write operations for credits and their plans
type CreditWriter interface {
	SaveCredit(ctx context.Context, credit domain.Credit) error
	SavePlan(ctx context.Context, plan domain.PaymentPlan) error

	// LockEmployeeCredits holds a row lock on every open credit of the employees until the
	// transaction ends. Runs of the same employees then read payment history one at a time.
	LockEmployeeCredits(ctx context.Context, employeeIDs []string) error

	// MarkCreditsCompleted flags credits as fully recovered and completes their plans.
	MarkCreditsCompleted(ctx context.Context, creditIDs []string, userID string, at time.Time) error

	// UpdatePlanStatuses sets status on every listed plan.
	UpdatePlanStatuses(ctx context.Context, planIDs []string, status domain.PlanStatus, userID string, at time.Time) error
}

// CreditRepositoryFacade combines all credit repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
}
