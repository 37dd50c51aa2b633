package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PlanStatus is the state of an amortization plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "ACTIVE"
	PlanPaused    PlanStatus = "PAUSED"
	PlanCancelled PlanStatus = "CANCELLED"
	PlanSkipNext  PlanStatus = "SKIP_NEXT"
	PlanCompleted PlanStatus = "COMPLETED"
)

// AcceptsManual reports whether an operator keyed installment may be taken on the plan.
// PAUSED and SKIP_NEXT only stop the computed installment.
func (s PlanStatus) AcceptsManual() bool {
	switch s {
	case PlanActive, PlanPaused, PlanSkipNext:
		return true
	}
	return false
}

// Credit is an amount owed by an employee and recovered through payroll deductions.
type Credit struct {
	CreditID         string          `json:"creditID"`
	EmployeeID       string          `json:"employeeID"`
	Item             string          `json:"item"`
	Principal        Money           `json:"principal"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	Date             time.Time       `json:"date"`
	PaymentStartDate time.Time       `json:"paymentStartDate"`
	AccountID        string          `json:"accountID"`
	Completed        bool            `json:"completed"`
	AuditFields
}

// Interest is Principal * InterestRate.
func (c Credit) Interest() Money {
	return c.Principal.Mul(c.InterestRate)
}

// TotalOwed is principal plus interest.
func (c Credit) TotalOwed() Money {
	return c.Principal.Mul(decimal.NewFromInt(1).Add(c.InterestRate))
}

// Balance re-derives what remains from every recorded payment. It is never cached.
func (c Credit) Balance(payments []Money) (Money, error) {
	paid, err := SumMoney(c.Principal.Currency, payments...)
	if err != nil {
		return Money{}, err
	}
	return c.TotalOwed().Sub(paid)
}

// Validate checks creation rules relative to now.
func (c Credit) Validate(now time.Time) error {
	if !c.Principal.IsPositive() {
		return fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}
	if c.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}
	today := truncateDay(now)
	if truncateDay(c.Date).After(today) {
		return fmt.Errorf("%w: credit date cannot be in the future", apperrors.ErrValidation)
	}
	if truncateDay(c.PaymentStartDate).Before(today) {
		return fmt.Errorf("%w: payment start date cannot be in the past", apperrors.ErrValidation)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// PaymentPlan recovers Percent of a credit's principal on every run.
type PaymentPlan struct {
	PlanID     string          `json:"planID"`
	CreditID   string          `json:"creditID"`
	Name       string          `json:"name"`
	DeductFrom IncomeType      `json:"deductFrom"`
	Percent    decimal.Decimal `json:"percent"`
	Status     PlanStatus      `json:"status"`
	AuditFields
}

// Validate checks the plan percentage and source income.
func (p PaymentPlan) Validate() error {
	if !p.Percent.IsPositive() || p.Percent.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: plan percent must be in (0, 1]", apperrors.ErrValidation)
	}
	if p.DeductFrom != IncomeNet && p.DeductFrom != IncomeGross {
		return fmt.Errorf("%w: plans deduct from NET or GROSS", apperrors.ErrValidation)
	}
	return nil
}

// CreditPlan pairs a plan with its credit for the calculator.
type CreditPlan struct {
	Credit Credit
	Plan   PaymentPlan
}
