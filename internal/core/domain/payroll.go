package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PayrollStatus is the linear state machine of a payroll run.
type PayrollStatus string

const (
	PayrollCreated  PayrollStatus = "CREATED"
	PayrollReview   PayrollStatus = "REVIEW"
	PayrollClosed   PayrollStatus = "CLOSED"
	PayrollApproved PayrollStatus = "APPROVED"
	PayrollPaid     PayrollStatus = "PAID"
)

var payrollStatusOrder = []PayrollStatus{PayrollCreated, PayrollReview, PayrollClosed, PayrollApproved, PayrollPaid}

// Rank is the position of s in the state machine, or -1 if unknown.
func (s PayrollStatus) Rank() int {
	for i, st := range payrollStatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following state. The second result is false for PAID and unknown states.
func (s PayrollStatus) Next() (PayrollStatus, bool) {
	r := s.Rank()
	if r < 0 || r == len(payrollStatusOrder)-1 {
		return "", false
	}
	return payrollStatusOrder[r+1], true
}

// CanTransitionTo allows only the single next step.
func (s PayrollStatus) CanTransitionTo(target PayrollStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// IsEditable reports whether lines can still be added or adjusted.
func (s PayrollStatus) IsEditable() bool {
	r := s.Rank()
	return r >= 0 && r <= PayrollReview.Rank()
}

// ParsePayrollStatus validates a status name.
func ParsePayrollStatus(s string) (PayrollStatus, error) {
	st := PayrollStatus(s)
	if st.Rank() < 0 {
		return "", fmt.Errorf("%w: unknown payroll status %q", apperrors.ErrValidation, s)
	}
	return st, nil
}

// PayrollRun is one pay cycle for a set of employees.
type PayrollRun struct {
	PayrollID        string           `json:"payrollID"`
	Number           string           `json:"number"`
	FundingAccountID string           `json:"fundingAccountID"`
	PayPeriod        PayPeriod        `json:"payPeriod"`
	PayDate          time.Time        `json:"payDate"`
	Currency         string           `json:"currency"`
	TaxRevisionID    string           `json:"taxRevisionID"`
	Fraction         *decimal.Decimal `json:"fraction,omitempty"`
	ExchangeRate     *ExchangeRate    `json:"exchangeRate,omitempty"`
	Status           PayrollStatus    `json:"status"`
	AuditFields
}

// Validate checks run level invariants.
func (r PayrollRun) Validate() error {
	if r.FundingAccountID == "" {
		return fmt.Errorf("%w: funding account is required", apperrors.ErrValidation)
	}
	if !r.PayPeriod.Valid() {
		return fmt.Errorf("%w: invalid pay period", apperrors.ErrValidation)
	}
	if r.Currency == "" {
		return fmt.Errorf("%w: currency is required", apperrors.ErrValidation)
	}
	if r.Fraction != nil && (!r.Fraction.IsPositive() || r.Fraction.GreaterThan(decimal.NewFromInt(1))) {
		return fmt.Errorf("%w: fraction must be in (0, 1]", apperrors.ErrValidation)
	}
	if r.ExchangeRate != nil {
		if err := r.ExchangeRate.Validate(); err != nil {
			return err
		}
		if r.ExchangeRate.Foreign.Currency != r.Currency && r.ExchangeRate.Local.Currency != r.Currency {
			return fmt.Errorf("%w: run exchange rate must involve %s", apperrors.ErrValidation, r.Currency)
		}
	}
	return nil
}

// PayrollLine is one employee position on a run. The monetary fields are computed and
// always expressed in the run's currency and period.
type PayrollLine struct {
	LineID       string           `json:"lineID"`
	PayrollID    string           `json:"payrollID"`
	EmployeeID   string           `json:"employeeID"`
	PositionID   string           `json:"positionID"`
	HoursWorked  *decimal.Decimal `json:"hoursWorked,omitempty"`
	Earnings     Money            `json:"earnings"`
	ExtraIncome  Money            `json:"extraIncome"`
	GrossIncome  Money            `json:"grossIncome"`
	IncomeTax    Money            `json:"incomeTax"`
	EmployerTax  Money            `json:"employerTax"`
	Deductions   Money            `json:"deductions"`
	NetIncome    Money            `json:"netIncome"`
	NeedsReview  bool             `json:"needsReview"`
	ReviewReason string           `json:"reviewReason,omitempty"`
	AuditFields
}

// Addition is an ad hoc extra income attached to a line.
type Addition struct {
	AdditionID string `json:"additionID"`
	PayrollID  string `json:"payrollID"`
	LineID     string `json:"lineID"`
	ItemName   string `json:"itemName"`
	AccountID  string `json:"accountID"`
	Amount     Money  `json:"amount"`
	AuditFields
}

// TaxContributionCollector records the amount assessed for one contribution on one line.
type TaxContributionCollector struct {
	CollectorID    string `json:"collectorID"`
	PayrollID      string `json:"payrollID"`
	LineID         string `json:"lineID"`
	ContributionID string `json:"contributionID"`
	PayBy          PayBy  `json:"payBy"`
	Amount         Money  `json:"amount"`
}

// PayrollDeduction records an installment against a credit plan. These rows are the
// payment history a credit balance is derived from. Manual rows are keyed in by an
// operator and survive recomputation.
type PayrollDeduction struct {
	DeductionID string    `json:"deductionID"`
	PayrollID   string    `json:"payrollID"`
	LineID      string    `json:"lineID"`
	PlanID      string    `json:"planID"`
	CreditID    string    `json:"creditID"`
	Amount      Money     `json:"amount"`
	Manual      bool      `json:"manual"`
	RecordedAt  time.Time `json:"recordedAt"`
}
