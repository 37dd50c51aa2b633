package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRun is a row of the payroll_runs table. The run's exchange rate is referenced by
// ID and loaded with a join.
type PayrollRun struct {
	PayrollID        string           `db:"payroll_id"`
	Number           string           `db:"number"`
	FundingAccountID string           `db:"funding_account_id"`
	PayPeriod        string           `db:"pay_period"`
	PayDate          time.Time        `db:"pay_date"`
	CurrencyCode     string           `db:"currency_code"`
	TaxRevisionID    *string          `db:"tax_revision_id"`
	Fraction         *decimal.Decimal `db:"fraction"`
	ExchangeRateID   *string          `db:"exchange_rate_id"`
	Status           string           `db:"status"`
	AuditFields
}

// PayrollLine is a row of the payroll_lines table. Every figure is in CurrencyCode.
type PayrollLine struct {
	LineID       string           `db:"line_id"`
	PayrollID    string           `db:"payroll_id"`
	EmployeeID   string           `db:"employee_id"`
	PositionID   string           `db:"position_id"`
	HoursWorked  *decimal.Decimal `db:"hours_worked"`
	CurrencyCode string           `db:"currency_code"`
	Earnings     decimal.Decimal  `db:"earnings"`
	ExtraIncome  decimal.Decimal  `db:"extra_income"`
	GrossIncome  decimal.Decimal  `db:"gross_income"`
	IncomeTax    decimal.Decimal  `db:"income_tax"`
	EmployerTax  decimal.Decimal  `db:"employer_tax"`
	Deductions   decimal.Decimal  `db:"deductions"`
	NetIncome    decimal.Decimal  `db:"net_income"`
	NeedsReview  bool             `db:"needs_review"`
	ReviewReason *string          `db:"review_reason"`
	AuditFields
}

// Addition is a row of the payroll_additions table.
type Addition struct {
	AdditionID   string          `db:"addition_id"`
	PayrollID    string          `db:"payroll_id"`
	LineID       string          `db:"line_id"`
	ItemName     string          `db:"item_name"`
	AccountID    string          `db:"account_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	AuditFields
}

// TaxCollector is a row of the tax_collectors table.
type TaxCollector struct {
	CollectorID    string          `db:"collector_id"`
	PayrollID      string          `db:"payroll_id"`
	LineID         string          `db:"line_id"`
	ContributionID string          `db:"contribution_id"`
	PayBy          string          `db:"pay_by"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
}

// PayrollDeduction is a row of the payroll_deductions table.
type PayrollDeduction struct {
	DeductionID  string          `db:"deduction_id"`
	PayrollID    string          `db:"payroll_id"`
	LineID       string          `db:"line_id"`
	PlanID       string          `db:"plan_id"`
	CreditID     string          `db:"credit_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	Manual       bool            `db:"manual"`
	RecordedAt   time.Time       `db:"recorded_at"`
}
