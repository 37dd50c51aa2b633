package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit is a row of the credits table.
type Credit struct {
	CreditID         string          `db:"credit_id"`
	EmployeeID       string          `db:"employee_id"`
	Item             string          `db:"item"`
	Principal        decimal.Decimal `db:"principal"`
	CurrencyCode     string          `db:"currency_code"`
	InterestRate     decimal.Decimal `db:"interest_rate"`
	CreditDate       time.Time       `db:"credit_date"`
	PaymentStartDate time.Time       `db:"payment_start_date"`
	AccountID        string          `db:"account_id"`
	IsCompleted      bool            `db:"is_completed"`
	AuditFields
}

// PaymentPlan is a row of the payment_plans table.
type PaymentPlan struct {
	PlanID     string          `db:"plan_id"`
	CreditID   string          `db:"credit_id"`
	Name       string          `db:"name"`
	DeductFrom string          `db:"deduct_from"`
	Percent    decimal.Decimal `db:"percent"`
	Status     string          `db:"status"`
	AuditFields
}
