package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a row of the employees table.
type Employee struct {
	EmployeeID string `db:"employee_id"`
	Name       string `db:"name"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// EmployeePosition is a row of the employee_positions table. Other recurring earnings
// are stored as JSON.
type EmployeePosition struct {
	PositionID    string          `db:"position_id"`
	EmployeeID    string          `db:"employee_id"`
	Title         string          `db:"title"`
	WageType      string          `db:"wage_type"`
	WagePeriod    string          `db:"wage_period"`
	WageAmount    decimal.Decimal `db:"wage_amount"`
	WageCurrency  string          `db:"wage_currency_code"`
	OtherEarnings []byte          `db:"other_earnings"`
	State         string          `db:"state"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

// BankAccount is a row of the bank_accounts table.
type BankAccount struct {
	BankAccountID   string `db:"bank_account_id"`
	EmployeeID      string `db:"employee_id"`
	LedgerAccountID string `db:"ledger_account_id"`
	AccountNumber   string `db:"account_number"`
	IsCurrent       bool   `db:"is_current"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}

// TimeSheetEntry is a row of the timesheet_entries table.
type TimeSheetEntry struct {
	EntryID    string     `db:"entry_id"`
	EmployeeID string     `db:"employee_id"`
	EntryDate  time.Time  `db:"entry_date"`
	ClockIn    time.Time  `db:"clock_in"`
	ClockOut   time.Time  `db:"clock_out"`
	BreakStart *time.Time `db:"break_start"` // Nullable
	BreakEnd   *time.Time `db:"break_end"`   // Nullable
}
