package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// WageType says how a position is paid.
type WageType string

const (
	Salaried WageType = "SALARIED"
	PerRate  WageType = "PER_RATE"
)

// PositionState tracks an employee's tenure in a position.
type PositionState string

const (
	PositionCurrent    PositionState = "CURRENT"
	PositionPromoted   PositionState = "PROMOTED"
	PositionTransfer   PositionState = "TRANSFER"
	PositionResigned   PositionState = "RESIGNED"
	PositionTerminated PositionState = "TERMINATED"
)

// MinimumWage is the smallest negotiated salary or rate a position accepts.
var MinimumWage = decimal.NewFromInt(1)

type Employee struct {
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
	AuditFields
}

// EmployeePosition is the employment record payroll lines are computed from.
// For PER_RATE positions Negotiated is the rate per hour worked.
type EmployeePosition struct {
	PositionID    string        `json:"positionID"`
	EmployeeID    string        `json:"employeeID"`
	Title         string        `json:"title"`
	WageType      WageType      `json:"wageType"`
	Negotiated    Income        `json:"negotiated"`
	OtherEarnings []Income      `json:"otherEarnings,omitempty"`
	State         PositionState `json:"state"`
	Active        bool          `json:"active"`
	AuditFields
}

// Validate checks wage type, period and the minimum wage.
func (p EmployeePosition) Validate() error {
	if p.WageType != Salaried && p.WageType != PerRate {
		return fmt.Errorf("%w: wage type must be SALARIED or PER_RATE", apperrors.ErrValidation)
	}
	if !p.Negotiated.Period.Valid() {
		return fmt.Errorf("%w: invalid pay period", apperrors.ErrValidation)
	}
	if p.Negotiated.Money.Amount.LessThan(MinimumWage) {
		return fmt.Errorf("%w: negotiated salary or wage must be at least %s", apperrors.ErrValidation, MinimumWage)
	}
	return nil
}

// IsPayable reports whether the position can be put on a payroll run.
func (p EmployeePosition) IsPayable() bool {
	return p.Active && (p.State == "" || p.State == PositionCurrent)
}

// BankAccount links an employee to the ledger account salaries are paid into.
type BankAccount struct {
	BankAccountID   string `json:"bankAccountID"`
	EmployeeID      string `json:"employeeID"`
	LedgerAccountID string `json:"ledgerAccountID"`
	AccountNumber   string `json:"accountNumber"`
	Current         bool   `json:"current"`
	Active          bool   `json:"active"`
	AuditFields
}

// CurrentBankAccount returns the single current and active account. No match or more
// than one match is ErrAmbiguousBankAccount.
func CurrentBankAccount(accounts []BankAccount) (BankAccount, error) {
	var found []BankAccount
	for _, a := range accounts {
		if a.Current && a.Active {
			found = append(found, a)
		}
	}
	if len(found) != 1 {
		return BankAccount{}, fmt.Errorf("%w: %d current accounts", apperrors.ErrAmbiguousBankAccount, len(found))
	}
	return found[0], nil
}

// TimeSheetEntry is one clocked shift.
type TimeSheetEntry struct {
	EntryID    string     `json:"entryID"`
	EmployeeID string     `json:"employeeID"`
	Date       time.Time  `json:"date"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   time.Time  `json:"clockOut"`
	BreakStart *time.Time `json:"breakStart,omitempty"`
	BreakEnd   *time.Time `json:"breakEnd,omitempty"`
}

// Validate enforces ordered clock and break times.
func (e TimeSheetEntry) Validate() error {
	if !e.ClockOut.After(e.ClockIn) {
		return fmt.Errorf("%w: clock out must be after clock in", apperrors.ErrValidation)
	}
	if (e.BreakStart == nil) != (e.BreakEnd == nil) {
		return fmt.Errorf("%w: break needs both start and end", apperrors.ErrValidation)
	}
	if e.BreakStart != nil {
		if e.BreakStart.Before(e.ClockIn) || e.BreakEnd.After(e.ClockOut) || !e.BreakEnd.After(*e.BreakStart) {
			return fmt.Errorf("%w: break must fall inside the shift", apperrors.ErrValidation)
		}
	}
	return nil
}

// WorkedHours is the shift length less the break.
func (e TimeSheetEntry) WorkedHours() decimal.Decimal {
	worked := e.ClockOut.Sub(e.ClockIn)
	if e.BreakStart != nil && e.BreakEnd != nil {
		worked -= e.BreakEnd.Sub(*e.BreakStart)
	}
	return decimal.NewFromFloat(worked.Hours())
}

// SumWorkedHours totals the hours of entries.
func SumWorkedHours(entries []TimeSheetEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.WorkedHours())
	}
	return total
}
