package dto

import (
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest defines the structure for creating an employee.
type CreateEmployeeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string    `json:"employeeID"`
	Name       string    `json:"name"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		CreatedBy:  e.CreatedBy,
	}
}

// IncomeRequest is an amount earned per pay period.
type IncomeRequest struct {
	Period       string          `json:"period" binding:"required,oneof=HOURLY DAILY WEEKLY BI_WEEKLY MONTHLY QUARTERLY ANNUALLY"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// CreatePositionRequest defines the structure for a position an employee is paid from.
// For PER_RATE positions Wage is the pay per hour worked.
type CreatePositionRequest struct {
	Title         string          `json:"title" binding:"required"`
	WageType      string          `json:"wageType" binding:"required,oneof=SALARIED PER_RATE"`
	Wage          IncomeRequest   `json:"wage"`
	OtherEarnings []IncomeRequest `json:"otherEarnings,omitempty" binding:"omitempty,dive"`
	State         string          `json:"state,omitempty" binding:"omitempty,oneof=CURRENT PROMOTED TRANSFER RESIGNED TERMINATED"`
}

// IncomeResponse is an amount per pay period.
type IncomeResponse struct {
	Period       string          `json:"period"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

func toIncomeResponse(i domain.Income) IncomeResponse {
	return IncomeResponse{Period: i.Period.String(), Amount: i.Money.Amount, CurrencyCode: i.Money.Currency}
}

// PositionResponse defines the data returned for a position.
type PositionResponse struct {
	PositionID    string           `json:"positionID"`
	EmployeeID    string           `json:"employeeID"`
	Title         string           `json:"title"`
	WageType      string           `json:"wageType"`
	Wage          IncomeResponse   `json:"wage"`
	OtherEarnings []IncomeResponse `json:"otherEarnings,omitempty"`
	State         string           `json:"state"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
}

// ToPositionResponse converts a domain.EmployeePosition to PositionResponse DTO.
func ToPositionResponse(p *domain.EmployeePosition) PositionResponse {
	resp := PositionResponse{
		PositionID: p.PositionID,
		EmployeeID: p.EmployeeID,
		Title:      p.Title,
		WageType:   string(p.WageType),
		Wage:       toIncomeResponse(p.Negotiated),
		State:      string(p.State),
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
	}
	for _, e := range p.OtherEarnings {
		resp.OtherEarnings = append(resp.OtherEarnings, toIncomeResponse(e))
	}
	return resp
}

// CreateBankAccountRequest defines the structure for linking an employee to a salary account.
type CreateBankAccountRequest struct {
	LedgerAccountID string `json:"ledgerAccountID" binding:"required"`
	AccountNumber   string `json:"accountNumber" binding:"required"`
	Current         bool   `json:"current"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID   string `json:"bankAccountID"`
	EmployeeID      string `json:"employeeID"`
	LedgerAccountID string `json:"ledgerAccountID"`
	AccountNumber   string `json:"accountNumber"`
	Current         bool   `json:"current"`
	Active          bool   `json:"active"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse DTO.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:   a.BankAccountID,
		EmployeeID:      a.EmployeeID,
		LedgerAccountID: a.LedgerAccountID,
		AccountNumber:   a.AccountNumber,
		Current:         a.Current,
		Active:          a.Active,
	}
}

// CreateTimeSheetEntryRequest defines the structure for one clocked shift.
type CreateTimeSheetEntryRequest struct {
	Date       time.Time  `json:"date" binding:"required"`
	ClockIn    time.Time  `json:"clockIn" binding:"required"`
	ClockOut   time.Time  `json:"clockOut" binding:"required"`
	BreakStart *time.Time `json:"breakStart,omitempty"`
	BreakEnd   *time.Time `json:"breakEnd,omitempty"`
}

// TimeSheetEntryResponse defines the data returned for a shift.
type TimeSheetEntryResponse struct {
	EntryID     string          `json:"entryID"`
	EmployeeID  string          `json:"employeeID"`
	Date        time.Time       `json:"date"`
	ClockIn     time.Time       `json:"clockIn"`
	ClockOut    time.Time       `json:"clockOut"`
	BreakStart  *time.Time      `json:"breakStart,omitempty"`
	BreakEnd    *time.Time      `json:"breakEnd,omitempty"`
	WorkedHours decimal.Decimal `json:"workedHours"`
}

// ToTimeSheetEntryResponse converts a domain.TimeSheetEntry to TimeSheetEntryResponse DTO.
func ToTimeSheetEntryResponse(e *domain.TimeSheetEntry) TimeSheetEntryResponse {
	return TimeSheetEntryResponse{
		EntryID:     e.EntryID,
		EmployeeID:  e.EmployeeID,
		Date:        e.Date,
		ClockIn:     e.ClockIn,
		ClockOut:    e.ClockOut,
		BreakStart:  e.BreakStart,
		BreakEnd:    e.BreakEnd,
		WorkedHours: e.WorkedHours(),
	}
}
