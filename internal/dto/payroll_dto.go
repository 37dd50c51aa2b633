package dto

import (
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RunExchangeRateRequest is the rate a run converts foreign incomes and taxes with.
type RunExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective"`
}

// CreatePayrollRequest defines the structure for opening a new payroll run.
type CreatePayrollRequest struct {
	Number           string                  `json:"number" binding:"required,max=64"`
	FundingAccountID string                  `json:"fundingAccountID" binding:"required"`
	PayPeriod        string                  `json:"payPeriod" binding:"required,oneof=HOURLY DAILY WEEKLY BI_WEEKLY MONTHLY QUARTERLY ANNUALLY"`
	PayDate          time.Time               `json:"payDate" binding:"required"`
	CurrencyCode     string                  `json:"currencyCode" binding:"required,len=3,uppercase"`
	TaxRevisionID    string                  `json:"taxRevisionID,omitempty"`
	Fraction         *decimal.Decimal        `json:"fraction,omitempty"`
	ExchangeRate     *RunExchangeRateRequest `json:"exchangeRate,omitempty"`
}

// PayrollResponse defines the data returned for a payroll run.
type PayrollResponse struct {
	PayrollID        string                `json:"payrollID"`
	Number           string                `json:"number"`
	FundingAccountID string                `json:"fundingAccountID"`
	PayPeriod        string                `json:"payPeriod"`
	PayDate          time.Time             `json:"payDate"`
	CurrencyCode     string                `json:"currencyCode"`
	TaxRevisionID    string                `json:"taxRevisionID,omitempty"`
	Fraction         *decimal.Decimal      `json:"fraction,omitempty"`
	ExchangeRate     *ExchangeRateResponse `json:"exchangeRate,omitempty"`
	Status           string                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	LastUpdatedAt    time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy    string                `json:"lastUpdatedBy"`
}

// ToPayrollResponse converts a domain.PayrollRun to PayrollResponse DTO.
func ToPayrollResponse(run *domain.PayrollRun) PayrollResponse {
	resp := PayrollResponse{
		PayrollID:        run.PayrollID,
		Number:           run.Number,
		FundingAccountID: run.FundingAccountID,
		PayPeriod:        run.PayPeriod.String(),
		PayDate:          run.PayDate,
		CurrencyCode:     run.Currency,
		TaxRevisionID:    run.TaxRevisionID,
		Fraction:         run.Fraction,
		Status:           string(run.Status),
		CreatedAt:        run.CreatedAt,
		CreatedBy:        run.CreatedBy,
		LastUpdatedAt:    run.LastUpdatedAt,
		LastUpdatedBy:    run.LastUpdatedBy,
	}
	if run.ExchangeRate != nil {
		rate := ToExchangeRateResponse(run.ExchangeRate)
		resp.ExchangeRate = &rate
	}
	return resp
}

// ListPayrollsParams holds parameters for listing payroll runs.
type ListPayrollsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListPayrollsResponse defines the structure for a paginated list of runs.
type ListPayrollsResponse struct {
	Payrolls  []PayrollResponse `json:"payrolls"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// AddLineRequest adds an employee position to a run. HoursWorked is only read for
// PER_RATE positions; when it is absent the timesheets of the pay period are summed.
type AddLineRequest struct {
	PositionID  string           `json:"positionID" binding:"required"`
	HoursWorked *decimal.Decimal `json:"hoursWorked,omitempty"`
}

// PayrollLineResponse defines the data returned for a line. Every amount is in CurrencyCode.
type PayrollLineResponse struct {
	LineID        string           `json:"lineID"`
	PayrollID     string           `json:"payrollID"`
	EmployeeID    string           `json:"employeeID"`
	PositionID    string           `json:"positionID"`
	HoursWorked   *decimal.Decimal `json:"hoursWorked,omitempty"`
	CurrencyCode  string           `json:"currencyCode"`
	Earnings      decimal.Decimal  `json:"earnings"`
	ExtraIncome   decimal.Decimal  `json:"extraIncome"`
	GrossIncome   decimal.Decimal  `json:"grossIncome"`
	IncomeTax     decimal.Decimal  `json:"incomeTax"`
	EmployerTax   decimal.Decimal  `json:"employerTax"`
	Deductions    decimal.Decimal  `json:"deductions"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
	NeedsReview   bool             `json:"needsReview"`
	ReviewReason  string           `json:"reviewReason,omitempty"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToPayrollLineResponse converts a domain.PayrollLine to PayrollLineResponse DTO.
func ToPayrollLineResponse(line *domain.PayrollLine) PayrollLineResponse {
	return PayrollLineResponse{
		LineID:        line.LineID,
		PayrollID:     line.PayrollID,
		EmployeeID:    line.EmployeeID,
		PositionID:    line.PositionID,
		HoursWorked:   line.HoursWorked,
		CurrencyCode:  line.GrossIncome.Currency,
		Earnings:      line.Earnings.Amount,
		ExtraIncome:   line.ExtraIncome.Amount,
		GrossIncome:   line.GrossIncome.Amount,
		IncomeTax:     line.IncomeTax.Amount,
		EmployerTax:   line.EmployerTax.Amount,
		Deductions:    line.Deductions.Amount,
		NetIncome:     line.NetIncome.Amount,
		NeedsReview:   line.NeedsReview,
		ReviewReason:  line.ReviewReason,
		LastUpdatedAt: line.LastUpdatedAt,
		LastUpdatedBy: line.LastUpdatedBy,
	}
}

// ToPayrollLineResponses converts a slice of domain.PayrollLine to []PayrollLineResponse.
func ToPayrollLineResponses(lines []domain.PayrollLine) []PayrollLineResponse {
	responses := make([]PayrollLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToPayrollLineResponse(&lines[i])
	}
	return responses
}

// AdditionRequest attaches extra income to a line. CurrencyCode defaults to the run's currency.
type AdditionRequest struct {
	ItemName     string          `json:"itemName" binding:"required"`
	AccountID    string          `json:"accountID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
}

// ManualInstallmentRequest keys in the installment a plan recovers on this line,
// in place of the computed one.
type ManualInstallmentRequest struct {
	PlanID string          `json:"planID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LineAdjustmentsRequest is a batch of edits applied to one line before it is recomputed.
type LineAdjustmentsRequest struct {
	AddAdditions       []AdditionRequest          `json:"addAdditions,omitempty" binding:"omitempty,dive"`
	RemoveAdditions    []string                   `json:"removeAdditions,omitempty"`
	AddInstallments    []ManualInstallmentRequest `json:"addInstallments,omitempty" binding:"omitempty,dive"`
	RemoveInstallments []string                   `json:"removeInstallments,omitempty"`
}

// IsEmpty reports whether the batch carries no edit at all.
func (r LineAdjustmentsRequest) IsEmpty() bool {
	return len(r.AddAdditions) == 0 && len(r.RemoveAdditions) == 0 &&
		len(r.AddInstallments) == 0 && len(r.RemoveInstallments) == 0
}

// TransitionRequest moves a run to Status. Async schedules the move on the job queue.
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=REVIEW CLOSED APPROVED PAID"`
	Async  bool   `json:"async"`
}

// TransitionResponse reports the outcome of a synchronous transition.
type TransitionResponse struct {
	PayrollID      string   `json:"payrollID"`
	PreviousStatus string   `json:"previousStatus"`
	Status         string   `json:"status"`
	AlreadyApplied bool     `json:"alreadyApplied,omitempty"`
	JournalID      string   `json:"journalID,omitempty"`
	FlaggedLines   []string `json:"flaggedLines,omitempty"`
}

// TransitionAcceptedResponse is returned when a transition was queued.
type TransitionAcceptedResponse struct {
	TaskID    string `json:"taskID"`
	PayrollID string `json:"payrollID"`
	Status    string `json:"status"`
}
