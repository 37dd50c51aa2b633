package dto

import (
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditRequest defines the structure for recording an amount an employee owes.
type CreateCreditRequest struct {
	EmployeeID       string          `json:"employeeID" binding:"required"`
	Item             string          `json:"item" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode     string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	Date             time.Time       `json:"date" binding:"required"`
	PaymentStartDate time.Time       `json:"paymentStartDate" binding:"required"`
	AccountID        string          `json:"accountID" binding:"required"`
}

// CreatePaymentPlanRequest defines the structure for adding an amortization plan to a credit.
type CreatePaymentPlanRequest struct {
	Name       string          `json:"name" binding:"required"`
	DeductFrom string          `json:"deductFrom" binding:"required,oneof=NET GROSS"`
	Percent    decimal.Decimal `json:"percent" binding:"required"`
	Status     string          `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE PAUSED CANCELLED SKIP_NEXT"`
}

// PaymentPlanResponse defines the data returned for a plan.
type PaymentPlanResponse struct {
	PlanID     string          `json:"planID"`
	CreditID   string          `json:"creditID"`
	Name       string          `json:"name"`
	DeductFrom string          `json:"deductFrom"`
	Percent    decimal.Decimal `json:"percent"`
	Status     string          `json:"status"`
}

// ToPaymentPlanResponse converts a domain.PaymentPlan to PaymentPlanResponse DTO.
func ToPaymentPlanResponse(p *domain.PaymentPlan) PaymentPlanResponse {
	return PaymentPlanResponse{
		PlanID:     p.PlanID,
		CreditID:   p.CreditID,
		Name:       p.Name,
		DeductFrom: string(p.DeductFrom),
		Percent:    p.Percent,
		Status:     string(p.Status),
	}
}

// CreditResponse defines the data returned for a credit. Balance is derived from the
// deductions recorded on closed runs.
type CreditResponse struct {
	CreditID         string                `json:"creditID"`
	EmployeeID       string                `json:"employeeID"`
	Item             string                `json:"item"`
	Amount           decimal.Decimal       `json:"amount"`
	CurrencyCode     string                `json:"currencyCode"`
	InterestRate     decimal.Decimal       `json:"interestRate"`
	TotalOwed        decimal.Decimal       `json:"totalOwed"`
	Balance          decimal.Decimal       `json:"balance"`
	Date             time.Time             `json:"date"`
	PaymentStartDate time.Time             `json:"paymentStartDate"`
	AccountID        string                `json:"accountID"`
	Completed        bool                  `json:"completed"`
	Plans            []PaymentPlanResponse `json:"plans"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToCreditResponse converts a domain.Credit with its plans and balance to CreditResponse DTO.
func ToCreditResponse(c *domain.Credit, plans []domain.PaymentPlan, balance domain.Money) CreditResponse {
	resp := CreditResponse{
		CreditID:         c.CreditID,
		EmployeeID:       c.EmployeeID,
		Item:             c.Item,
		Amount:           c.Principal.Amount,
		CurrencyCode:     c.Principal.Currency,
		InterestRate:     c.InterestRate,
		TotalOwed:        c.TotalOwed().Round().Amount,
		Balance:          balance.Round().Amount,
		Date:             c.Date,
		PaymentStartDate: c.PaymentStartDate,
		AccountID:        c.AccountID,
		Completed:        c.Completed,
		Plans:            make([]PaymentPlanResponse, len(plans)),
		CreatedAt:        c.CreatedAt,
		CreatedBy:        c.CreatedBy,
	}
	for i := range plans {
		resp.Plans[i] = ToPaymentPlanResponse(&plans[i])
	}
	return resp
}
