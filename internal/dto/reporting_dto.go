package dto

import (
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryGroupResponse represents one (name, account) bucket of a payroll summary
type SummaryGroupResponse struct {
	Key          string          `json:"key"`
	Name         string          `json:"name"`
	AccountID    string          `json:"accountID"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	CurrencyCode string          `json:"currencyCode"`
}

// PayrollTotalsResponse represents the line totals of a run
type PayrollTotalsResponse struct {
	Lines       int             `json:"lines"`
	Earnings    decimal.Decimal `json:"earnings"`
	ExtraIncome decimal.Decimal `json:"extraIncome"`
	GrossIncome decimal.Decimal `json:"grossIncome"`
	IncomeTax   decimal.Decimal `json:"incomeTax"`
	EmployerTax decimal.Decimal `json:"employerTax"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetIncome   decimal.Decimal `json:"netIncome"`
}

// PayrollSummaryResponse represents the payroll summary report response
type PayrollSummaryResponse struct {
	PayrollID    string                 `json:"payrollID"`
	Status       string                 `json:"status"`
	CurrencyCode string                 `json:"currencyCode"`
	Totals       PayrollTotalsResponse  `json:"totals"`
	Taxes        []SummaryGroupResponse `json:"taxes"`
	Additions    []SummaryGroupResponse `json:"additions"`
	Deductions   []SummaryGroupResponse `json:"deductions"`
	FlaggedLines []string               `json:"flaggedLines,omitempty"`
}

func toSummaryGroupResponses(groups []domain.SummaryGroup) []SummaryGroupResponse {
	out := make([]SummaryGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = SummaryGroupResponse{
			Key:          g.Key,
			Name:         g.Name,
			AccountID:    g.AccountID,
			Count:        g.Count,
			Total:        g.Total.Amount,
			CurrencyCode: g.Total.Currency,
		}
	}
	return out
}

// ToPayrollSummaryResponse converts a domain payroll summary to a DTO response
func ToPayrollSummaryResponse(summary *domain.PayrollSummary) PayrollSummaryResponse {
	t := summary.Totals
	return PayrollSummaryResponse{
		PayrollID:    summary.PayrollID,
		Status:       string(summary.Status),
		CurrencyCode: t.GrossIncome.Currency,
		Totals: PayrollTotalsResponse{
			Lines:       t.Lines,
			Earnings:    t.Earnings.Amount,
			ExtraIncome: t.ExtraIncome.Amount,
			GrossIncome: t.GrossIncome.Amount,
			IncomeTax:   t.IncomeTax.Amount,
			EmployerTax: t.EmployerTax.Amount,
			Deductions:  t.Deductions.Amount,
			NetIncome:   t.NetIncome.Amount,
		},
		Taxes:        toSummaryGroupResponses(summary.Taxes),
		Additions:    toSummaryGroupResponses(summary.Additions),
		Deductions:   toSummaryGroupResponses(summary.Deductions),
		FlaggedLines: summary.Flagged,
	}
}
