package domain

// SummaryGroup is a (name, account) bucket with a row count and total.
type SummaryGroup struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	AccountID string `json:"accountID"`
	Count     int    `json:"count"`
	Total     Money  `json:"total"`
}

// PayrollTotals aggregates every line of a run.
type PayrollTotals struct {
	Lines       int   `json:"lines"`
	Earnings    Money `json:"earnings"`
	ExtraIncome Money `json:"extraIncome"`
	GrossIncome Money `json:"grossIncome"`
	IncomeTax   Money `json:"incomeTax"`
	EmployerTax Money `json:"employerTax"`
	Deductions  Money `json:"deductions"`
	NetIncome   Money `json:"netIncome"`
}

// PayrollSummary is the grouped report of a run.
type PayrollSummary struct {
	PayrollID  string         `json:"payrollID"`
	Status     PayrollStatus  `json:"status"`
	Totals     PayrollTotals  `json:"totals"`
	Taxes      []SummaryGroup `json:"taxes"`
	Additions  []SummaryGroup `json:"additions"`
	Deductions []SummaryGroup `json:"deductions"`
	Flagged    []string       `json:"flaggedLines,omitempty"`
}
