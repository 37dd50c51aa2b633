package pgsql

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummarizeTaxes groups a run's collectors by contribution.
func (s *Store) SummarizeTaxes(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error) {
	return s.summarize(ctx, "tax summary", `
		SELECT t.contribution_id, t.name, t.account_id, c.currency_code, COUNT(*), SUM(c.amount)
		FROM tax_collectors c
		JOIN tax_contributions t ON t.contribution_id = c.contribution_id
		WHERE c.payroll_id = $1
		GROUP BY t.contribution_id, t.name, t.account_id, c.currency_code
		ORDER BY t.name, t.contribution_id`, payrollID)
}

// SummarizeAdditions groups a run's additions by item and account.
func (s *Store) SummarizeAdditions(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error) {
	return s.summarize(ctx, "addition summary", `
		SELECT item_name, item_name, account_id, currency_code, COUNT(*), SUM(amount)
		FROM payroll_additions
		WHERE payroll_id = $1
		GROUP BY item_name, account_id, currency_code
		ORDER BY item_name, account_id`, payrollID)
}

// SummarizeDeductions groups a run's installments by credit item and account.
func (s *Store) SummarizeDeductions(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error) {
	return s.summarize(ctx, "deduction summary", `
		SELECT c.item, c.item, c.account_id, d.currency_code, COUNT(*), SUM(d.amount)
		FROM payroll_deductions d
		JOIN credits c ON c.credit_id = d.credit_id
		WHERE d.payroll_id = $1
		GROUP BY c.item, c.account_id, d.currency_code
		ORDER BY c.item, c.account_id`, payrollID)
}

func (s *Store) summarize(ctx context.Context, what, query, payrollID string) ([]domain.SummaryGroup, error) {
	rows, err := s.db.Query(ctx, query, payrollID)
	if err != nil {
		return nil, storeError(err, what)
	}
	defer rows.Close()

	var result []domain.SummaryGroup
	for rows.Next() {
		var g domain.SummaryGroup
		var currency string
		var total decimal.Decimal
		if err := rows.Scan(&g.Key, &g.Name, &g.AccountID, &currency, &g.Count, &total); err != nil {
			return nil, storeError(err, what)
		}
		g.Total = domain.NewMoney(total, currency)
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, what)
	}
	return result, nil
}
