package repositories

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// ReportingRepository defines the grouped queries behind a payroll summary
type ReportingRepository interface {
	// SummarizeTaxes groups a run's collectors by contribution and ledger account.
	SummarizeTaxes(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error)

	// SummarizeAdditions groups a run's additions by item name and ledger account.
	SummarizeAdditions(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error)

	// SummarizeDeductions groups a run's deductions by credit item and ledger account.
	SummarizeDeductions(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error)
}
