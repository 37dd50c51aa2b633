package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	store portsrepo.Store
}

// NewReportingService creates a new reporting service
func NewReportingService(store portsrepo.Store) portssvc.ReportingService {
	return &reportingService{store: store}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// PayrollSummary totals the lines of a run and groups its audit rows
func (s *reportingService) PayrollSummary(ctx context.Context, payrollID string) (*domain.PayrollSummary, error) {
	run, err := s.store.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.ListLinesByPayroll(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}

	totals, err := sumLines(run.Currency, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to total payroll lines", slog.String("payroll_id", payrollID))
		return nil, err
	}

	taxes, err := s.store.SummarizeTaxes(ctx, payrollID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize taxes", slog.String("payroll_id", payrollID))
		return nil, fmt.Errorf("failed to summarize taxes: %w", err)
	}
	additions, err := s.store.SummarizeAdditions(ctx, payrollID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize additions", slog.String("payroll_id", payrollID))
		return nil, fmt.Errorf("failed to summarize additions: %w", err)
	}
	deductions, err := s.store.SummarizeDeductions(ctx, payrollID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize deductions", slog.String("payroll_id", payrollID))
		return nil, fmt.Errorf("failed to summarize deductions: %w", err)
	}

	summary := &domain.PayrollSummary{
		PayrollID:  run.PayrollID,
		Status:     run.Status,
		Totals:     totals,
		Taxes:      taxes,
		Additions:  additions,
		Deductions: deductions,
	}
	for _, l := range lines {
		if l.NeedsReview {
			summary.Flagged = append(summary.Flagged, l.LineID)
		}
	}

	s.LogInfo(ctx, "Payroll summary generated",
		slog.String("payroll_id", payrollID),
		slog.Int("lines", totals.Lines),
		slog.Int("tax_groups", len(taxes)),
		slog.Int("flagged", len(summary.Flagged)))
	return summary, nil
}

func sumLines(currency string, lines []domain.PayrollLine) (domain.PayrollTotals, error) {
	zero := domain.ZeroMoney(currency)
	t := domain.PayrollTotals{
		Lines:       len(lines),
		Earnings:    zero,
		ExtraIncome: zero,
		GrossIncome: zero,
		IncomeTax:   zero,
		EmployerTax: zero,
		Deductions:  zero,
		NetIncome:   zero,
	}
	for _, l := range lines {
		fields := []struct {
			total *domain.Money
			value domain.Money
		}{
			{&t.Earnings, l.Earnings},
			{&t.ExtraIncome, l.ExtraIncome},
			{&t.GrossIncome, l.GrossIncome},
			{&t.IncomeTax, l.IncomeTax},
			{&t.EmployerTax, l.EmployerTax},
			{&t.Deductions, l.Deductions},
			{&t.NetIncome, l.NetIncome},
		}
		for _, f := range fields {
			sum, err := f.total.Add(f.value)
			if err != nil {
				return domain.PayrollTotals{}, fmt.Errorf("line %s: %w", l.LineID, err)
			}
			*f.total = sum
		}
	}
	return t, nil
}
