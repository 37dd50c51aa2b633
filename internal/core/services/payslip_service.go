package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/jung-kurt/gofpdf"
)

// payslipService implements the PayslipService interface
type payslipService struct {
	BaseService
	store portsrepo.Store
}

// NewPayslipService creates a new payslip renderer.
func NewPayslipService(store portsrepo.Store) portssvc.PayslipService {
	return &payslipService{store: store}
}

var _ portssvc.PayslipService = (*payslipService)(nil)

type payslipRow struct {
	label  string
	amount domain.Money
}

// RenderPayslip writes the payslip of a line. Per-tax and per-credit rows are listed once
// the run is CLOSED; before that only the line totals are known.
func (s *payslipService) RenderPayslip(ctx context.Context, payrollID, lineID string, w io.Writer) error {
	run, err := s.store.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return err
	}
	line, err := s.store.FindLineByID(ctx, payrollID, lineID)
	if err != nil {
		return err
	}
	employee, err := s.store.FindEmployeeByID(ctx, line.EmployeeID)
	if err != nil {
		return err
	}
	position, err := s.store.FindPositionByID(ctx, line.PositionID)
	if err != nil {
		return err
	}

	additions, err := s.store.ListAdditionsByPayroll(ctx, payrollID)
	if err != nil {
		return fmt.Errorf("failed to list additions: %w", err)
	}
	var extras []payslipRow
	for _, a := range additions {
		if a.LineID == lineID {
			extras = append(extras, payslipRow{label: a.ItemName, amount: a.Amount})
		}
	}

	taxes, err := s.taxRows(ctx, payrollID, lineID)
	if err != nil {
		return err
	}
	deductions, err := s.deductionRows(ctx, payrollID, lineID)
	if err != nil {
		return err
	}

	start := run.PayPeriod.WindowStart(run.PayDate)
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employee.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", position.Title))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Payroll: %s (%s)", run.Number, run.Status))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", start.Format("2006-01-02"), run.PayDate.Format("2006-01-02")))
	pdf.Ln(10)
	if line.HoursWorked != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Hours worked: %s", line.HoursWorked.StringFixed(domain.MonetaryScale)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Earnings: %s", line.Earnings))
	pdf.Ln(7)
	for _, r := range extras {
		pdf.Cell(0, 8, fmt.Sprintf("  %s: %s", r.label, r.amount))
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", line.GrossIncome))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Income tax: %s", line.IncomeTax))
	pdf.Ln(7)
	for _, r := range taxes {
		pdf.Cell(0, 8, fmt.Sprintf("  %s: %s", r.label, r.amount))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", line.Deductions))
	pdf.Ln(7)
	for _, r := range deductions {
		pdf.Cell(0, 8, fmt.Sprintf("  %s: %s", r.label, r.amount))
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", line.NetIncome))

	if err := pdf.Output(w); err != nil {
		s.LogError(ctx, err, "Failed to render payslip",
			slog.String("payroll_id", payrollID),
			slog.String("line_id", lineID))
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	s.LogDebug(ctx, "Payslip rendered", slog.String("payroll_id", payrollID), slog.String("line_id", lineID))
	return nil
}

func (s *payslipService) taxRows(ctx context.Context, payrollID, lineID string) ([]payslipRow, error) {
	collectors, err := s.store.ListCollectorsByPayroll(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax collectors: %w", err)
	}
	var rows []payslipRow
	for _, c := range collectors {
		if c.LineID != lineID {
			continue
		}
		tax, err := s.store.FindContributionByID(ctx, c.ContributionID)
		if err != nil {
			return nil, err
		}
		label := tax.Name
		if c.PayBy == domain.PayByEmployer {
			label += " (employer)"
		}
		rows = append(rows, payslipRow{label: label, amount: c.Amount})
	}
	return rows, nil
}

func (s *payslipService) deductionRows(ctx context.Context, payrollID, lineID string) ([]payslipRow, error) {
	deductions, err := s.store.ListDeductionsByPayroll(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	var rows []payslipRow
	for _, d := range deductions {
		if d.LineID != lineID {
			continue
		}
		credit, err := s.store.FindCreditByID(ctx, d.CreditID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, payslipRow{label: credit.Item, amount: d.Amount})
	}
	return rows, nil
}
