package services

import (
	"context"
	"io"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// ReportingService defines operations for generating payroll reports
type ReportingService interface {
	// PayrollSummary totals a run's lines and groups its taxes, additions and deductions
	PayrollSummary(ctx context.Context, payrollID string) (*domain.PayrollSummary, error)
}

// PayslipService renders employee payslips
type PayslipService interface {
	// RenderPayslip writes a one page A4 PDF for a line to w
	RenderPayslip(ctx context.Context, payrollID, lineID string, w io.Writer) error
}
