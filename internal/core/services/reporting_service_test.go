package services_test

import (
	"bytes"
	"testing"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/core/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/stretchr/testify/suite"
)

// ReportingServiceTestSuite reuses the payroll fixtures to build a closed run.
type ReportingServiceTestSuite struct {
	payrollFixtures
	reporting portssvc.ReportingService
	payslips  portssvc.PayslipService
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.payrollFixtures.SetupTest()
	s.reporting = services.NewReportingService(s.store)
	s.payslips = services.NewPayslipService(s.store)
}

func (s *ReportingServiceTestSuite) closedRun() (*domain.PayrollRun, *domain.PayrollLine) {
	run := s.createRun("2026-03")
	line := s.addLine(run.PayrollID, "pos-1")
	_, err := s.service.ApplyLineAdjustments(s.ctx, run.PayrollID, line.LineID, dto.LineAdjustmentsRequest{
		AddAdditions: []dto.AdditionRequest{
			{ItemName: "Bonus", AccountID: "acc-bonus", Amount: dec("100")},
			{ItemName: "Bonus", AccountID: "acc-bonus", Amount: dec("200")},
		},
	}, operator)
	s.Require().NoError(err)
	s.advanceTo(run.PayrollID, domain.PayrollClosed)
	return run, line
}

func (s *ReportingServiceTestSuite) TestPayrollSummary() {
	run, _ := s.closedRun()

	summary, err := s.reporting.PayrollSummary(s.ctx, run.PayrollID)

	s.Require().NoError(err)
	s.Equal(domain.PayrollClosed, summary.Status)
	s.Equal(1, summary.Totals.Lines)
	s.assertAmount("2300", summary.Totals.GrossIncome)
	s.assertAmount("230", summary.Totals.IncomeTax)
	s.assertAmount("50", summary.Totals.Deductions)
	s.assertAmount("2020", summary.Totals.NetIncome)

	s.Require().Len(summary.Taxes, 1)
	s.Equal("ISR", summary.Taxes[0].Name)
	s.assertAmount("230", summary.Taxes[0].Total)

	s.Require().Len(summary.Additions, 1)
	s.Equal(2, summary.Additions[0].Count)
	s.assertAmount("300", summary.Additions[0].Total)

	s.Require().Len(summary.Deductions, 1)
	s.Equal("Loan cr-1", summary.Deductions[0].Name)
	s.Empty(summary.Flagged)

	resp := dto.ToPayrollSummaryResponse(summary)
	s.Equal("USD", resp.CurrencyCode)
}

func (s *ReportingServiceTestSuite) TestPayrollSummary_EmptyRun() {
	run := s.createRun("2026-03")

	summary, err := s.reporting.PayrollSummary(s.ctx, run.PayrollID)

	s.Require().NoError(err)
	s.Equal(0, summary.Totals.Lines)
	s.assertAmount("0", summary.Totals.NetIncome)
	s.Equal("USD", summary.Totals.NetIncome.Currency)
}

func (s *ReportingServiceTestSuite) TestPayrollSummary_NotFound() {
	_, err := s.reporting.PayrollSummary(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReportingServiceTestSuite) TestRenderPayslip() {
	run, line := s.closedRun()

	var buf bytes.Buffer
	err := s.payslips.RenderPayslip(s.ctx, run.PayrollID, line.LineID, &buf)

	s.Require().NoError(err)
	s.True(bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func (s *ReportingServiceTestSuite) TestRenderPayslip_UnknownLine() {
	run := s.createRun("2026-03")

	var buf bytes.Buffer
	err := s.payslips.RenderPayslip(s.ctx, run.PayrollID, "missing", &buf)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Zero(buf.Len())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
