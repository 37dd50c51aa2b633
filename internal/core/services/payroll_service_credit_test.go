package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	"github.com/SscSPs/payroll_engine/internal/core/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
)

// creditCallStore records the order of the credit reads made inside transactions.
type creditCallStore struct {
	portsrepo.Store
	calls *[]string
}

func (r creditCallStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Store) error) error {
	return r.Store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		return fn(ctx, creditCallStore{Store: tx, calls: r.calls})
	})
}

func (r creditCallStore) LockEmployeeCredits(ctx context.Context, employeeIDs []string) error {
	*r.calls = append(*r.calls, "lock")
	return r.Store.LockEmployeeCredits(ctx, employeeIDs)
}

func (r creditCallStore) ListCreditPlansByEmployees(ctx context.Context, employeeIDs []string) ([]domain.CreditPlan, error) {
	*r.calls = append(*r.calls, "plans")
	return r.Store.ListCreditPlansByEmployees(ctx, employeeIDs)
}

func (r creditCallStore) PaymentHistory(ctx context.Context, creditIDs []string, excludePayrollID string) (map[string][]domain.Money, error) {
	*r.calls = append(*r.calls, "history")
	return r.Store.PaymentHistory(ctx, creditIDs, excludePayrollID)
}

func (s *PayrollServiceTestSuite) TestRecompute_LocksCreditsBeforeReadingHistory() {
	var calls []string
	runs := payroll.NewRunCalculator(payroll.NewPayrollLineCalculator(domain.DefaultPeriodConverter()), 2)
	svc := services.NewPayrollService(creditCallStore{Store: s.store, calls: &calls}, runs, payroll.NewPayrollLedgerPoster(),
		services.WithPayrollClock(func() time.Time { return testNow }))

	run := s.createRun("2026-03")
	_, err := svc.AddLine(s.ctx, run.PayrollID, dto.AddLineRequest{PositionID: "pos-1"}, operator)
	s.Require().NoError(err)
	_, err = svc.Transition(s.ctx, run.PayrollID, domain.PayrollReview, operator)
	s.Require().NoError(err)
	_, err = svc.Transition(s.ctx, run.PayrollID, domain.PayrollClosed, operator)
	s.Require().NoError(err)

	s.Equal([]string{"lock", "plans", "history", "lock", "plans", "history"}, calls)
}

func (s *PayrollServiceTestSuite) TestClose_DropsManualInstallmentOfSettledCredit() {
	first := s.createRun("2026-03-A")
	firstLine := s.addLine(first.PayrollID, "pos-1")
	second := s.createRun("2026-03-B")
	secondLine := s.addLine(second.PayrollID, "pos-1")

	_, err := s.service.ApplyLineAdjustments(s.ctx, second.PayrollID, secondLine.LineID, dto.LineAdjustmentsRequest{
		AddInstallments: []dto.ManualInstallmentRequest{{PlanID: "pl-1", Amount: dec("100")}},
	}, operator)
	s.Require().NoError(err)
	_, err = s.service.ApplyLineAdjustments(s.ctx, first.PayrollID, firstLine.LineID, dto.LineAdjustmentsRequest{
		AddInstallments: []dto.ManualInstallmentRequest{{PlanID: "pl-1", Amount: dec("5000")}},
	}, operator)
	s.Require().NoError(err)

	s.advanceTo(first.PayrollID, domain.PayrollClosed)
	credit, err := s.store.FindCreditByID(s.ctx, "cr-1")
	s.Require().NoError(err)
	s.Require().True(credit.Completed)

	s.advanceTo(second.PayrollID, domain.PayrollClosed)

	closed, err := s.store.FindLineByID(s.ctx, second.PayrollID, secondLine.LineID)
	s.Require().NoError(err)
	s.assertAmount("0", closed.Deductions)
	rows, err := s.store.ListDeductionsByPayroll(s.ctx, second.PayrollID)
	s.Require().NoError(err)
	s.Empty(rows)

	history, err := s.store.PaymentHistory(s.ctx, []string{"cr-1"}, "")
	s.Require().NoError(err)
	s.Require().Len(history["cr-1"], 1)
	s.assertAmount("1000", history["cr-1"][0])
}

func (s *PayrollServiceTestSuite) TestApplyLineAdjustments_CancelledPlanRejected() {
	s.seedCredit("emp-1", "cr-off", "pl-off", "300", "0.10", domain.PlanCancelled)
	run := s.createRun("2026-03")
	line := s.addLine(run.PayrollID, "pos-1")

	_, err := s.service.ApplyLineAdjustments(s.ctx, run.PayrollID, line.LineID, dto.LineAdjustmentsRequest{
		AddInstallments: []dto.ManualInstallmentRequest{{PlanID: "pl-off", Amount: dec("30")}},
	}, operator)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PayrollServiceTestSuite) TestApplyLineAdjustments_ManualOverridesPausedPlan() {
	s.seedCredit("emp-1", "cr-paused", "pl-paused", "300", "0.10", domain.PlanPaused)
	run := s.createRun("2026-03")
	line := s.addLine(run.PayrollID, "pos-1")
	s.assertAmount("50", line.Deductions)

	adjusted, err := s.service.ApplyLineAdjustments(s.ctx, run.PayrollID, line.LineID, dto.LineAdjustmentsRequest{
		AddInstallments: []dto.ManualInstallmentRequest{{PlanID: "pl-paused", Amount: dec("30")}},
	}, operator)
	s.Require().NoError(err)
	s.assertAmount("80", adjusted.Deductions)
}
