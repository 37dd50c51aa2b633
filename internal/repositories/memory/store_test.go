package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(v int64) domain.Money { return domain.NewMoney(decimal.NewFromInt(v), "USD") }

func run(id string, day int, status domain.PayrollStatus) domain.PayrollRun {
	return domain.PayrollRun{
		PayrollID: id, Number: "N-" + id, FundingAccountID: "funding", PayPeriod: domain.Monthly,
		PayDate: time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC), Currency: "USD", Status: status,
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SavePayroll(ctx, run("p1", 1, domain.PayrollCreated)))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		require.NoError(t, tx.UpdatePayrollStatus(ctx, "p1", domain.PayrollReview, "op", time.Now()))
		require.NoError(t, tx.SavePayroll(ctx, run("p2", 2, domain.PayrollCreated)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindPayrollByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollCreated, got.Status)
	_, err = s.FindPayrollByID(ctx, "p2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		_ = tx.SavePayroll(ctx, run("p1", 1, domain.PayrollCreated))
		panic("exploded")
	})
	assert.ErrorContains(t, err, "exploded")

	_, err = s.FindPayrollByID(ctx, "p1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The lock was released.
	assert.NoError(t, s.SavePayroll(ctx, run("p1", 1, domain.PayrollCreated)))
}

func TestWithTx_Commits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		return tx.WithTx(ctx, func(ctx context.Context, inner repositories.Store) error {
			return inner.SavePayroll(ctx, run("p1", 1, domain.PayrollCreated))
		})
	})
	require.NoError(t, err)
	_, err = s.FindPayrollByID(ctx, "p1")
	assert.NoError(t, err)
}

func TestListPayrolls_Paginates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.SavePayroll(ctx, run(fmt.Sprintf("p%d", i), i, domain.PayrollCreated)))
	}

	page, next, err := s.ListPayrolls(ctx, 2, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"p5", "p4"}, ids(page))

	page, next, err = s.ListPayrolls(ctx, 2, next)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"p3", "p2"}, ids(page))

	page, next, err = s.ListPayrolls(ctx, 2, next)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"p1"}, ids(page))

	bad := "%%%"
	_, _, err = s.ListPayrolls(ctx, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func ids(runs []domain.PayrollRun) []string {
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.PayrollID)
	}
	return out
}

func TestSaveLine_RejectsDuplicatePosition(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SavePayroll(ctx, run("p1", 1, domain.PayrollCreated)))
	require.NoError(t, s.SaveLine(ctx, domain.PayrollLine{LineID: "l1", PayrollID: "p1", PositionID: "pos"}))

	err := s.SaveLine(ctx, domain.PayrollLine{LineID: "l2", PayrollID: "p1", PositionID: "pos"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestPaymentHistory_OnlyClosedRunsAndNotExcluded(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SavePayroll(ctx, run("closed", 1, domain.PayrollClosed)))
	require.NoError(t, s.SavePayroll(ctx, run("paid", 2, domain.PayrollPaid)))
	require.NoError(t, s.SavePayroll(ctx, run("open", 3, domain.PayrollReview)))
	require.NoError(t, s.SavePayroll(ctx, run("current", 4, domain.PayrollClosed)))

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.PayrollDeduction{
		{DeductionID: "d1", PayrollID: "closed", LineID: "a", CreditID: "c1", Amount: usd(10), RecordedAt: at},
		{DeductionID: "d2", PayrollID: "paid", LineID: "b", CreditID: "c1", Amount: usd(20), RecordedAt: at.Add(time.Hour)},
		{DeductionID: "d3", PayrollID: "open", LineID: "c", CreditID: "c1", Amount: usd(40)},
		{DeductionID: "d4", PayrollID: "current", LineID: "d", CreditID: "c1", Amount: usd(80)},
		{DeductionID: "d5", PayrollID: "paid", LineID: "b", CreditID: "other", Amount: usd(160)},
	}
	for _, d := range rows {
		require.NoError(t, s.ReplaceAuditRows(ctx, "unused", nil, []domain.PayrollDeduction{d}))
	}

	history, err := s.PaymentHistory(ctx, []string{"c1"}, "current")
	require.NoError(t, err)
	assert.Equal(t, []domain.Money{usd(10), usd(20)}, history["c1"])
	assert.NotContains(t, history, "other")
}

func TestAuditRows_ManualSurviveReplace(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.SaveManualDeduction(ctx, domain.PayrollDeduction{DeductionID: "m1", PayrollID: "p1", LineID: "l1", PlanID: "pl", Amount: usd(5)}))
	err := s.SaveManualDeduction(ctx, domain.PayrollDeduction{DeductionID: "m2", PayrollID: "p1", LineID: "l1", PlanID: "pl", Amount: usd(6)})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	require.NoError(t, s.ReplaceAuditRows(ctx, "p1",
		[]domain.TaxContributionCollector{{CollectorID: "c1", PayrollID: "p1", LineID: "l1", Amount: usd(1)}},
		[]domain.PayrollDeduction{
			{DeductionID: "m1", PayrollID: "p1", LineID: "l1", PlanID: "pl", Amount: usd(4), Manual: true},
			{DeductionID: "a1", PayrollID: "p1", LineID: "l1", PlanID: "other", Amount: usd(2)},
		},
	))
	require.NoError(t, s.ClearAutomaticAuditRows(ctx, "p1"))

	collectors, err := s.ListCollectorsByPayroll(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, collectors)

	deductions, err := s.ListDeductionsByPayroll(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, deductions, 1)
	assert.Equal(t, "m1", deductions[0].DeductionID)
	assert.True(t, deductions[0].Manual)
	assert.Equal(t, usd(4), deductions[0].Amount)

	assert.ErrorIs(t, s.DeleteManualDeduction(ctx, "wrong-line", "m1"), apperrors.ErrNotFound)
	assert.NoError(t, s.DeleteManualDeduction(ctx, "l1", "m1"))
}

func TestAuditRows_ReplaceDropsManualWithoutInstallment(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.SaveManualDeduction(ctx, domain.PayrollDeduction{DeductionID: "m1", PayrollID: "p1", LineID: "l1", PlanID: "pl", Amount: usd(5)}))
	require.NoError(t, s.SaveManualDeduction(ctx, domain.PayrollDeduction{DeductionID: "m-other", PayrollID: "p2", LineID: "l2", PlanID: "pl", Amount: usd(7)}))

	require.NoError(t, s.ReplaceAuditRows(ctx, "p1", nil, nil))

	deductions, err := s.ListDeductionsByPayroll(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, deductions)

	others, err := s.ListDeductionsByPayroll(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "m-other", others[0].DeductionID)
}

func TestFindExchangeRate_Latest(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	old := domain.NewExchangeRate("USD", "DOP", decimal.NewFromInt(55), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	latest := domain.NewExchangeRate("USD", "DOP", decimal.NewFromInt(60), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveExchangeRate(ctx, latest))
	require.NoError(t, s.SaveExchangeRate(ctx, old))

	got, err := s.FindExchangeRate(ctx, "USD", "DOP")
	require.NoError(t, err)
	assert.Equal(t, "60", got.Local.Amount.String())

	_, err = s.FindExchangeRate(ctx, "DOP", "USD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSummaries(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SavePayroll(ctx, run("p1", 1, domain.PayrollCreated)))
	require.NoError(t, s.SaveLine(ctx, domain.PayrollLine{LineID: "l1", PayrollID: "p1", PositionID: "a"}))
	require.NoError(t, s.SaveLine(ctx, domain.PayrollLine{LineID: "l2", PayrollID: "p1", PositionID: "b"}))
	require.NoError(t, s.SaveContribution(ctx, domain.TaxContribution{ContributionID: "isr", Name: "ISR", AccountID: "tax-acc"}))

	for _, a := range []domain.Addition{
		{AdditionID: "a1", PayrollID: "p1", LineID: "l1", ItemName: "bonus", AccountID: "x", Amount: usd(100)},
		{AdditionID: "a2", PayrollID: "p1", LineID: "l2", ItemName: "bonus", AccountID: "x", Amount: usd(50)},
		{AdditionID: "a3", PayrollID: "p1", LineID: "l2", ItemName: "meal", AccountID: "y", Amount: usd(10)},
	} {
		require.NoError(t, s.SaveAddition(ctx, a))
	}
	require.NoError(t, s.ReplaceAuditRows(ctx, "p1", []domain.TaxContributionCollector{
		{CollectorID: "c1", PayrollID: "p1", LineID: "l1", ContributionID: "isr", Amount: usd(30)},
		{CollectorID: "c2", PayrollID: "p1", LineID: "l2", ContributionID: "isr", Amount: usd(12)},
	}, nil))

	additions, err := s.SummarizeAdditions(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, additions, 2)
	assert.Equal(t, "bonus", additions[0].Name)
	assert.Equal(t, 2, additions[0].Count)
	assert.Equal(t, "150", additions[0].Total.Amount.String())

	taxes, err := s.SummarizeTaxes(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, taxes, 1)
	assert.Equal(t, "ISR", taxes[0].Name)
	assert.Equal(t, "tax-acc", taxes[0].AccountID)
	assert.Equal(t, "42", taxes[0].Total.Amount.String())
}
