package payroll_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runInputs builds n employees with one line each plus a second line for emp-0 that
// shares its credit.
func runInputs(n int) ([]payroll.LineInput, map[string][]domain.Money) {
	var inputs []payroll.LineInput
	prior := make(map[string][]domain.Money)
	for i := 0; i < n; i++ {
		in := scenarioInput()
		emp := fmt.Sprintf("emp-%d", i)
		in.Line.LineID = fmt.Sprintf("line-%02d", i)
		in.Line.EmployeeID = emp
		in.Position.EmployeeID = emp
		cp := creditPlan("1000", "0.40")
		cp.Credit.CreditID = "cr-" + emp
		cp.Credit.EmployeeID = emp
		cp.Plan.PlanID = "pl-" + emp
		cp.Plan.CreditID = cp.Credit.CreditID
		in.Plans = []domain.CreditPlan{cp}
		inputs = append(inputs, in)
		prior[cp.Credit.CreditID] = []domain.Money{usd("300")}
	}
	second := inputs[0]
	second.Line.LineID = "line-99"
	inputs = append(inputs, second)
	return inputs, prior
}

func TestRunCalculator_SameResultsForAnyLimit(t *testing.T) {
	lines := payroll.NewPayrollLineCalculator(domain.DefaultPeriodConverter())

	var baseline []payroll.LineResult
	for _, workers := range []int{1, 3, 16} {
		inputs, prior := runInputs(12)
		results, err := payroll.NewRunCalculator(lines, workers).Compute(context.Background(), inputs, payroll.NewInstallmentBook(prior))
		require.NoError(t, err)
		require.Len(t, results, len(inputs))
		if baseline == nil {
			baseline = results
			continue
		}
		for i := range results {
			assert.Equal(t, baseline[i].Line.NetIncome, results[i].Line.NetIncome, "workers=%d line=%s", workers, results[i].Line.LineID)
			assert.Equal(t, baseline[i].Deductions[0].Amount, results[i].Deductions[0].Amount)
		}
	}

	// emp-0 owes 700: its first line takes 400, the second the remaining 300.
	assert.Equal(t, "400", baseline[0].Line.Deductions.Amount.String())
	assert.Equal(t, "300", baseline[len(baseline)-1].Line.Deductions.Amount.String())
	assert.Equal(t, []string{"cr-emp-0"}, baseline[len(baseline)-1].SettledCredits)
}

func TestRunCalculator_ReportsEveryFailingLine(t *testing.T) {
	lines := payroll.NewPayrollLineCalculator(domain.DefaultPeriodConverter())
	inputs, prior := runInputs(4)
	inputs[1].Position.WageType = domain.PerRate
	inputs[3].Taxes[0].Calculation = nil

	_, err := payroll.NewRunCalculator(lines, 2).Compute(context.Background(), inputs, payroll.NewInstallmentBook(prior))
	require.Error(t, err)

	many, ok := apperrors.AsLineErrors(err)
	require.True(t, ok)
	require.Len(t, many, 2)
	assert.Equal(t, "line-01", many[0].LineID)
	assert.Equal(t, "line-03", many[1].LineID)
	assert.ErrorIs(t, err, apperrors.ErrMissingHoursWorked)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRunCalculator_Cancelled(t *testing.T) {
	lines := payroll.NewPayrollLineCalculator(domain.DefaultPeriodConverter())
	inputs, prior := runInputs(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := payroll.NewRunCalculator(lines, 0).Compute(ctx, inputs, payroll.NewInstallmentBook(prior))
	assert.ErrorIs(t, err, context.Canceled)
}
