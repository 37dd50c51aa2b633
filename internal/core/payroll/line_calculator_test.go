package payroll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LineCalculatorTestSuite struct {
	suite.Suite
	calc  payroll.PayrollLineCalculator
	input payroll.LineInput
}

func (s *LineCalculatorTestSuite) SetupTest() {
	s.calc = payroll.NewPayrollLineCalculator(domain.DefaultPeriodConverter())
	s.input = scenarioInput()
}

// scenarioInput is a 24000 a year salaried employee on a monthly USD run with a 10% gross
// tax and a 1000 credit recovered at 5% per run.
func scenarioInput() payroll.LineInput {
	run := domain.PayrollRun{
		PayrollID: "run-1", Number: "2026-03", FundingAccountID: "funding",
		PayPeriod: domain.Monthly, PayDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Currency: "USD", Status: domain.PayrollCreated,
	}
	cp := creditPlan("1000", "0.05")
	gross10 := domain.TaxContribution{
		ContributionID: "tax-isr", Name: "ISR", Period: domain.Monthly, PayBy: domain.PayByEmployee,
		TakenFrom: domain.IncomeGross, Currency: "USD", Mandatory: true, Active: true,
		Calculation: domain.Percentage{Rate: dec("0.10")},
	}
	return payroll.LineInput{
		Run:  run,
		Line: domain.PayrollLine{LineID: "line-1", PayrollID: "run-1", EmployeeID: "emp-1", PositionID: "pos-1"},
		Position: domain.EmployeePosition{
			PositionID: "pos-1", EmployeeID: "emp-1", WageType: domain.Salaried, Active: true,
			Negotiated: domain.NewIncome(domain.Annually, usd("24000")),
		},
		Taxes: []domain.TaxContribution{gross10},
		Plans: []domain.CreditPlan{cp},
	}
}

func (s *LineCalculatorTestSuite) TestScenario() {
	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)

	l := res.Line
	s.Equal("2000", l.Earnings.Amount.String())
	s.Equal("0", l.ExtraIncome.Amount.String())
	s.Equal("2000", l.GrossIncome.Amount.String())
	s.Equal("200", l.IncomeTax.Amount.String())
	s.Equal("0", l.EmployerTax.Amount.String())
	s.Equal("50", l.Deductions.Amount.String())
	s.Equal("1750", l.NetIncome.Amount.String())

	s.Require().Len(res.Collectors, 1)
	s.Equal("tax-isr", res.Collectors[0].ContributionID)
	s.Equal("200", res.Collectors[0].Amount.Amount.String())

	s.Require().Len(res.Deductions, 1)
	s.Equal("pl-1", res.Deductions[0].PlanID)
	s.False(res.Deductions[0].Manual)
	s.Empty(res.SettledCredits)
}

func (s *LineCalculatorTestSuite) TestAdditionsAndEmployerTax() {
	s.input.Additions = []domain.Addition{
		{AdditionID: "a1", ItemName: "bonus", Amount: usd("300")},
		{AdditionID: "a2", ItemName: "meal", Amount: usd("200")},
	}
	s.input.Taxes = append(s.input.Taxes, domain.TaxContribution{
		ContributionID: "tax-ss", Name: "SS", Period: domain.Monthly, PayBy: domain.PayByEmployer,
		TakenFrom: domain.IncomeSalary, Currency: "USD", Mandatory: true, Active: true,
		Calculation: domain.Percentage{Rate: dec("0.07")},
	})

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)

	s.Equal("500", res.Line.ExtraIncome.Amount.String())
	s.Equal("2500", res.Line.GrossIncome.Amount.String())
	s.Equal("250", res.Line.IncomeTax.Amount.String())
	s.Equal("140", res.Line.EmployerTax.Amount.String())
	s.Equal("2200", res.Line.NetIncome.Amount.String())
	s.Len(res.Collectors, 2)
}

func (s *LineCalculatorTestSuite) TestNetBasedTaxUsesFirstPass() {
	s.input.OptIns = []domain.TaxContribution{{
		ContributionID: "tax-union", Name: "union", Period: domain.Monthly, PayBy: domain.PayByEmployee,
		TakenFrom: domain.IncomeNet, Currency: "USD", Active: true,
		Calculation: domain.Percentage{Rate: dec("0.01")},
	}}
	s.input.Plans = nil

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)

	// 200 on gross plus 1% of the 1800 left after it.
	s.Equal("218", res.Line.IncomeTax.Amount.String())
	s.Equal("1782", res.Line.NetIncome.Amount.String())
}

func (s *LineCalculatorTestSuite) TestTaxesAreDeduplicated() {
	s.input.OptIns = []domain.TaxContribution{s.input.Taxes[0]}
	inactive := s.input.Taxes[0]
	inactive.ContributionID = "tax-old"
	inactive.Active = false
	s.input.Taxes = append(s.input.Taxes, inactive)

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Len(res.Collectors, 1)
	s.Equal("200", res.Line.IncomeTax.Amount.String())
}

func (s *LineCalculatorTestSuite) TestFractionScalesEarnings() {
	half := dec("0.5")
	s.input.Run.Fraction = &half
	s.input.Plans = nil

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("1000", res.Line.Earnings.Amount.String())
	s.Equal("900", res.Line.NetIncome.Amount.String())
}

func (s *LineCalculatorTestSuite) TestPerRate() {
	s.input.Position.WageType = domain.PerRate
	s.input.Position.Negotiated = domain.NewIncome(domain.Hourly, usd("15"))
	s.input.Plans = nil

	_, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.ErrorIs(err, apperrors.ErrMissingHoursWorked)
	var le *apperrors.LineError
	s.Require().True(errors.As(err, &le))
	s.Equal("line-1", le.LineID)
	s.Equal("earnings", le.Subject)

	s.input.Line.HoursWorked = decPtr("80")
	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("1200", res.Line.Earnings.Amount.String())
	s.Equal("1080", res.Line.NetIncome.Amount.String())
}

func (s *LineCalculatorTestSuite) TestForeignSalaryNeedsRunRate() {
	s.input.Position.Negotiated = domain.NewIncome(domain.Monthly, domain.NewMoney(dec("100000"), "DOP"))
	s.input.Plans = nil

	_, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.ErrorIs(err, apperrors.ErrMissingExchangeRate)

	rate := domain.NewExchangeRate("USD", "DOP", dec("50"), time.Now())
	s.input.Run.ExchangeRate = &rate
	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("USD", res.Line.Earnings.Currency)
	s.Equal("2000", res.Line.Earnings.Amount.String())
}

func (s *LineCalculatorTestSuite) TestAdditionInOtherCurrencyNamesSubject() {
	s.input.Additions = []domain.Addition{{AdditionID: "a1", Amount: domain.NewMoney(dec("10"), "EUR")}}

	_, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	var le *apperrors.LineError
	s.Require().True(errors.As(err, &le))
	s.Equal("additions in EUR", le.Subject)
	s.ErrorIs(err, apperrors.ErrMissingExchangeRate)
}

func (s *LineCalculatorTestSuite) TestManualInstallmentReplacesComputed() {
	s.input.Manual = map[string]domain.PayrollDeduction{
		"pl-1": {DeductionID: "d-manual", PlanID: "pl-1", CreditID: "cr-1", Amount: usd("125")},
	}

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("125", res.Line.Deductions.Amount.String())
	s.Require().Len(res.Deductions, 1)
	s.True(res.Deductions[0].Manual)
	s.Equal("d-manual", res.Deductions[0].DeductionID)
}

func (s *LineCalculatorTestSuite) TestPausedPlanIsSkipped() {
	s.input.Plans[0].Plan.Status = domain.PlanPaused

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("0", res.Line.Deductions.Amount.String())
	s.Empty(res.Deductions)
}

func (s *LineCalculatorTestSuite) TestManualInstallmentOnPausedPlan() {
	s.input.Plans[0].Plan.Status = domain.PlanPaused
	s.input.Manual = map[string]domain.PayrollDeduction{
		"pl-1": {DeductionID: "d-manual", PlanID: "pl-1", CreditID: "cr-1", Amount: usd("30"), Manual: true},
	}

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("30", res.Line.Deductions.Amount.String())
	s.Require().Len(res.Deductions, 1)
	s.Equal("d-manual", res.Deductions[0].DeductionID)
}

func (s *LineCalculatorTestSuite) TestCancelledPlanIgnoresManual() {
	s.input.Plans[0].Plan.Status = domain.PlanCancelled
	s.input.Manual = map[string]domain.PayrollDeduction{
		"pl-1": {DeductionID: "d-manual", PlanID: "pl-1", CreditID: "cr-1", Amount: usd("30"), Manual: true},
	}

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("0", res.Line.Deductions.Amount.String())
	s.Empty(res.Deductions)
}

func (s *LineCalculatorTestSuite) TestAdditionInOtherCurrencyConvertedAtRunRate() {
	rate := domain.NewExchangeRate("EUR", "USD", dec("1.1"), time.Now())
	s.input.Run.ExchangeRate = &rate
	s.input.Plans = nil
	s.input.Additions = []domain.Addition{{AdditionID: "a1", Amount: domain.NewMoney(dec("10"), "EUR")}}

	res, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.Require().NoError(err)
	s.Equal("USD", res.Line.ExtraIncome.Currency)
	s.True(dec("11").Equal(res.Line.ExtraIncome.Amount), res.Line.ExtraIncome.Amount.String())
	s.True(dec("2011").Equal(res.Line.GrossIncome.Amount), res.Line.GrossIncome.Amount.String())
}

func (s *LineCalculatorTestSuite) TestFinalInstallmentSettlesCredit() {
	book := payroll.NewInstallmentBook(map[string][]domain.Money{"cr-1": {usd("980")}})

	res, err := s.calc.Compute(s.input, book)
	s.Require().NoError(err)
	s.Equal("20", res.Line.Deductions.Amount.String())
	s.Equal([]string{"cr-1"}, res.SettledCredits)
}

func (s *LineCalculatorTestSuite) TestTakeHomeTaxRejected() {
	s.input.Taxes[0].TakenFrom = domain.IncomeTakeHome

	_, err := s.calc.Compute(s.input, payroll.NewInstallmentBook(nil))
	s.ErrorIs(err, apperrors.ErrValidation)
	var le *apperrors.LineError
	s.Require().True(errors.As(err, &le))
	s.Equal("tax ISR", le.Subject)
}

func TestLineCalculatorTestSuite(t *testing.T) {
	suite.Run(t, new(LineCalculatorTestSuite))
}

func TestLineCalculator_RuleBasedAnnualTax(t *testing.T) {
	calc := payroll.NewPayrollLineCalculator(domain.DefaultPeriodConverter())
	in := scenarioInput()
	in.Plans = nil
	in.Taxes = []domain.TaxContribution{{
		ContributionID: "isr", Name: "ISR", Period: domain.Annually, PayBy: domain.PayByEmployee,
		TakenFrom: domain.IncomeGross, Currency: "USD", Active: true, Mandatory: true,
		Calculation: domain.RuleBased{Clauses: []domain.Clause{
			{LineNum: 1, Start: dec("0"), End: decPtr("12000"), Percent: dec("0")},
			{LineNum: 2, Start: dec("12000"), ExcessOver: dec("12000"), Percent: dec("0.15")},
		}},
	}}

	res, err := calc.Compute(in, payroll.NewInstallmentBook(nil))
	require.NoError(t, err)
	// (24000 - 12000) * 15% a year is 150 a month.
	assert.Equal(t, "150", res.Line.IncomeTax.Amount.String())
}
