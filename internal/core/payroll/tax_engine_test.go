package payroll_test

import (
	"testing"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func usd(s string) domain.Money { return domain.NewMoney(dec(s), "USD") }

func monthly(s string) domain.Income { return domain.NewIncome(domain.Monthly, usd(s)) }

// twoBrackets is 10% up to 1000 and 20% of the excess plus 100 above it.
func twoBrackets() []domain.Clause {
	return []domain.Clause{
		{LineNum: 1, Start: dec("0"), End: decPtr("1000"), ExcessOver: dec("0"), Percent: dec("0.10"), Addition: dec("0")},
		{LineNum: 2, Start: dec("1000"), ExcessOver: dec("1000"), Percent: dec("0.20"), Addition: dec("100")},
	}
}

func TestTaxBracketResolver_Resolve(t *testing.T) {
	resolver := payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter())

	tests := []struct {
		name   string
		income domain.Income
		want   string
	}{
		{"first bracket", monthly("500"), "50"},
		{"second bracket", monthly("1500"), "200"},
		{"converted from annual", domain.NewIncome(domain.Annually, usd("6000")), "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.income, domain.Monthly, "USD", twoBrackets(), nil)
			require.NoError(t, err)
			assert.Equal(t, domain.Monthly, got.Period)
			assert.Equal(t, tt.want, got.Money.Amount.String())
		})
	}
}

func TestTaxBracketResolver_NoMatchAtOpenEndedBoundary(t *testing.T) {
	resolver := payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter())
	_, err := resolver.Resolve(monthly("1000"), domain.Monthly, "USD", twoBrackets(), nil)
	assert.ErrorIs(t, err, apperrors.ErrNoMatchingClause)
}

func TestTaxBracketResolver_ClampsWhenOwedEqualsIncome(t *testing.T) {
	resolver := payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter())
	all := []domain.Clause{{LineNum: 1, Start: dec("0"), End: decPtr("100000"), Percent: dec("1")}}

	got, err := resolver.Resolve(monthly("700"), domain.Monthly, "USD", all, nil)
	require.NoError(t, err)
	assert.True(t, got.Money.IsZero())
}

func TestTaxBracketResolver_CallerOrderWins(t *testing.T) {
	resolver := payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter())
	overlapping := []domain.Clause{
		{LineNum: 9, Start: dec("0"), End: decPtr("5000"), Addition: dec("7")},
		{LineNum: 1, Start: dec("0"), End: decPtr("1000"), Percent: dec("0.10")},
	}
	got, err := resolver.Resolve(monthly("500"), domain.Monthly, "USD", overlapping, nil)
	require.NoError(t, err)
	assert.Equal(t, "7", got.Money.Amount.String())
}

func TestTaxBracketResolver_ConvertsCurrency(t *testing.T) {
	resolver := payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter())
	rate := domain.NewExchangeRate("USD", "DOP", dec("50"), time.Now())
	clauses := []domain.Clause{{LineNum: 1, Start: dec("0"), End: decPtr("100000"), Percent: dec("0.10")}}

	got, err := resolver.Resolve(monthly("100"), domain.Monthly, "DOP", clauses, &rate)
	require.NoError(t, err)
	assert.Equal(t, "DOP", got.Money.Currency)
	assert.Equal(t, "500", got.Money.Amount.String())
}

func TestTaxContributionEngine_Calculate(t *testing.T) {
	engine := payroll.NewTaxContributionEngine(payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter()))
	base := domain.TaxContribution{Name: "t", Period: domain.Monthly, Currency: "USD", PayBy: domain.PayByEmployee}

	fixed := base
	fixed.Period = domain.Annually
	fixed.Calculation = domain.FixedAmount{Value: dec("120")}
	got, err := engine.Calculate(fixed, monthly("2000"), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Annually, got.Period)
	assert.Equal(t, "120", got.Money.Amount.String())

	pct := base
	pct.Calculation = domain.Percentage{Rate: dec("0.10")}
	got, err = engine.Calculate(pct, monthly("2000"), nil)
	require.NoError(t, err)
	assert.Equal(t, "200", got.Money.Amount.String())

	rules := base
	rules.Calculation = domain.RuleBased{Clauses: twoBrackets()}
	got, err = engine.Calculate(rules, monthly("1500"), nil)
	require.NoError(t, err)
	assert.Equal(t, "200", got.Money.Amount.String())

	none := base
	_, err = engine.Calculate(none, monthly("1"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTaxContributionEngine_MissingRate(t *testing.T) {
	engine := payroll.NewTaxContributionEngine(payroll.NewTaxBracketResolver(domain.DefaultPeriodConverter()))
	tax := domain.TaxContribution{
		Name: "dop tax", Period: domain.Monthly, Currency: "DOP",
		Calculation: domain.Percentage{Rate: dec("0.1")},
	}
	_, err := engine.Calculate(tax, monthly("100"), nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingExchangeRate)

	eur := domain.NewExchangeRate("EUR", "DOP", dec("60"), time.Now())
	_, err = engine.Calculate(tax, monthly("100"), &eur)
	assert.ErrorIs(t, err, apperrors.ErrMissingExchangeRate)
}
