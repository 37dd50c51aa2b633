// Package payroll holds the calculation engine: bracket resolution, the contribution
// dispatcher, deduction amortization, the per line calculator, the run level worker pool
// and the ledger poster. Nothing in here performs I/O; callers inject snapshots.
package payroll

import (
	"fmt"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// TaxBracketResolver matches an income against an ordered clause list.
type TaxBracketResolver struct {
	converter domain.PeriodConverter
}

// NewTaxBracketResolver builds a resolver with the given period converter.
func NewTaxBracketResolver(converter domain.PeriodConverter) TaxBracketResolver {
	return TaxBracketResolver{converter: converter}
}

// Resolve converts income into the schedule's period and currency, then returns the owed
// amount of the first matching clause in that period and currency. Clause order is the
// caller's; nothing is sorted.
func (r TaxBracketResolver) Resolve(income domain.Income, period domain.PayPeriod, currency string, clauses []domain.Clause, rate *domain.ExchangeRate) (domain.Income, error) {
	normalized, err := domain.ConvertIncome(income.ConvertTo(period, r.converter), currency, rate)
	if err != nil {
		return domain.Income{}, err
	}
	amount := normalized.Money.Amount

	for _, clause := range clauses {
		if !clause.Matches(amount) {
			continue
		}
		owed := clause.Owed(amount)
		if owed.Equal(amount) {
			return domain.ZeroIncome(period, currency), nil
		}
		return domain.NewIncome(period, domain.NewMoney(owed, currency)), nil
	}
	return domain.Income{}, fmt.Errorf("%w: %s", apperrors.ErrNoMatchingClause, normalized)
}

// TaxContributionEngine evaluates a contribution against a base income.
type TaxContributionEngine struct {
	resolver TaxBracketResolver
}

// NewTaxContributionEngine builds an engine delegating rule based taxes to resolver.
func NewTaxContributionEngine(resolver TaxBracketResolver) TaxContributionEngine {
	return TaxContributionEngine{resolver: resolver}
}

// Calculate dispatches on the contribution's calculation variant. A currency mismatch
// between the tax and the income requires rate.
//
// FIXED yields the flat value in the tax's period and currency, PERCENTAGE scales the
// income as is, RULE_BASED resolves the bracket.
func (e TaxContributionEngine) Calculate(tax domain.TaxContribution, income domain.Income, rate *domain.ExchangeRate) (domain.Income, error) {
	if tax.Currency != income.Money.Currency {
		if rate == nil || !rate.Involves(tax.Currency, income.Money.Currency) {
			return domain.Income{}, fmt.Errorf("%w: tax %s is in %s, income in %s",
				apperrors.ErrMissingExchangeRate, tax.Name, tax.Currency, income.Money.Currency)
		}
	}

	switch calc := tax.Calculation.(type) {
	case domain.FixedAmount:
		return domain.NewIncome(tax.Period, domain.NewMoney(calc.Value, tax.Currency)), nil
	case domain.Percentage:
		return income.Mul(calc.Rate), nil
	case domain.RuleBased:
		return e.resolver.Resolve(income, tax.Period, tax.Currency, calc.Clauses, rate)
	case nil:
		return domain.Income{}, fmt.Errorf("%w: tax %s has no calculation", apperrors.ErrValidation, tax.Name)
	default:
		return domain.Income{}, fmt.Errorf("%w: unsupported calculation mode %s", apperrors.ErrValidation, calc.Mode())
	}
}
