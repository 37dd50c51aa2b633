package mapping

import (
	"fmt"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTaxRevision converts a domain TaxRevision to a model TaxRevision
func ToModelTaxRevision(d domain.TaxRevision) models.TaxRevision {
	return models.TaxRevision{
		RevisionID:    d.RevisionID,
		Version:       d.Version,
		Country:       d.Country,
		DateEffective: d.DateEffective,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxRevision converts a model TaxRevision to a domain TaxRevision
func ToDomainTaxRevision(m models.TaxRevision) domain.TaxRevision {
	return domain.TaxRevision{
		RevisionID:    m.RevisionID,
		Version:       m.Version,
		Country:       m.Country,
		DateEffective: m.DateEffective,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTaxContribution splits a domain TaxContribution into its row and, for rule
// based calculations, its clause rows.
func ToModelTaxContribution(d domain.TaxContribution) (models.TaxContribution, []models.TaxClause) {
	m := models.TaxContribution{
		ContributionID: d.ContributionID,
		Name:           d.Name,
		TaxType:        string(d.Type),
		RevisionID:     optionalString(d.RevisionID),
		Period:         d.Period.String(),
		PayBy:          string(d.PayBy),
		TakenFrom:      string(d.TakenFrom),
		CurrencyCode:   d.Currency,
		IsMandatory:    d.Mandatory,
		IsActive:       d.Active,
		AccountID:      d.AccountID,
		CalcMode:       string(d.Mode()),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}

	var clauses []models.TaxClause
	switch calc := d.Calculation.(type) {
	case domain.FixedAmount:
		v := calc.Value
		m.FixedValue = &v
	case domain.Percentage:
		r := calc.Rate
		m.PercentRate = &r
	case domain.RuleBased:
		clauses = make([]models.TaxClause, 0, len(calc.Clauses))
		for _, c := range calc.Clauses {
			clauses = append(clauses, models.TaxClause{
				ContributionID: d.ContributionID,
				LineNum:        c.LineNum,
				StartAmount:    c.Start,
				EndAmount:      c.End,
				ExcessOver:     c.ExcessOver,
				Percent:        c.Percent,
				Addition:       c.Addition,
			})
		}
	}
	return m, clauses
}

// ToDomainTaxContribution rebuilds a domain TaxContribution from its row and clause rows.
// Clauses keep the order they are given in.
func ToDomainTaxContribution(m models.TaxContribution, clauses []models.TaxClause) (domain.TaxContribution, error) {
	period, err := domain.ParsePayPeriod(m.Period)
	if err != nil {
		return domain.TaxContribution{}, err
	}
	d := domain.TaxContribution{
		ContributionID: m.ContributionID,
		Name:           m.Name,
		Type:           domain.TaxType(m.TaxType),
		RevisionID:     derefString(m.RevisionID),
		Period:         period,
		PayBy:          domain.PayBy(m.PayBy),
		TakenFrom:      domain.IncomeType(m.TakenFrom),
		Currency:       m.CurrencyCode,
		Mandatory:      m.IsMandatory,
		Active:         m.IsActive,
		AccountID:      m.AccountID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}

	switch domain.CalcMode(m.CalcMode) {
	case domain.CalcFixed:
		d.Calculation = domain.FixedAmount{Value: valueOrZero(m.FixedValue)}
	case domain.CalcPercentage:
		d.Calculation = domain.Percentage{Rate: valueOrZero(m.PercentRate)}
	case domain.CalcRuleBased:
		rb := domain.RuleBased{Clauses: make([]domain.Clause, 0, len(clauses))}
		for _, c := range clauses {
			rb.Clauses = append(rb.Clauses, domain.Clause{
				LineNum:    c.LineNum,
				Start:      c.StartAmount,
				End:        c.EndAmount,
				ExcessOver: c.ExcessOver,
				Percent:    c.Percent,
				Addition:   c.Addition,
			})
		}
		d.Calculation = rb
	default:
		return domain.TaxContribution{}, fmt.Errorf("%w: contribution %s has unknown calculation mode %q",
			apperrors.ErrValidation, m.ContributionID, m.CalcMode)
	}
	return d, nil
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
