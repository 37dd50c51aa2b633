package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TaxType classifies a contribution.
type TaxType string

const (
	TaxIncome         TaxType = "INCOME"
	TaxSocialSecurity TaxType = "SOCIAL_SECURITY"
	TaxOther          TaxType = "OTHER"
)

// PayBy says who bears a contribution.
type PayBy string

const (
	PayByEmployee PayBy = "EMPLOYEE"
	PayByEmployer PayBy = "EMPLOYER"
)

// CalcMode names the calculation variant of a contribution.
type CalcMode string

const (
	CalcFixed      CalcMode = "FIXED"
	CalcPercentage CalcMode = "PERCENTAGE"
	CalcRuleBased  CalcMode = "RULE_BASED"
)

// TaxCalculation is the tagged variant of a contribution's calculation.
// FixedAmount, Percentage and RuleBased are its only implementations.
type TaxCalculation interface {
	Mode() CalcMode
	validate() error
}

// FixedAmount is a flat amount in the contribution's period and currency.
type FixedAmount struct {
	Value decimal.Decimal `json:"value"`
}

func (FixedAmount) Mode() CalcMode { return CalcFixed }

func (f FixedAmount) validate() error {
	if f.Value.IsNegative() {
		return fmt.Errorf("%w: fixed amount cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// Percentage multiplies the base income by Rate (0.10 for ten percent).
type Percentage struct {
	Rate decimal.Decimal `json:"rate"`
}

func (Percentage) Mode() CalcMode { return CalcPercentage }

func (p Percentage) validate() error {
	if p.Rate.IsNegative() {
		return fmt.Errorf("%w: percentage cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// RuleBased resolves the owed amount from an ordered bracket schedule.
// Clauses are matched in slice order; they are never sorted.
type RuleBased struct {
	Clauses []Clause `json:"clauses"`
}

func (RuleBased) Mode() CalcMode { return CalcRuleBased }

func (r RuleBased) validate() error {
	return ValidateClauses(r.Clauses)
}

// Clause is one tier of a progressive schedule. End is nil for the top bracket.
type Clause struct {
	LineNum    int              `json:"lineNum"`
	Start      decimal.Decimal  `json:"start"`
	End        *decimal.Decimal `json:"end,omitempty"`
	ExcessOver decimal.Decimal  `json:"excessOver"`
	Percent    decimal.Decimal  `json:"percent"`
	Addition   decimal.Decimal  `json:"addition"`
}

// Matches tests floor(amount) against the clause: above Start when open ended,
// inside [Start, End) otherwise.
func (c Clause) Matches(amount decimal.Decimal) bool {
	floor := amount.Floor()
	if c.End == nil {
		return floor.GreaterThan(c.Start)
	}
	return floor.GreaterThanOrEqual(c.Start.Truncate(0)) && floor.LessThan(c.End.Truncate(0))
}

// Owed is (amount - ExcessOver) * Percent + Addition.
func (c Clause) Owed(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(c.ExcessOver).Mul(c.Percent).Add(c.Addition)
}

// ValidateClauses checks line numbers are unique, bounds are ordered
// and at most one clause is open ended.
func ValidateClauses(clauses []Clause) error {
	if len(clauses) == 0 {
		return fmt.Errorf("%w: rule based tax needs at least one clause", apperrors.ErrValidation)
	}
	seen := make(map[int]struct{}, len(clauses))
	openEnded := 0
	for _, c := range clauses {
		if _, dup := seen[c.LineNum]; dup {
			return fmt.Errorf("%w: duplicate clause line number %d", apperrors.ErrValidation, c.LineNum)
		}
		seen[c.LineNum] = struct{}{}
		if c.End == nil {
			openEnded++
			continue
		}
		if !c.End.GreaterThan(c.Start) {
			return fmt.Errorf("%w: clause %d must end after it starts", apperrors.ErrValidation, c.LineNum)
		}
	}
	if openEnded > 1 {
		return fmt.Errorf("%w: at most one open ended clause is allowed", apperrors.ErrValidation)
	}
	return nil
}

// TaxRevision versions a country's tax schedule.
type TaxRevision struct {
	RevisionID    string    `json:"revisionID"`
	Version       string    `json:"version"`
	Country       string    `json:"country"`
	DateEffective time.Time `json:"dateEffective"`
	AuditFields
}

// TaxContribution defines one tax or social contribution.
type TaxContribution struct {
	ContributionID string         `json:"contributionID"`
	Name           string         `json:"name"`
	Type           TaxType        `json:"type"`
	RevisionID     string         `json:"revisionID"`
	Period         PayPeriod      `json:"period"`
	PayBy          PayBy          `json:"payBy"`
	TakenFrom      IncomeType     `json:"takenFrom"`
	Currency       string         `json:"currency"`
	Mandatory      bool           `json:"mandatory"`
	Active         bool           `json:"active"`
	AccountID      string         `json:"accountID"`
	Calculation    TaxCalculation `json:"-"`
	AuditFields
}

// Mode returns the calculation mode, or "" if none is set.
func (t TaxContribution) Mode() CalcMode {
	if t.Calculation == nil {
		return ""
	}
	return t.Calculation.Mode()
}

// Validate checks the contribution can be evaluated by the engine.
func (t TaxContribution) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: tax name is required", apperrors.ErrValidation)
	}
	if !t.Period.Valid() {
		return fmt.Errorf("%w: invalid tax period", apperrors.ErrValidation)
	}
	if t.PayBy != PayByEmployee && t.PayBy != PayByEmployer {
		return fmt.Errorf("%w: pay by must be EMPLOYEE or EMPLOYER", apperrors.ErrValidation)
	}
	if !t.TakenFrom.IsTaxBase() {
		return fmt.Errorf("%w: tax cannot be taken from %s", apperrors.ErrValidation, t.TakenFrom)
	}
	if t.Currency == "" {
		return fmt.Errorf("%w: tax currency is required", apperrors.ErrValidation)
	}
	if t.Calculation == nil {
		return fmt.Errorf("%w: tax calculation is required", apperrors.ErrValidation)
	}
	return t.Calculation.validate()
}

// EmployeeTaxOptIn subscribes an employee to a non-mandatory contribution.
type EmployeeTaxOptIn struct {
	EmployeeID     string `json:"employeeID"`
	ContributionID string `json:"contributionID"`
	Active         bool   `json:"active"`
}
