package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRevision is a row of the tax_revisions table.
type TaxRevision struct {
	RevisionID    string    `db:"revision_id"`
	Version       string    `db:"version"`
	Country       string    `db:"country"`
	DateEffective time.Time `db:"date_effective"`
	AuditFields
}

// TaxContribution is a row of the tax_contributions table. CalcMode selects which of
// FixedValue or PercentRate is set; rule based contributions keep their clauses in
// tax_clauses.
type TaxContribution struct {
	ContributionID string           `db:"contribution_id"`
	Name           string           `db:"name"`
	TaxType        string           `db:"tax_type"`
	RevisionID     *string          `db:"revision_id"`
	Period         string           `db:"period"`
	PayBy          string           `db:"pay_by"`
	TakenFrom      string           `db:"taken_from"`
	CurrencyCode   string           `db:"currency_code"`
	IsMandatory    bool             `db:"is_mandatory"`
	IsActive       bool             `db:"is_active"`
	AccountID      string           `db:"account_id"`
	CalcMode       string           `db:"calc_mode"`
	FixedValue     *decimal.Decimal `db:"fixed_value"`
	PercentRate    *decimal.Decimal `db:"percent_rate"`
	AuditFields
}

// TaxClause is a row of the tax_clauses table.
type TaxClause struct {
	ContributionID string           `db:"contribution_id"`
	LineNum        int              `db:"line_num"`
	StartAmount    decimal.Decimal  `db:"start_amount"`
	EndAmount      *decimal.Decimal `db:"end_amount"` // Nullable: open ended
	ExcessOver     decimal.Decimal  `db:"excess_over"`
	Percent        decimal.Decimal  `db:"percent"`
	Addition       decimal.Decimal  `db:"addition"`
}
