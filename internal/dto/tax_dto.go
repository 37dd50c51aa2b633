package dto

import (
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxRevisionRequest defines the structure for versioning a country's tax schedule.
type CreateTaxRevisionRequest struct {
	Version       string    `json:"version" binding:"required"`
	Country       string    `json:"country" binding:"required"`
	DateEffective time.Time `json:"dateEffective" binding:"required"`
}

// TaxRevisionResponse defines the data returned for a tax revision.
type TaxRevisionResponse struct {
	RevisionID    string    `json:"revisionID"`
	Version       string    `json:"version"`
	Country       string    `json:"country"`
	DateEffective time.Time `json:"dateEffective"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// ToTaxRevisionResponse converts a domain.TaxRevision to TaxRevisionResponse DTO.
func ToTaxRevisionResponse(r *domain.TaxRevision) TaxRevisionResponse {
	return TaxRevisionResponse{
		RevisionID:    r.RevisionID,
		Version:       r.Version,
		Country:       r.Country,
		DateEffective: r.DateEffective,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
	}
}

// ClauseRequest is one bracket of a RULE_BASED contribution. A missing End opens the bracket upwards.
type ClauseRequest struct {
	LineNum    int              `json:"lineNum" binding:"gte=0"`
	Start      decimal.Decimal  `json:"start"`
	End        *decimal.Decimal `json:"end,omitempty"`
	ExcessOver decimal.Decimal  `json:"excessOver"`
	Percent    decimal.Decimal  `json:"percent"`
	Addition   decimal.Decimal  `json:"addition"`
}

// CreateTaxContributionRequest defines the structure for creating a tax or social contribution.
// FixedValue is read for FIXED, PercentRate for PERCENTAGE and Clauses for RULE_BASED.
type CreateTaxContributionRequest struct {
	Name         string           `json:"name" binding:"required"`
	Type         string           `json:"type" binding:"required,oneof=INCOME SOCIAL_SECURITY OTHER"`
	RevisionID   string           `json:"revisionID,omitempty"`
	Period       string           `json:"period" binding:"required,oneof=HOURLY DAILY WEEKLY BI_WEEKLY MONTHLY QUARTERLY ANNUALLY"`
	PayBy        string           `json:"payBy" binding:"required,oneof=EMPLOYEE EMPLOYER"`
	TakenFrom    string           `json:"takenFrom" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required,len=3,uppercase"`
	Mandatory    bool             `json:"mandatory"`
	AccountID    string           `json:"accountID" binding:"required"`
	Mode         string           `json:"mode" binding:"required,oneof=FIXED PERCENTAGE RULE_BASED"`
	FixedValue   *decimal.Decimal `json:"fixedValue,omitempty"`
	PercentRate  *decimal.Decimal `json:"percentRate,omitempty"`
	Clauses      []ClauseRequest  `json:"clauses,omitempty" binding:"omitempty,dive"`
}

// TaxContributionResponse defines the data returned for a contribution.
type TaxContributionResponse struct {
	ContributionID string           `json:"contributionID"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	RevisionID     string           `json:"revisionID,omitempty"`
	Period         string           `json:"period"`
	PayBy          string           `json:"payBy"`
	TakenFrom      string           `json:"takenFrom"`
	CurrencyCode   string           `json:"currencyCode"`
	Mandatory      bool             `json:"mandatory"`
	Active         bool             `json:"active"`
	AccountID      string           `json:"accountID"`
	Mode           string           `json:"mode"`
	FixedValue     *decimal.Decimal `json:"fixedValue,omitempty"`
	PercentRate    *decimal.Decimal `json:"percentRate,omitempty"`
	Clauses        []ClauseRequest  `json:"clauses,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// ToTaxContributionResponse converts a domain.TaxContribution to TaxContributionResponse DTO.
func ToTaxContributionResponse(t *domain.TaxContribution) TaxContributionResponse {
	resp := TaxContributionResponse{
		ContributionID: t.ContributionID,
		Name:           t.Name,
		Type:           string(t.Type),
		RevisionID:     t.RevisionID,
		Period:         t.Period.String(),
		PayBy:          string(t.PayBy),
		TakenFrom:      string(t.TakenFrom),
		CurrencyCode:   t.Currency,
		Mandatory:      t.Mandatory,
		Active:         t.Active,
		AccountID:      t.AccountID,
		Mode:           string(t.Mode()),
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
	}
	switch calc := t.Calculation.(type) {
	case domain.FixedAmount:
		resp.FixedValue = &calc.Value
	case domain.Percentage:
		resp.PercentRate = &calc.Rate
	case domain.RuleBased:
		for _, c := range calc.Clauses {
			resp.Clauses = append(resp.Clauses, ClauseRequest{
				LineNum:    c.LineNum,
				Start:      c.Start,
				End:        c.End,
				ExcessOver: c.ExcessOver,
				Percent:    c.Percent,
				Addition:   c.Addition,
			})
		}
	}
	return resp
}

// OptInRequest subscribes an employee to a non-mandatory contribution. Active defaults to true.
type OptInRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
	Active     *bool  `json:"active,omitempty"`
}

// OptInResponse defines the data returned for an opt in.
type OptInResponse struct {
	EmployeeID     string `json:"employeeID"`
	ContributionID string `json:"contributionID"`
	Active         bool   `json:"active"`
}

// ToOptInResponse converts a domain.EmployeeTaxOptIn to OptInResponse DTO.
func ToOptInResponse(o *domain.EmployeeTaxOptIn) OptInResponse {
	return OptInResponse{EmployeeID: o.EmployeeID, ContributionID: o.ContributionID, Active: o.Active}
}
