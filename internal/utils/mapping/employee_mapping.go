package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		Name:        d.Name,
		IsActive:    d.Active,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		Active:      m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEmployeePosition converts a domain EmployeePosition to a model EmployeePosition.
// Other earnings are encoded as JSON.
func ToModelEmployeePosition(d domain.EmployeePosition) (models.EmployeePosition, error) {
	other := []byte("[]")
	if len(d.OtherEarnings) > 0 {
		b, err := json.Marshal(d.OtherEarnings)
		if err != nil {
			return models.EmployeePosition{}, fmt.Errorf("encode other earnings: %w", err)
		}
		other = b
	}
	return models.EmployeePosition{
		PositionID:    d.PositionID,
		EmployeeID:    d.EmployeeID,
		Title:         d.Title,
		WageType:      string(d.WageType),
		WagePeriod:    d.Negotiated.Period.String(),
		WageAmount:    d.Negotiated.Money.Amount,
		WageCurrency:  d.Negotiated.Money.Currency,
		OtherEarnings: other,
		State:         string(d.State),
		IsActive:      d.Active,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainEmployeePosition converts a model EmployeePosition to a domain EmployeePosition
func ToDomainEmployeePosition(m models.EmployeePosition) (domain.EmployeePosition, error) {
	period, err := domain.ParsePayPeriod(m.WagePeriod)
	if err != nil {
		return domain.EmployeePosition{}, err
	}
	var other []domain.Income
	if len(m.OtherEarnings) > 0 {
		if err := json.Unmarshal(m.OtherEarnings, &other); err != nil {
			return domain.EmployeePosition{}, fmt.Errorf("decode other earnings of position %s: %w", m.PositionID, err)
		}
	}
	return domain.EmployeePosition{
		PositionID:    m.PositionID,
		EmployeeID:    m.EmployeeID,
		Title:         m.Title,
		WageType:      domain.WageType(m.WageType),
		Negotiated:    domain.NewIncome(period, domain.NewMoney(m.WageAmount, m.WageCurrency)),
		OtherEarnings: other,
		State:         domain.PositionState(m.State),
		Active:        m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:   d.BankAccountID,
		EmployeeID:      d.EmployeeID,
		LedgerAccountID: d.LedgerAccountID,
		AccountNumber:   d.AccountNumber,
		IsCurrent:       d.Current,
		IsActive:        d.Active,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:   m.BankAccountID,
		EmployeeID:      m.EmployeeID,
		LedgerAccountID: m.LedgerAccountID,
		AccountNumber:   m.AccountNumber,
		Current:         m.IsCurrent,
		Active:          m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelTimeSheetEntry(d domain.TimeSheetEntry) models.TimeSheetEntry {
	return models.TimeSheetEntry{
		EntryID:    d.EntryID,
		EmployeeID: d.EmployeeID,
		EntryDate:  d.Date,
		ClockIn:    d.ClockIn,
		ClockOut:   d.ClockOut,
		BreakStart: d.BreakStart,
		BreakEnd:   d.BreakEnd,
	}
}

func ToDomainTimeSheetEntry(m models.TimeSheetEntry) domain.TimeSheetEntry {
	return domain.TimeSheetEntry{
		EntryID:    m.EntryID,
		EmployeeID: m.EmployeeID,
		Date:       m.EntryDate,
		ClockIn:    m.ClockIn,
		ClockOut:   m.ClockOut,
		BreakStart: m.BreakStart,
		BreakEnd:   m.BreakEnd,
	}
}
