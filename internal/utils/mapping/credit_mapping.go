package mapping

import (
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
)

// ToModelCredit converts a domain Credit to a model Credit
func ToModelCredit(d domain.Credit) models.Credit {
	return models.Credit{
		CreditID:         d.CreditID,
		EmployeeID:       d.EmployeeID,
		Item:             d.Item,
		Principal:        d.Principal.Amount,
		CurrencyCode:     d.Principal.Currency,
		InterestRate:     d.InterestRate,
		CreditDate:       d.Date,
		PaymentStartDate: d.PaymentStartDate,
		AccountID:        d.AccountID,
		IsCompleted:      d.Completed,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCredit converts a model Credit to a domain Credit
func ToDomainCredit(m models.Credit) domain.Credit {
	return domain.Credit{
		CreditID:         m.CreditID,
		EmployeeID:       m.EmployeeID,
		Item:             m.Item,
		Principal:        domain.NewMoney(m.Principal, m.CurrencyCode),
		InterestRate:     m.InterestRate,
		Date:             m.CreditDate,
		PaymentStartDate: m.PaymentStartDate,
		AccountID:        m.AccountID,
		Completed:        m.IsCompleted,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentPlan converts a domain PaymentPlan to a model PaymentPlan
func ToModelPaymentPlan(d domain.PaymentPlan) models.PaymentPlan {
	return models.PaymentPlan{
		PlanID:      d.PlanID,
		CreditID:    d.CreditID,
		Name:        d.Name,
		DeductFrom:  string(d.DeductFrom),
		Percent:     d.Percent,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentPlan converts a model PaymentPlan to a domain PaymentPlan
func ToDomainPaymentPlan(m models.PaymentPlan) domain.PaymentPlan {
	return domain.PaymentPlan{
		PlanID:      m.PlanID,
		CreditID:    m.CreditID,
		Name:        m.Name,
		DeductFrom:  domain.IncomeType(m.DeductFrom),
		Percent:     m.Percent,
		Status:      domain.PlanStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
