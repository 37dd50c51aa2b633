package mapping

import (
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		PayrollID:    d.PayrollID,
		Kind:         string(d.Kind),
		JournalDate:  d.JournalDate,
		Description:  d.Description,
		CurrencyCode: d.CurrencyCode,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:    m.JournalID,
		PayrollID:    m.PayrollID,
		Kind:         domain.JournalKind(m.Kind),
		JournalDate:  m.JournalDate,
		Description:  m.Description,
		CurrencyCode: m.CurrencyCode,
		Status:       domain.JournalStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPosting converts a domain Posting to a model Posting
func ToModelPosting(d domain.Posting) models.Posting {
	return models.Posting{
		PostingID:    d.PostingID,
		JournalID:    d.JournalID,
		AccountID:    d.AccountID,
		LineID:       optionalString(d.LineID),
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
	}
}

// ToDomainPosting converts a model Posting to a domain Posting
func ToDomainPosting(m models.Posting) domain.Posting {
	return domain.Posting{
		PostingID:    m.PostingID,
		JournalID:    m.JournalID,
		AccountID:    m.AccountID,
		LineID:       derefString(m.LineID),
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
	}
}

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:  d.ExchangeRateID,
		ForeignCurrency: d.Foreign.Currency,
		LocalCurrency:   d.Local.Currency,
		Rate:            d.Rate(),
		DateEffective:   d.DateEffective,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	r := domain.NewExchangeRate(m.ForeignCurrency, m.LocalCurrency, m.Rate, m.DateEffective)
	r.ExchangeRateID = m.ExchangeRateID
	r.AuditFields = ToDomainAuditFields(m.AuditFields)
	return r
}
