package mapping

import (
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelPayrollRun converts a domain PayrollRun to a model PayrollRun
func ToModelPayrollRun(d domain.PayrollRun) models.PayrollRun {
	m := models.PayrollRun{
		PayrollID:        d.PayrollID,
		Number:           d.Number,
		FundingAccountID: d.FundingAccountID,
		PayPeriod:        d.PayPeriod.String(),
		PayDate:          d.PayDate,
		CurrencyCode:     d.Currency,
		TaxRevisionID:    optionalString(d.TaxRevisionID),
		Fraction:         d.Fraction,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.ExchangeRate != nil {
		m.ExchangeRateID = optionalString(d.ExchangeRate.ExchangeRateID)
	}
	return m
}

// ToDomainPayrollRun converts a model PayrollRun to a domain PayrollRun. rate is the joined
// exchange rate row, if any.
func ToDomainPayrollRun(m models.PayrollRun, rate *models.ExchangeRate) (domain.PayrollRun, error) {
	period, err := domain.ParsePayPeriod(m.PayPeriod)
	if err != nil {
		return domain.PayrollRun{}, err
	}
	d := domain.PayrollRun{
		PayrollID:        m.PayrollID,
		Number:           m.Number,
		FundingAccountID: m.FundingAccountID,
		PayPeriod:        period,
		PayDate:          m.PayDate,
		Currency:         m.CurrencyCode,
		TaxRevisionID:    derefString(m.TaxRevisionID),
		Fraction:         m.Fraction,
		Status:           domain.PayrollStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if rate != nil {
		r := ToDomainExchangeRate(*rate)
		d.ExchangeRate = &r
	}
	return d, nil
}

// ToModelPayrollLine converts a domain PayrollLine to a model PayrollLine
func ToModelPayrollLine(d domain.PayrollLine, currency string) models.PayrollLine {
	return models.PayrollLine{
		LineID:       d.LineID,
		PayrollID:    d.PayrollID,
		EmployeeID:   d.EmployeeID,
		PositionID:   d.PositionID,
		HoursWorked:  d.HoursWorked,
		CurrencyCode: currency,
		Earnings:     d.Earnings.Amount,
		ExtraIncome:  d.ExtraIncome.Amount,
		GrossIncome:  d.GrossIncome.Amount,
		IncomeTax:    d.IncomeTax.Amount,
		EmployerTax:  d.EmployerTax.Amount,
		Deductions:   d.Deductions.Amount,
		NetIncome:    d.NetIncome.Amount,
		NeedsReview:  d.NeedsReview,
		ReviewReason: optionalString(d.ReviewReason),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollLine converts a model PayrollLine to a domain PayrollLine
func ToDomainPayrollLine(m models.PayrollLine) domain.PayrollLine {
	money := func(v decimal.Decimal) domain.Money { return domain.NewMoney(v, m.CurrencyCode) }
	return domain.PayrollLine{
		LineID:       m.LineID,
		PayrollID:    m.PayrollID,
		EmployeeID:   m.EmployeeID,
		PositionID:   m.PositionID,
		HoursWorked:  m.HoursWorked,
		Earnings:     money(m.Earnings),
		ExtraIncome:  money(m.ExtraIncome),
		GrossIncome:  money(m.GrossIncome),
		IncomeTax:    money(m.IncomeTax),
		EmployerTax:  money(m.EmployerTax),
		Deductions:   money(m.Deductions),
		NetIncome:    money(m.NetIncome),
		NeedsReview:  m.NeedsReview,
		ReviewReason: derefString(m.ReviewReason),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAddition converts a domain Addition to a model Addition
func ToModelAddition(d domain.Addition) models.Addition {
	return models.Addition{
		AdditionID:   d.AdditionID,
		PayrollID:    d.PayrollID,
		LineID:       d.LineID,
		ItemName:     d.ItemName,
		AccountID:    d.AccountID,
		Amount:       d.Amount.Amount,
		CurrencyCode: d.Amount.Currency,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAddition converts a model Addition to a domain Addition
func ToDomainAddition(m models.Addition) domain.Addition {
	return domain.Addition{
		AdditionID:  m.AdditionID,
		PayrollID:   m.PayrollID,
		LineID:      m.LineID,
		ItemName:    m.ItemName,
		AccountID:   m.AccountID,
		Amount:      domain.NewMoney(m.Amount, m.CurrencyCode),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelTaxCollector(d domain.TaxContributionCollector) models.TaxCollector {
	return models.TaxCollector{
		CollectorID:    d.CollectorID,
		PayrollID:      d.PayrollID,
		LineID:         d.LineID,
		ContributionID: d.ContributionID,
		PayBy:          string(d.PayBy),
		Amount:         d.Amount.Amount,
		CurrencyCode:   d.Amount.Currency,
	}
}

func ToDomainTaxCollector(m models.TaxCollector) domain.TaxContributionCollector {
	return domain.TaxContributionCollector{
		CollectorID:    m.CollectorID,
		PayrollID:      m.PayrollID,
		LineID:         m.LineID,
		ContributionID: m.ContributionID,
		PayBy:          domain.PayBy(m.PayBy),
		Amount:         domain.NewMoney(m.Amount, m.CurrencyCode),
	}
}

func ToModelPayrollDeduction(d domain.PayrollDeduction) models.PayrollDeduction {
	return models.PayrollDeduction{
		DeductionID:  d.DeductionID,
		PayrollID:    d.PayrollID,
		LineID:       d.LineID,
		PlanID:       d.PlanID,
		CreditID:     d.CreditID,
		Amount:       d.Amount.Amount,
		CurrencyCode: d.Amount.Currency,
		Manual:       d.Manual,
		RecordedAt:   d.RecordedAt,
	}
}

func ToDomainPayrollDeduction(m models.PayrollDeduction) domain.PayrollDeduction {
	return domain.PayrollDeduction{
		DeductionID: m.DeductionID,
		PayrollID:   m.PayrollID,
		LineID:      m.LineID,
		PlanID:      m.PlanID,
		CreditID:    m.CreditID,
		Amount:      domain.NewMoney(m.Amount, m.CurrencyCode),
		Manual:      m.Manual,
		RecordedAt:  m.RecordedAt,
	}
}
