package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeRate records how much of the local currency one unit of the foreign currency buys.
// Foreign.Amount is 1 for rates created through NewExchangeRate.
type ExchangeRate struct {
	ExchangeRateID string    `json:"exchangeRateID"`
	Foreign        Money     `json:"foreign"`
	Local          Money     `json:"local"`
	DateEffective  time.Time `json:"dateEffective"`
	AuditFields
}

// NewExchangeRate builds a rate of one foreignCurrency to rate localCurrency.
func NewExchangeRate(foreignCurrency, localCurrency string, rate decimal.Decimal, date time.Time) ExchangeRate {
	return ExchangeRate{
		Foreign:       NewMoney(decimal.NewFromInt(1), foreignCurrency),
		Local:         NewMoney(rate, localCurrency),
		DateEffective: date,
	}
}

// Validate checks the pair is distinct and both sides are positive.
func (r ExchangeRate) Validate() error {
	if r.Foreign.Currency == "" || r.Local.Currency == "" {
		return fmt.Errorf("%w: exchange rate currencies are required", apperrors.ErrValidation)
	}
	if r.Foreign.Currency == r.Local.Currency {
		return fmt.Errorf("%w: foreign and local currencies cannot be the same", apperrors.ErrValidation)
	}
	if !r.Foreign.Amount.IsPositive() || !r.Local.Amount.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	return nil
}

// Exchange converts m across the pair. A foreign amount is multiplied into the local
// currency; a local amount is divided back into the foreign currency.
func (r ExchangeRate) Exchange(m Money) (Money, error) {
	switch m.Currency {
	case r.Foreign.Currency:
		return Money{Amount: m.Amount.Mul(r.perForeignUnit()), Currency: r.Local.Currency}, nil
	case r.Local.Currency:
		return Money{Amount: m.Amount.Div(r.perForeignUnit()), Currency: r.Foreign.Currency}, nil
	}
	return Money{}, fmt.Errorf("%w: rate %s/%s cannot exchange %s",
		apperrors.ErrUnsupportedCurrency, r.Foreign.Currency, r.Local.Currency, m.Currency)
}

// Rate is the amount of local currency one foreign unit buys.
func (r ExchangeRate) Rate() decimal.Decimal {
	return r.perForeignUnit()
}

func (r ExchangeRate) perForeignUnit() decimal.Decimal {
	if r.Foreign.Amount.IsZero() || r.Foreign.Amount.Equal(decimal.NewFromInt(1)) {
		return r.Local.Amount
	}
	return r.Local.Amount.Div(r.Foreign.Amount)
}

// Inverted returns the same rate quoted from the other side.
func (r ExchangeRate) Inverted() ExchangeRate {
	inv := r
	inv.Foreign = NewMoney(decimal.NewFromInt(1), r.Local.Currency)
	inv.Local = NewMoney(decimal.NewFromInt(1).Div(r.perForeignUnit()), r.Foreign.Currency)
	return inv
}

// Involves reports whether the rate covers both currencies.
func (r ExchangeRate) Involves(a, b string) bool {
	return (r.Foreign.Currency == a && r.Local.Currency == b) ||
		(r.Foreign.Currency == b && r.Local.Currency == a)
}

// ConvertMoney takes m into target, routing through rate when the currencies differ.
// A nil rate or one that does not cover the pair is ErrMissingExchangeRate.
func ConvertMoney(m Money, target string, rate *ExchangeRate) (Money, error) {
	if m.Currency == target {
		return m, nil
	}
	if rate == nil || !rate.Involves(m.Currency, target) {
		return Money{}, fmt.Errorf("%w: %s to %s", apperrors.ErrMissingExchangeRate, m.Currency, target)
	}
	return rate.Exchange(m)
}

// ConvertIncome is ConvertMoney applied to an Income, keeping its period.
func ConvertIncome(i Income, target string, rate *ExchangeRate) (Income, error) {
	m, err := ConvertMoney(i.Money, target, rate)
	if err != nil {
		return Income{}, err
	}
	return Income{Period: i.Period, Money: m}, nil
}
