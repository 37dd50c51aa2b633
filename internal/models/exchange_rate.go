package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table. Rate is the local amount for one
// unit of the foreign currency.
type ExchangeRate struct {
	ExchangeRateID  string          `db:"exchange_rate_id"`
	ForeignCurrency string          `db:"foreign_currency_code"`
	LocalCurrency   string          `db:"local_currency_code"`
	Rate            decimal.Decimal `db:"rate"`
	DateEffective   time.Time       `db:"date_effective"`
	AuditFields
}
