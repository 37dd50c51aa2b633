package domain

import (
	"fmt"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// IncomeType names the income figure a tax or deduction is taken from.
type IncomeType string

const (
	IncomeSalary    IncomeType = "SALARY"
	IncomeGross     IncomeType = "GROSS"
	IncomeNet       IncomeType = "NET"
	IncomeTakeHome  IncomeType = "TAKE_HOME"
	IncomeExtra     IncomeType = "EXTRA"
	IncomeDeduction IncomeType = "DEDUCTION"
	IncomeOther     IncomeType = "OTHER"
)

// IsTaxBase reports whether a tax can be computed from this income figure.
func (t IncomeType) IsTaxBase() bool {
	switch t {
	case IncomeSalary, IncomeGross, IncomeNet, IncomeExtra:
		return true
	}
	return false
}

// Income is an amount of money earned per pay period.
type Income struct {
	Period PayPeriod `json:"period"`
	Money  Money     `json:"money"`
}

// NewIncome builds an Income.
func NewIncome(period PayPeriod, money Money) Income {
	return Income{Period: period, Money: money}
}

// ZeroIncome returns a zero income in period and currency.
func ZeroIncome(period PayPeriod, currency string) Income {
	return Income{Period: period, Money: ZeroMoney(currency)}
}

func (i Income) samePeriod(other Income) error {
	if i.Period != other.Period {
		return fmt.Errorf("%w: periods %s and %s", apperrors.ErrCurrencyMismatch, i.Period, other.Period)
	}
	return nil
}

// Add requires equal periods; there is no implicit conversion.
func (i Income) Add(other Income) (Income, error) {
	if err := i.samePeriod(other); err != nil {
		return Income{}, err
	}
	m, err := i.Money.Add(other.Money)
	if err != nil {
		return Income{}, err
	}
	return Income{Period: i.Period, Money: m}, nil
}

// Sub requires equal periods; there is no implicit conversion.
func (i Income) Sub(other Income) (Income, error) {
	if err := i.samePeriod(other); err != nil {
		return Income{}, err
	}
	m, err := i.Money.Sub(other.Money)
	if err != nil {
		return Income{}, err
	}
	return Income{Period: i.Period, Money: m}, nil
}

// Mul scales the income by a scalar, keeping its period.
func (i Income) Mul(factor decimal.Decimal) Income {
	return Income{Period: i.Period, Money: i.Money.Mul(factor)}
}

// ConvertTo expresses the income per target period.
func (i Income) ConvertTo(target PayPeriod, conv PeriodConverter) Income {
	return Income{
		Period: target,
		Money:  Money{Amount: conv.Convert(i.Money.Amount, i.Period, target), Currency: i.Money.Currency},
	}
}

// Compare converts other into i's period before comparing amounts.
func (i Income) Compare(other Income, conv PeriodConverter) (int, error) {
	return i.Money.Cmp(other.ConvertTo(i.Period, conv).Money)
}

// Round rounds the amount to the monetary scale.
func (i Income) Round() Income {
	return Income{Period: i.Period, Money: i.Money.Round()}
}

func (i Income) String() string {
	return fmt.Sprintf("%s/%s", i.Money, i.Period)
}
