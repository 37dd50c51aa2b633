package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PayPeriod is the cadence an income figure is expressed in.
// The numeric value is the rank used for conversion direction.
type PayPeriod int

const (
	Hourly PayPeriod = iota
	Daily
	Weekly
	BiWeekly
	Monthly
	Quarterly
	Annually
)

var payPeriodNames = [...]string{"HOURLY", "DAILY", "WEEKLY", "BI_WEEKLY", "MONTHLY", "QUARTERLY", "ANNUALLY"}

func (p PayPeriod) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PayPeriod(%d)", int(p))
	}
	return payPeriodNames[p]
}

// Valid reports whether p is one of the seven known units.
func (p PayPeriod) Valid() bool {
	return p >= Hourly && p <= Annually
}

// ParsePayPeriod parses the upper case name of a period.
func ParsePayPeriod(s string) (PayPeriod, error) {
	for i, name := range payPeriodNames {
		if strings.EqualFold(s, name) {
			return PayPeriod(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown pay period %q", apperrors.ErrValidation, s)
}

func (p PayPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PayPeriod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePayPeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// WindowStart returns the beginning of the period that ends at end.
func (p PayPeriod) WindowStart(end time.Time) time.Time {
	switch p {
	case Weekly:
		return end.AddDate(0, 0, -7)
	case BiWeekly:
		return end.AddDate(0, 0, -14)
	case Monthly:
		return monthsBack(end, 1)
	case Quarterly:
		return monthsBack(end, 3)
	case Annually:
		return monthsBack(end, 12)
	default:
		return end.AddDate(0, 0, -1)
	}
}

// monthsBack moves t back n months, clamping the day to the end of the target month
// so that Mar 31 maps to Feb 28 rather than Mar 3.
func monthsBack(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, -n, 0)
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// ConversionFactors are the pairwise multipliers of the period chain
// HOURLY -> DAILY -> WEEKLY -> MONTHLY -> ANNUALLY.
type ConversionFactors struct {
	HoursPerDay   decimal.Decimal
	DaysPerWeek   decimal.Decimal
	WeeksPerMonth decimal.Decimal
	MonthsPerYear decimal.Decimal
}

// DefaultConversionFactors returns 24 hours, 7 days, 4 weeks and 12 months.
func DefaultConversionFactors() ConversionFactors {
	return ConversionFactors{
		HoursPerDay:   decimal.NewFromInt(24),
		DaysPerWeek:   decimal.NewFromInt(7),
		WeeksPerMonth: decimal.NewFromInt(4),
		MonthsPerYear: decimal.NewFromInt(12),
	}
}

// Validate requires every factor to be positive.
func (f ConversionFactors) Validate() error {
	for name, v := range map[string]decimal.Decimal{
		"hours per day": f.HoursPerDay, "days per week": f.DaysPerWeek,
		"weeks per month": f.WeeksPerMonth, "months per year": f.MonthsPerYear,
	} {
		if !v.IsPositive() {
			return fmt.Errorf("%w: %s must be positive", apperrors.ErrValidation, name)
		}
	}
	return nil
}

// PeriodConverter converts values between pay periods. It holds no mutable state.
type PeriodConverter struct {
	factors ConversionFactors
}

// NewPeriodConverter returns a converter using the given factors.
func NewPeriodConverter(factors ConversionFactors) PeriodConverter {
	return PeriodConverter{factors: factors}
}

// DefaultPeriodConverter uses DefaultConversionFactors.
func DefaultPeriodConverter() PeriodConverter {
	return NewPeriodConverter(DefaultConversionFactors())
}

// Factors returns the multipliers the converter was built with.
func (c PeriodConverter) Factors() ConversionFactors {
	return c.factors
}

var half = decimal.NewFromFloat(0.5)
var two = decimal.NewFromInt(2)

// Convert expresses value, given per from, per to.
//
// BI_WEEKLY and QUARTERLY are not nodes of the chain. Leaving one of them doubles the
// value and continues from MONTHLY (BI_WEEKLY) or ANNUALLY (QUARTERLY); reaching one of
// them converts to MONTHLY or ANNUALLY and halves the result.
func (c PeriodConverter) Convert(value decimal.Decimal, from, to PayPeriod) decimal.Decimal {
	if from == to {
		return value
	}

	if from == BiWeekly || from == Quarterly {
		value = value.Mul(two)
		switch to {
		case Quarterly:
			return c.scale(value, Monthly, Annually).Mul(half)
		case BiWeekly:
			return c.scale(value, Annually, Monthly).Mul(half)
		}
		anchor := Annually
		if from == BiWeekly {
			anchor = Monthly
		}
		return c.scale(value, anchor, to)
	}

	switch to {
	case BiWeekly:
		return c.scale(value, from, Monthly).Mul(half)
	case Quarterly:
		return c.scale(value, from, Annually).Mul(half)
	}
	return c.scale(value, from, to)
}

// scale walks the chain between two chain nodes. Coarser targets multiply by the product
// of the intervening factors, finer targets divide by it.
func (c PeriodConverter) scale(value decimal.Decimal, from, to PayPeriod) decimal.Decimal {
	if from == to {
		return value
	}
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	product := decimal.NewFromInt(1)
	for _, step := range c.chain() {
		if step.from >= lo && step.to <= hi {
			product = product.Mul(step.factor)
		}
	}
	if from < to {
		return value.Mul(product)
	}
	return value.Div(product)
}

type chainStep struct {
	from, to PayPeriod
	factor   decimal.Decimal
}

func (c PeriodConverter) chain() []chainStep {
	return []chainStep{
		{Hourly, Daily, c.factors.HoursPerDay},
		{Daily, Weekly, c.factors.DaysPerWeek},
		{Weekly, Monthly, c.factors.WeeksPerMonth},
		{Monthly, Annually, c.factors.MonthsPerYear},
	}
}
