package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to domain.PayrollStatus
		allowed  bool
	}{
		{domain.PayrollCreated, domain.PayrollReview, true},
		{domain.PayrollReview, domain.PayrollClosed, true},
		{domain.PayrollClosed, domain.PayrollApproved, true},
		{domain.PayrollApproved, domain.PayrollPaid, true},
		{domain.PayrollCreated, domain.PayrollClosed, false},
		{domain.PayrollClosed, domain.PayrollReview, false},
		{domain.PayrollPaid, domain.PayrollPaid, false},
		{domain.PayrollStatus("DRAFT"), domain.PayrollReview, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	_, ok := domain.PayrollPaid.Next()
	assert.False(t, ok)
}

func TestPayrollStatus_IsEditable(t *testing.T) {
	assert.True(t, domain.PayrollCreated.IsEditable())
	assert.True(t, domain.PayrollReview.IsEditable())
	assert.False(t, domain.PayrollClosed.IsEditable())
	assert.False(t, domain.PayrollPaid.IsEditable())
}

func TestParsePayrollStatus(t *testing.T) {
	st, err := domain.ParsePayrollStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollApproved, st)

	_, err = domain.ParsePayrollStatus("approved")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPayrollRun_Validate(t *testing.T) {
	run := domain.PayrollRun{FundingAccountID: "acc", PayPeriod: domain.Monthly, Currency: "USD", PayDate: time.Now()}
	assert.NoError(t, run.Validate())

	tooBig := decimal.NewFromInt(2)
	withFraction := run
	withFraction.Fraction = &tooBig
	assert.ErrorIs(t, withFraction.Validate(), apperrors.ErrValidation)

	unrelated := domain.NewExchangeRate("EUR", "DOP", decimal.NewFromInt(60), time.Now())
	withRate := run
	withRate.ExchangeRate = &unrelated
	assert.ErrorIs(t, withRate.Validate(), apperrors.ErrValidation)
}

func TestCurrentBankAccount(t *testing.T) {
	_, err := domain.CurrentBankAccount(nil)
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousBankAccount)

	accounts := []domain.BankAccount{
		{BankAccountID: "a", Current: true, Active: true},
		{BankAccountID: "b", Current: true, Active: false},
		{BankAccountID: "c", Current: false, Active: true},
	}
	got, err := domain.CurrentBankAccount(accounts)
	require.NoError(t, err)
	assert.Equal(t, "a", got.BankAccountID)

	accounts[2].Current = true
	_, err = domain.CurrentBankAccount(accounts)
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousBankAccount)
}

func TestCredit_BalanceAndValidate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	credit := domain.Credit{
		Principal:        usd(1000),
		InterestRate:     dec("0.05"),
		Date:             now.AddDate(0, 0, -1),
		PaymentStartDate: now,
	}
	require.NoError(t, credit.Validate(now))
	assert.Equal(t, "50", credit.Interest().Amount.String())

	balance, err := credit.Balance([]domain.Money{usd(100), usd(200)})
	require.NoError(t, err)
	assert.Equal(t, "750", balance.Amount.String())

	future := credit
	future.Date = now.AddDate(0, 0, 2)
	assert.ErrorIs(t, future.Validate(now), apperrors.ErrValidation)

	late := credit
	late.PaymentStartDate = now.AddDate(0, 0, -3)
	assert.ErrorIs(t, late.Validate(now), apperrors.ErrValidation)
}

func TestTimeSheetEntry_WorkedHours(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)
	bs := in.Add(4 * time.Hour)
	be := bs.Add(time.Hour)
	entry := domain.TimeSheetEntry{ClockIn: in, ClockOut: out, BreakStart: &bs, BreakEnd: &be}

	require.NoError(t, entry.Validate())
	assert.Equal(t, "8", entry.WorkedHours().String())
	assert.Equal(t, "16", domain.SumWorkedHours([]domain.TimeSheetEntry{entry, entry}).String())

	entry.BreakEnd = nil
	assert.ErrorIs(t, entry.Validate(), apperrors.ErrValidation)
}
