package payroll_test

import (
	"testing"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	"github.com/SscSPs/payroll_engine/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postedLines() []domain.PayrollLine {
	return []domain.PayrollLine{
		{LineID: "l1", EmployeeID: "e1", GrossIncome: usd("2000"), NetIncome: usd("1750")},
		{LineID: "l2", EmployeeID: "e2", GrossIncome: usd("1000"), NetIncome: usd("900")},
		{LineID: "l3", EmployeeID: "e3", GrossIncome: usd("500"), NetIncome: usd("450")},
	}
}

func TestLedgerPoster_Approval(t *testing.T) {
	run := scenarioInput().Run
	entry, err := payroll.NewPayrollLedgerPoster().Approval(run, postedLines(), "op")
	require.NoError(t, err)

	assert.Equal(t, domain.JournalApproval, entry.Journal.Kind)
	assert.Equal(t, run.PayrollID, entry.Journal.PayrollID)
	require.Len(t, entry.Postings, 2)
	for _, p := range entry.Postings {
		assert.Equal(t, "funding", p.AccountID)
		assert.Equal(t, entry.Journal.JournalID, p.JournalID)
	}
	assert.Equal(t, "3500", entry.Postings[0].DebitAmount.String())
	assert.Equal(t, "3500", entry.Postings[1].CreditAmount.String())
	assert.NoError(t, accounting.ValidatePostingBalance(entry.Postings))
}

func TestLedgerPoster_ApprovalOfEmptyRun(t *testing.T) {
	entry, err := payroll.NewPayrollLedgerPoster().Approval(scenarioInput().Run, nil, "op")
	require.NoError(t, err)
	assert.Empty(t, entry.Postings)
}

func TestLedgerPoster_PaymentFlagsAmbiguousAccounts(t *testing.T) {
	run := scenarioInput().Run
	accounts := map[string][]domain.BankAccount{
		"e1": {{BankAccountID: "b1", LedgerAccountID: "bank-e1", Current: true, Active: true}},
		"e2": {
			{BankAccountID: "b2", LedgerAccountID: "bank-e2a", Current: true, Active: true},
			{BankAccountID: "b3", LedgerAccountID: "bank-e2b", Current: true, Active: true},
		},
	}

	entry, flags, err := payroll.NewPayrollLedgerPoster().Payment(run, postedLines(), accounts, "op")
	require.NoError(t, err)

	require.Len(t, flags, 2)
	assert.Equal(t, "l2", flags[0].LineID)
	assert.Equal(t, "l3", flags[1].LineID)
	assert.NotEmpty(t, flags[0].Reason)

	require.Len(t, entry.Postings, 2)
	assert.Equal(t, "bank-e1", entry.Postings[0].AccountID)
	assert.Equal(t, "1750", entry.Postings[0].DebitAmount.String())
	assert.Equal(t, "funding", entry.Postings[1].AccountID)
	assert.Equal(t, "1750", entry.Postings[1].CreditAmount.String())
	assert.Equal(t, "l1", entry.Postings[0].LineID)
	assert.NoError(t, accounting.ValidatePostingBalance(entry.Postings))
}
