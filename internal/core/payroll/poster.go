package payroll

import (
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalEntry is a journal and its postings, ready to be written.
type JournalEntry struct {
	Journal  domain.Journal
	Postings []domain.Posting
}

// ReviewFlag marks a line the payment journal skipped.
type ReviewFlag struct {
	LineID string
	Reason string
}

// PayrollLedgerPoster turns computed lines into balanced journals.
type PayrollLedgerPoster struct {
	now func() time.Time
}

// NewPayrollLedgerPoster returns a poster stamping journals with the wall clock.
func NewPayrollLedgerPoster() PayrollLedgerPoster {
	return PayrollLedgerPoster{now: time.Now}
}

func (p PayrollLedgerPoster) newJournal(run domain.PayrollRun, kind domain.JournalKind, userID string) domain.Journal {
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	return domain.Journal{
		JournalID:    uuid.NewString(),
		PayrollID:    run.PayrollID,
		Kind:         kind,
		JournalDate:  run.PayDate,
		Description:  fmt.Sprintf("payroll %s %s", run.Number, kind),
		CurrencyCode: run.Currency,
		Status:       domain.Posted,
		AuditFields:  domain.NewAuditFields(userID, now()),
	}
}

func posting(journalID, accountID, lineID string, debit, credit decimal.Decimal) domain.Posting {
	return domain.Posting{
		PostingID:    uuid.NewString(),
		JournalID:    journalID,
		AccountID:    accountID,
		LineID:       lineID,
		DebitAmount:  debit,
		CreditAmount: credit,
	}
}

// Approval debits and credits the funding account for the total gross of the run.
// A run with no gross yields a journal without postings.
func (p PayrollLedgerPoster) Approval(run domain.PayrollRun, lines []domain.PayrollLine, userID string) (JournalEntry, error) {
	entry := JournalEntry{Journal: p.newJournal(run, domain.JournalApproval, userID)}

	gross := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(l.GrossIncome.Amount)
	}
	gross = gross.Round(domain.MonetaryScale)
	if !gross.IsPositive() {
		return entry, nil
	}

	id := entry.Journal.JournalID
	entry.Postings = []domain.Posting{
		posting(id, run.FundingAccountID, "", gross, decimal.Zero),
		posting(id, run.FundingAccountID, "", decimal.Zero, gross),
	}
	if err := accounting.ValidatePostingBalance(entry.Postings); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// Payment debits each employee's current bank ledger account and credits the funding
// account for the line's net. Lines whose employee does not have exactly one current,
// active bank account are flagged and left out of the journal.
func (p PayrollLedgerPoster) Payment(run domain.PayrollRun, lines []domain.PayrollLine, accounts map[string][]domain.BankAccount, userID string) (JournalEntry, []ReviewFlag, error) {
	entry := JournalEntry{Journal: p.newJournal(run, domain.JournalPayment, userID)}
	id := entry.Journal.JournalID

	var flags []ReviewFlag
	for _, l := range lines {
		bank, err := domain.CurrentBankAccount(accounts[l.EmployeeID])
		if err != nil {
			flags = append(flags, ReviewFlag{LineID: l.LineID, Reason: err.Error()})
			continue
		}
		net := l.NetIncome.Amount.Round(domain.MonetaryScale)
		if !net.IsPositive() {
			continue
		}
		entry.Postings = append(entry.Postings,
			posting(id, bank.LedgerAccountID, l.LineID, net, decimal.Zero),
			posting(id, run.FundingAccountID, l.LineID, decimal.Zero, net),
		)
	}

	if len(entry.Postings) > 0 {
		if err := accounting.ValidatePostingBalance(entry.Postings); err != nil {
			return JournalEntry{}, nil, err
		}
	}
	return entry, flags, nil
}
