package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalKind names the payroll event a journal records.
type JournalKind string

const (
	JournalApproval JournalKind = "APPROVAL"
	JournalPayment  JournalKind = "PAYMENT"
)

// Journal groups the balanced postings written for one payroll transition.
type Journal struct {
	JournalID    string        `json:"journalID"`
	PayrollID    string        `json:"payrollID"`
	Kind         JournalKind   `json:"kind"`
	JournalDate  time.Time     `json:"journalDate"`
	Description  string        `json:"description"`
	CurrencyCode string        `json:"currencyCode"`
	Status       JournalStatus `json:"status"`
	AuditFields
}

// Posting is one side of a double entry. Exactly one of DebitAmount or CreditAmount is non zero.
type Posting struct {
	PostingID    string          `json:"postingID"`
	JournalID    string          `json:"journalID"`
	AccountID    string          `json:"accountID"`
	LineID       string          `json:"lineID,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}
