package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a row of the journals table.
type Journal struct {
	JournalID    string    `db:"journal_id"`
	PayrollID    string    `db:"payroll_id"`
	Kind         string    `db:"kind"`
	JournalDate  time.Time `db:"journal_date"`
	Description  string    `db:"description"`
	CurrencyCode string    `db:"currency_code"`
	Status       string    `db:"status"`
	AuditFields
}

// Posting is a row of the postings table.
type Posting struct {
	PostingID    string          `db:"posting_id"`
	JournalID    string          `db:"journal_id"`
	AccountID    string          `db:"account_id"`
	LineID       *string         `db:"line_id"` // Nullable
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
}
