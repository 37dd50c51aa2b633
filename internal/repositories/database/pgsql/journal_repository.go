package pgsql

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/SscSPs/payroll_engine/internal/utils/accounting"
	"github.com/SscSPs/payroll_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const journalColumns = `journal_id, payroll_id, kind, journal_date, description, currency_code, status,
	created_at, created_by, last_updated_at, last_updated_by`

const postingColumns = `posting_id, journal_id, account_id, line_id, debit_amount, credit_amount`

// SaveJournal inserts a journal and its postings in one batch. Unbalanced postings are
// rejected before anything is sent.
func (s *Store) SaveJournal(ctx context.Context, journal domain.Journal, postings []domain.Posting) error {
	if len(postings) > 0 {
		if err := accounting.ValidatePostingBalance(postings); err != nil {
			return err
		}
	}

	m := mapping.ToModelJournal(journal)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.JournalID, m.PayrollID, m.Kind, m.JournalDate, m.Description, m.CurrencyCode, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for _, p := range postings {
		mp := mapping.ToModelPosting(p)
		batch.Queue(`INSERT INTO postings (`+postingColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			mp.PostingID, mp.JournalID, mp.AccountID, mp.LineID, mp.DebitAmount, mp.CreditAmount,
		)
	}
	return s.sendBatch(ctx, batch, "journal "+journal.JournalID)
}

func (s *Store) ListJournalsByPayroll(ctx context.Context, payrollID string) ([]domain.Journal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+journalColumns+` FROM journals
		WHERE payroll_id = $1 ORDER BY created_at, journal_id`, payrollID)
	if err != nil {
		return nil, storeError(err, "journals of payroll "+payrollID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, storeError(err, "journals of payroll "+payrollID)
	}
	out := make([]domain.Journal, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainJournal(m))
	}
	return out, nil
}

func (s *Store) FindPostingsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Posting, error) {
	out := make(map[string][]domain.Posting, len(journalIDs))
	if len(journalIDs) == 0 {
		return out, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+postingColumns+` FROM postings
		WHERE journal_id = ANY($1) ORDER BY journal_id, posting_id`, journalIDs)
	if err != nil {
		return nil, storeError(err, "postings")
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Posting])
	if err != nil {
		return nil, storeError(err, "postings")
	}
	for _, m := range found {
		out[m.JournalID] = append(out[m.JournalID], mapping.ToDomainPosting(m))
	}
	return out, nil
}
