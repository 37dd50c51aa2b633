package repositories

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// LedgerReader defines read operations for posted journals
type LedgerReader interface {
	// ListJournalsByPayroll retrieves the journals written for a run, oldest first.
	ListJournalsByPayroll(ctx context.Context, payrollID string) ([]domain.Journal, error)

	// FindPostingsByJournalIDs retrieves postings for multiple journals, grouped by journal ID.
	FindPostingsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Posting, error)
}

// LedgerWriter defines write operations for posted journals
type LedgerWriter interface {
	// SaveJournal persists a journal and its postings.
	SaveJournal(ctx context.Context, journal domain.Journal, postings []domain.Posting) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
