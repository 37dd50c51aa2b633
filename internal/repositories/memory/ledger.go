package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

func (s *Store) SaveJournal(_ context.Context, journal domain.Journal, postings []domain.Posting) error {
	defer s.lock()()
	if _, exists := s.data.journals[journal.JournalID]; exists {
		return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, journal.JournalID)
	}
	s.data.journals[journal.JournalID] = journal
	s.data.journalOrder = append(s.data.journalOrder, journal.JournalID)
	s.data.postings[journal.JournalID] = append([]domain.Posting(nil), postings...)
	return nil
}

func (s *Store) ListJournalsByPayroll(_ context.Context, payrollID string) ([]domain.Journal, error) {
	defer s.lock()()
	var out []domain.Journal
	for _, id := range s.data.journalOrder {
		if j := s.data.journals[id]; j.PayrollID == payrollID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *Store) FindPostingsByJournalIDs(_ context.Context, journalIDs []string) (map[string][]domain.Posting, error) {
	defer s.lock()()
	out := make(map[string][]domain.Posting, len(journalIDs))
	for _, id := range journalIDs {
		if p, ok := s.data.postings[id]; ok {
			out[id] = append([]domain.Posting(nil), p...)
		}
	}
	return out, nil
}

type groupKey struct {
	name      string
	accountID string
}

// groupBuilder accumulates SummaryGroups in first-seen order.
type groupBuilder struct {
	order  []groupKey
	groups map[groupKey]*domain.SummaryGroup
}

func newGroupBuilder() *groupBuilder {
	return &groupBuilder{groups: make(map[groupKey]*domain.SummaryGroup)}
}

func (b *groupBuilder) add(key, name, accountID string, amount domain.Money) error {
	k := groupKey{name: key, accountID: accountID}
	g, ok := b.groups[k]
	if !ok {
		g = &domain.SummaryGroup{Key: key, Name: name, AccountID: accountID, Total: domain.ZeroMoney(amount.Currency)}
		b.groups[k] = g
		b.order = append(b.order, k)
	}
	total, err := g.Total.Add(amount)
	if err != nil {
		return err
	}
	g.Total = total
	g.Count++
	return nil
}

func (b *groupBuilder) result() []domain.SummaryGroup {
	out := make([]domain.SummaryGroup, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, *b.groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) SummarizeTaxes(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error) {
	rows, err := s.ListCollectorsByPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	defer s.lock()()
	b := newGroupBuilder()
	for _, c := range rows {
		t := s.data.taxes[c.ContributionID]
		if err := b.add(c.ContributionID, t.Name, t.AccountID, c.Amount); err != nil {
			return nil, err
		}
	}
	return b.result(), nil
}

func (s *Store) SummarizeAdditions(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error) {
	rows, err := s.ListAdditionsByPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	b := newGroupBuilder()
	for _, a := range rows {
		if err := b.add(a.ItemName, a.ItemName, a.AccountID, a.Amount); err != nil {
			return nil, err
		}
	}
	return b.result(), nil
}

func (s *Store) SummarizeDeductions(ctx context.Context, payrollID string) ([]domain.SummaryGroup, error) {
	rows, err := s.ListDeductionsByPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	defer s.lock()()
	b := newGroupBuilder()
	for _, d := range rows {
		c := s.data.credits[d.CreditID]
		if err := b.add(c.Item, c.Item, c.AccountID, d.Amount); err != nil {
			return nil, err
		}
	}
	return b.result(), nil
}
