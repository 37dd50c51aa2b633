// Package memory provides an in-process repositories.Store for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
)

type optInKey struct {
	employeeID     string
	contributionID string
}

type state struct {
	payrolls     map[string]domain.PayrollRun
	lines        map[string]domain.PayrollLine
	additions    map[string]domain.Addition
	collectors   map[string]domain.TaxContributionCollector
	deductions   map[string]domain.PayrollDeduction
	employees    map[string]domain.Employee
	positions    map[string]domain.EmployeePosition
	bankAccounts map[string]domain.BankAccount
	timesheets   map[string]domain.TimeSheetEntry
	revisions    map[string]domain.TaxRevision
	taxes        map[string]domain.TaxContribution
	taxOrder     []string
	optIns       map[optInKey]domain.EmployeeTaxOptIn
	credits      map[string]domain.Credit
	plans        map[string]domain.PaymentPlan
	rates        []domain.ExchangeRate
	journals     map[string]domain.Journal
	journalOrder []string
	postings     map[string][]domain.Posting
}

func newState() *state {
	return &state{
		payrolls:     make(map[string]domain.PayrollRun),
		lines:        make(map[string]domain.PayrollLine),
		additions:    make(map[string]domain.Addition),
		collectors:   make(map[string]domain.TaxContributionCollector),
		deductions:   make(map[string]domain.PayrollDeduction),
		employees:    make(map[string]domain.Employee),
		positions:    make(map[string]domain.EmployeePosition),
		bankAccounts: make(map[string]domain.BankAccount),
		timesheets:   make(map[string]domain.TimeSheetEntry),
		revisions:    make(map[string]domain.TaxRevision),
		taxes:        make(map[string]domain.TaxContribution),
		optIns:       make(map[optInKey]domain.EmployeeTaxOptIn),
		credits:      make(map[string]domain.Credit),
		plans:        make(map[string]domain.PaymentPlan),
		journals:     make(map[string]domain.Journal),
		postings:     make(map[string][]domain.Posting),
	}
}

func (s *state) clone() state {
	postings := make(map[string][]domain.Posting, len(s.postings))
	for k, v := range s.postings {
		postings[k] = append([]domain.Posting(nil), v...)
	}
	return state{
		payrolls:     maps.Clone(s.payrolls),
		lines:        maps.Clone(s.lines),
		additions:    maps.Clone(s.additions),
		collectors:   maps.Clone(s.collectors),
		deductions:   maps.Clone(s.deductions),
		employees:    maps.Clone(s.employees),
		positions:    maps.Clone(s.positions),
		bankAccounts: maps.Clone(s.bankAccounts),
		timesheets:   maps.Clone(s.timesheets),
		revisions:    maps.Clone(s.revisions),
		taxes:        maps.Clone(s.taxes),
		taxOrder:     append([]string(nil), s.taxOrder...),
		optIns:       maps.Clone(s.optIns),
		credits:      maps.Clone(s.credits),
		plans:        maps.Clone(s.plans),
		rates:        append([]domain.ExchangeRate(nil), s.rates...),
		journals:     maps.Clone(s.journals),
		journalOrder: append([]string(nil), s.journalOrder...),
		postings:     postings,
	}
}

// Store keeps every record in mutex guarded maps. Transactions are simulated by holding
// the lock for the duration of fn and restoring a snapshot when fn fails.
type Store struct {
	mu   *sync.Mutex
	data *state
	inTx bool
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{mu: &sync.Mutex{}, data: newState()}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTx runs fn with exclusive access to the store and rolls every write back if fn
// returns an error or panics. Nested calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) (err error) {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: s.data, inTx: true}

	defer func() {
		if r := recover(); r != nil {
			*s.data = snapshot
			err = fmt.Errorf("memory store: transaction panicked: %v", r)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		*s.data = snapshot
		return err
	}
	return nil
}
