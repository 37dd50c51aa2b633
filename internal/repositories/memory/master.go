package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

func (s *Store) FindEmployeeByID(_ context.Context, employeeID string) (*domain.Employee, error) {
	defer s.lock()()
	e, ok := s.data.employees[employeeID]
	if !ok {
		return nil, apperrors.NewNotFoundError("employee " + employeeID)
	}
	return &e, nil
}

func (s *Store) FindPositionByID(_ context.Context, positionID string) (*domain.EmployeePosition, error) {
	defer s.lock()()
	p, ok := s.data.positions[positionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("position " + positionID)
	}
	return &p, nil
}

func (s *Store) FindPositionsByIDs(_ context.Context, positionIDs []string) (map[string]domain.EmployeePosition, error) {
	defer s.lock()()
	out := make(map[string]domain.EmployeePosition, len(positionIDs))
	for _, id := range positionIDs {
		if p, ok := s.data.positions[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *Store) ListBankAccountsByEmployees(_ context.Context, employeeIDs []string) (map[string][]domain.BankAccount, error) {
	defer s.lock()()
	wanted := toSet(employeeIDs)
	out := make(map[string][]domain.BankAccount)
	for _, a := range s.data.bankAccounts {
		if _, ok := wanted[a.EmployeeID]; ok {
			out[a.EmployeeID] = append(out[a.EmployeeID], a)
		}
	}
	for id := range out {
		accounts := out[id]
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].BankAccountID < accounts[j].BankAccountID })
	}
	return out, nil
}

func (s *Store) ListTimeSheetEntries(_ context.Context, employeeID string, from, to time.Time) ([]domain.TimeSheetEntry, error) {
	defer s.lock()()
	var out []domain.TimeSheetEntry
	for _, e := range s.data.timesheets {
		if e.EmployeeID != employeeID || e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out, nil
}

func (s *Store) SaveEmployee(_ context.Context, employee domain.Employee) error {
	defer s.lock()()
	if _, exists := s.data.employees[employee.EmployeeID]; exists {
		return fmt.Errorf("%w: employee %s", apperrors.ErrDuplicate, employee.EmployeeID)
	}
	s.data.employees[employee.EmployeeID] = employee
	return nil
}

func (s *Store) SavePosition(_ context.Context, position domain.EmployeePosition) error {
	defer s.lock()()
	if _, ok := s.data.employees[position.EmployeeID]; !ok {
		return apperrors.NewNotFoundError("employee " + position.EmployeeID)
	}
	s.data.positions[position.PositionID] = position
	return nil
}

func (s *Store) SaveBankAccount(_ context.Context, account domain.BankAccount) error {
	defer s.lock()()
	if _, ok := s.data.employees[account.EmployeeID]; !ok {
		return apperrors.NewNotFoundError("employee " + account.EmployeeID)
	}
	s.data.bankAccounts[account.BankAccountID] = account
	return nil
}

func (s *Store) SaveTimeSheetEntry(_ context.Context, entry domain.TimeSheetEntry) error {
	defer s.lock()()
	if _, ok := s.data.employees[entry.EmployeeID]; !ok {
		return apperrors.NewNotFoundError("employee " + entry.EmployeeID)
	}
	s.data.timesheets[entry.EntryID] = entry
	return nil
}

func (s *Store) FindRevisionByID(_ context.Context, revisionID string) (*domain.TaxRevision, error) {
	defer s.lock()()
	r, ok := s.data.revisions[revisionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("tax revision " + revisionID)
	}
	return &r, nil
}

func (s *Store) FindContributionByID(_ context.Context, contributionID string) (*domain.TaxContribution, error) {
	defer s.lock()()
	t, ok := s.data.taxes[contributionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("tax contribution " + contributionID)
	}
	return &t, nil
}

func (s *Store) ListMandatoryContributions(_ context.Context, revisionID string) ([]domain.TaxContribution, error) {
	defer s.lock()()
	var out []domain.TaxContribution
	for _, id := range s.data.taxOrder {
		t := s.data.taxes[id]
		if !t.Mandatory || !t.Active {
			continue
		}
		if revisionID != "" && t.RevisionID != revisionID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) ListOptInContributions(_ context.Context, employeeIDs []string) (map[string][]domain.TaxContribution, error) {
	defer s.lock()()
	wanted := toSet(employeeIDs)
	out := make(map[string][]domain.TaxContribution)
	for _, id := range s.data.taxOrder {
		t := s.data.taxes[id]
		for key, optIn := range s.data.optIns {
			if key.contributionID != id || !optIn.Active {
				continue
			}
			if _, ok := wanted[key.employeeID]; ok {
				out[key.employeeID] = append(out[key.employeeID], t)
			}
		}
	}
	return out, nil
}

func (s *Store) SaveRevision(_ context.Context, revision domain.TaxRevision) error {
	defer s.lock()()
	if _, exists := s.data.revisions[revision.RevisionID]; exists {
		return fmt.Errorf("%w: tax revision %s", apperrors.ErrDuplicate, revision.RevisionID)
	}
	s.data.revisions[revision.RevisionID] = revision
	return nil
}

func (s *Store) SaveContribution(_ context.Context, contribution domain.TaxContribution) error {
	defer s.lock()()
	if _, exists := s.data.taxes[contribution.ContributionID]; exists {
		return fmt.Errorf("%w: tax contribution %s", apperrors.ErrDuplicate, contribution.ContributionID)
	}
	s.data.taxes[contribution.ContributionID] = contribution
	s.data.taxOrder = append(s.data.taxOrder, contribution.ContributionID)
	return nil
}

func (s *Store) SaveOptIn(_ context.Context, optIn domain.EmployeeTaxOptIn) error {
	defer s.lock()()
	if _, ok := s.data.taxes[optIn.ContributionID]; !ok {
		return apperrors.NewNotFoundError("tax contribution " + optIn.ContributionID)
	}
	s.data.optIns[optInKey{employeeID: optIn.EmployeeID, contributionID: optIn.ContributionID}] = optIn
	return nil
}

func (s *Store) FindCreditByID(_ context.Context, creditID string) (*domain.Credit, error) {
	defer s.lock()()
	c, ok := s.data.credits[creditID]
	if !ok {
		return nil, apperrors.NewNotFoundError("credit " + creditID)
	}
	return &c, nil
}

func (s *Store) ListPlansByCredit(_ context.Context, creditID string) ([]domain.PaymentPlan, error) {
	defer s.lock()()
	var out []domain.PaymentPlan
	for _, p := range s.data.plans {
		if p.CreditID == creditID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlanID < out[j].PlanID })
	return out, nil
}

func (s *Store) ListCreditPlansByEmployees(_ context.Context, employeeIDs []string) ([]domain.CreditPlan, error) {
	defer s.lock()()
	wanted := toSet(employeeIDs)
	var out []domain.CreditPlan
	for _, p := range s.data.plans {
		c, ok := s.data.credits[p.CreditID]
		if !ok || c.Completed {
			continue
		}
		if _, ok := wanted[c.EmployeeID]; ok {
			out = append(out, domain.CreditPlan{Credit: c, Plan: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Credit.CreditID != out[j].Credit.CreditID {
			return out[i].Credit.CreditID < out[j].Credit.CreditID
		}
		return out[i].Plan.PlanID < out[j].Plan.PlanID
	})
	return out, nil
}

func (s *Store) SaveCredit(_ context.Context, credit domain.Credit) error {
	defer s.lock()()
	if _, ok := s.data.employees[credit.EmployeeID]; !ok {
		return apperrors.NewNotFoundError("employee " + credit.EmployeeID)
	}
	s.data.credits[credit.CreditID] = credit
	return nil
}

func (s *Store) SavePlan(_ context.Context, plan domain.PaymentPlan) error {
	defer s.lock()()
	if _, ok := s.data.credits[plan.CreditID]; !ok {
		return apperrors.NewNotFoundError("credit " + plan.CreditID)
	}
	s.data.plans[plan.PlanID] = plan
	return nil
}

// LockEmployeeCredits is a no-op: WithTx already holds the store lock.
func (s *Store) LockEmployeeCredits(context.Context, []string) error {
	return nil
}

func (s *Store) MarkCreditsCompleted(_ context.Context, creditIDs []string, userID string, at time.Time) error {
	defer s.lock()()
	for _, id := range creditIDs {
		c, ok := s.data.credits[id]
		if !ok {
			return apperrors.NewNotFoundError("credit " + id)
		}
		c.Completed = true
		c.Touch(userID, at)
		s.data.credits[id] = c
	}
	done := toSet(creditIDs)
	for id, p := range s.data.plans {
		if _, ok := done[p.CreditID]; ok {
			p.Status = domain.PlanCompleted
			p.Touch(userID, at)
			s.data.plans[id] = p
		}
	}
	return nil
}

func (s *Store) UpdatePlanStatuses(_ context.Context, planIDs []string, status domain.PlanStatus, userID string, at time.Time) error {
	defer s.lock()()
	for _, id := range planIDs {
		p, ok := s.data.plans[id]
		if !ok {
			return apperrors.NewNotFoundError("payment plan " + id)
		}
		p.Status = status
		p.Touch(userID, at)
		s.data.plans[id] = p
	}
	return nil
}

func (s *Store) FindExchangeRate(_ context.Context, foreignCurrency, localCurrency string) (*domain.ExchangeRate, error) {
	defer s.lock()()
	var latest *domain.ExchangeRate
	for i := range s.data.rates {
		r := s.data.rates[i]
		if r.Foreign.Currency != foreignCurrency || r.Local.Currency != localCurrency {
			continue
		}
		if latest == nil || !r.DateEffective.Before(latest.DateEffective) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate %s/%s", foreignCurrency, localCurrency))
	}
	return latest, nil
}

func (s *Store) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	defer s.lock()()
	s.data.rates = append(s.data.rates, rate)
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
