package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/utils/pagination"
)

func (s *Store) FindPayrollByID(_ context.Context, payrollID string) (*domain.PayrollRun, error) {
	defer s.lock()()
	run, ok := s.data.payrolls[payrollID]
	if !ok {
		return nil, apperrors.NewNotFoundError("payroll " + payrollID)
	}
	return &run, nil
}

// FindPayrollForUpdate needs no row lock: a transaction already holds the whole store.
func (s *Store) FindPayrollForUpdate(ctx context.Context, payrollID string) (*domain.PayrollRun, error) {
	return s.FindPayrollByID(ctx, payrollID)
}

func (s *Store) ListPayrolls(_ context.Context, limit int, nextToken *string) ([]domain.PayrollRun, *string, error) {
	defer s.lock()()

	runs := make([]domain.PayrollRun, 0, len(s.data.payrolls))
	for _, r := range s.data.payrolls {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].PayDate.Equal(runs[j].PayDate) {
			return runs[i].PayDate.After(runs[j].PayDate)
		}
		return runs[i].PayrollID > runs[j].PayrollID
	})

	if nextToken != nil && *nextToken != "" {
		afterDate, afterID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := len(runs)
		for i, r := range runs {
			if r.PayDate.Before(afterDate) || (r.PayDate.Equal(afterDate) && r.PayrollID < afterID) {
				start = i
				break
			}
		}
		runs = runs[start:]
	}

	if limit <= 0 || len(runs) <= limit {
		return runs, nil, nil
	}
	page := runs[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(last.PayDate, last.PayrollID)
	return page, &token, nil
}

func (s *Store) SavePayroll(_ context.Context, run domain.PayrollRun) error {
	defer s.lock()()
	if _, exists := s.data.payrolls[run.PayrollID]; exists {
		return fmt.Errorf("%w: payroll %s", apperrors.ErrDuplicate, run.PayrollID)
	}
	for _, other := range s.data.payrolls {
		if other.Number == run.Number {
			return fmt.Errorf("%w: payroll number %s", apperrors.ErrDuplicate, run.Number)
		}
	}
	s.data.payrolls[run.PayrollID] = run
	return nil
}

func (s *Store) UpdatePayrollStatus(_ context.Context, payrollID string, status domain.PayrollStatus, userID string, at time.Time) error {
	defer s.lock()()
	run, ok := s.data.payrolls[payrollID]
	if !ok {
		return apperrors.NewNotFoundError("payroll " + payrollID)
	}
	run.Status = status
	run.Touch(userID, at)
	s.data.payrolls[payrollID] = run
	return nil
}

func (s *Store) FindLineByID(_ context.Context, payrollID, lineID string) (*domain.PayrollLine, error) {
	defer s.lock()()
	line, ok := s.data.lines[lineID]
	if !ok || line.PayrollID != payrollID {
		return nil, apperrors.NewNotFoundError("payroll line " + lineID)
	}
	return &line, nil
}

func (s *Store) ListLinesByPayroll(_ context.Context, payrollID string) ([]domain.PayrollLine, error) {
	defer s.lock()()
	var out []domain.PayrollLine
	for _, l := range s.data.lines {
		if l.PayrollID == payrollID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}

func (s *Store) ListAdditionsByPayroll(_ context.Context, payrollID string) ([]domain.Addition, error) {
	defer s.lock()()
	var out []domain.Addition
	for _, a := range s.data.additions {
		if a.PayrollID == payrollID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdditionID < out[j].AdditionID })
	return out, nil
}

func (s *Store) SaveLine(_ context.Context, line domain.PayrollLine) error {
	defer s.lock()()
	if _, ok := s.data.payrolls[line.PayrollID]; !ok {
		return apperrors.NewNotFoundError("payroll " + line.PayrollID)
	}
	for _, l := range s.data.lines {
		if l.LineID == line.LineID || (l.PayrollID == line.PayrollID && l.PositionID == line.PositionID) {
			return fmt.Errorf("%w: position %s is already on payroll %s", apperrors.ErrDuplicate, line.PositionID, line.PayrollID)
		}
	}
	s.data.lines[line.LineID] = line
	return nil
}

func (s *Store) UpdateLineFigures(_ context.Context, lines []domain.PayrollLine) error {
	defer s.lock()()
	for _, l := range lines {
		if _, ok := s.data.lines[l.LineID]; !ok {
			return apperrors.NewNotFoundError("payroll line " + l.LineID)
		}
	}
	for _, l := range lines {
		s.data.lines[l.LineID] = l
	}
	return nil
}

func (s *Store) SaveAddition(_ context.Context, addition domain.Addition) error {
	defer s.lock()()
	if _, ok := s.data.lines[addition.LineID]; !ok {
		return apperrors.NewNotFoundError("payroll line " + addition.LineID)
	}
	s.data.additions[addition.AdditionID] = addition
	return nil
}

func (s *Store) DeleteAddition(_ context.Context, lineID, additionID string) error {
	defer s.lock()()
	a, ok := s.data.additions[additionID]
	if !ok || a.LineID != lineID {
		return apperrors.NewNotFoundError("addition " + additionID)
	}
	delete(s.data.additions, additionID)
	return nil
}

func (s *Store) ListCollectorsByPayroll(_ context.Context, payrollID string) ([]domain.TaxContributionCollector, error) {
	defer s.lock()()
	var out []domain.TaxContributionCollector
	for _, c := range s.data.collectors {
		if c.PayrollID == payrollID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LineID != out[j].LineID {
			return out[i].LineID < out[j].LineID
		}
		return out[i].ContributionID < out[j].ContributionID
	})
	return out, nil
}

func (s *Store) ListDeductionsByPayroll(_ context.Context, payrollID string) ([]domain.PayrollDeduction, error) {
	defer s.lock()()
	var out []domain.PayrollDeduction
	for _, d := range s.data.deductions {
		if d.PayrollID == payrollID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LineID != out[j].LineID {
			return out[i].LineID < out[j].LineID
		}
		return out[i].PlanID < out[j].PlanID
	})
	return out, nil
}

func (s *Store) PaymentHistory(_ context.Context, creditIDs []string, excludePayrollID string) (map[string][]domain.Money, error) {
	defer s.lock()()
	wanted := make(map[string]struct{}, len(creditIDs))
	for _, id := range creditIDs {
		wanted[id] = struct{}{}
	}

	rows := make([]domain.PayrollDeduction, 0)
	for _, d := range s.data.deductions {
		if _, ok := wanted[d.CreditID]; !ok || d.PayrollID == excludePayrollID {
			continue
		}
		run, ok := s.data.payrolls[d.PayrollID]
		if !ok || run.Status.Rank() < domain.PayrollClosed.Rank() {
			continue
		}
		rows = append(rows, d)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RecordedAt.Before(rows[j].RecordedAt) })

	out := make(map[string][]domain.Money)
	for _, d := range rows {
		out[d.CreditID] = append(out[d.CreditID], d.Amount)
	}
	return out, nil
}

func (s *Store) clearAutomaticLocked(payrollID string) {
	for id, c := range s.data.collectors {
		if c.PayrollID == payrollID {
			delete(s.data.collectors, id)
		}
	}
	for id, d := range s.data.deductions {
		if d.PayrollID == payrollID && !d.Manual {
			delete(s.data.deductions, id)
		}
	}
}

func (s *Store) ReplaceAuditRows(_ context.Context, payrollID string, collectors []domain.TaxContributionCollector, deductions []domain.PayrollDeduction) error {
	defer s.lock()()
	s.clearAutomaticLocked(payrollID)
	kept := make(map[string]struct{}, len(deductions))
	for _, d := range deductions {
		kept[d.DeductionID] = struct{}{}
	}
	for id, d := range s.data.deductions {
		if _, ok := kept[id]; !ok && d.PayrollID == payrollID && d.Manual {
			delete(s.data.deductions, id)
		}
	}
	for _, c := range collectors {
		s.data.collectors[c.CollectorID] = c
	}
	for _, d := range deductions {
		s.data.deductions[d.DeductionID] = d
	}
	return nil
}

func (s *Store) ClearAutomaticAuditRows(_ context.Context, payrollID string) error {
	defer s.lock()()
	s.clearAutomaticLocked(payrollID)
	return nil
}

func (s *Store) SaveManualDeduction(_ context.Context, deduction domain.PayrollDeduction) error {
	defer s.lock()()
	for _, d := range s.data.deductions {
		if d.Manual && d.LineID == deduction.LineID && d.PlanID == deduction.PlanID {
			return fmt.Errorf("%w: plan %s already has a manual installment on line %s", apperrors.ErrDuplicate, deduction.PlanID, deduction.LineID)
		}
	}
	deduction.Manual = true
	s.data.deductions[deduction.DeductionID] = deduction
	return nil
}

func (s *Store) DeleteManualDeduction(_ context.Context, lineID, deductionID string) error {
	defer s.lock()()
	d, ok := s.data.deductions[deductionID]
	if !ok || !d.Manual || d.LineID != lineID {
		return apperrors.NewNotFoundError("manual deduction " + deductionID)
	}
	delete(s.data.deductions, deductionID)
	return nil
}
