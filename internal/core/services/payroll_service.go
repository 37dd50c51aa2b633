package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/core/payroll"
	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/dto"
	"github.com/SscSPs/payroll_engine/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPayrollPageSize = 20
	maxPayrollPageSize     = 100
)

// payrollService implements the PayrollSvcFacade interface
type payrollService struct {
	BaseService
	store  portsrepo.Store
	runs   payroll.RunCalculator
	poster payroll.PayrollLedgerPoster
}

// PayrollServiceOption is a functional option for configuring the payroll service
type PayrollServiceOption func(*payrollService)

// WithPayrollClock overrides the clock used for audit fields and recorded deductions.
func WithPayrollClock(clock func() time.Time) PayrollServiceOption {
	return func(s *payrollService) {
		s.Clock = clock
	}
}

// NewPayrollService creates a new payroll service with the provided options
func NewPayrollService(store portsrepo.Store, runs payroll.RunCalculator, poster payroll.PayrollLedgerPoster, options ...PayrollServiceOption) portssvc.PayrollSvcFacade {
	svc := &payrollService{
		store:  store,
		runs:   runs,
		poster: poster,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func notEditable(run *domain.PayrollRun) error {
	return fmt.Errorf("%w: %w: payroll %s is %s", apperrors.ErrValidation, apperrors.ErrInvalidStateTransition, run.PayrollID, run.Status)
}

func (s *payrollService) CreatePayroll(ctx context.Context, req dto.CreatePayrollRequest, creatorUserID string) (*domain.PayrollRun, error) {
	period, err := domain.ParsePayPeriod(req.PayPeriod)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	run := domain.PayrollRun{
		PayrollID:        uuid.NewString(),
		Number:           strings.TrimSpace(req.Number),
		FundingAccountID: req.FundingAccountID,
		PayPeriod:        period,
		PayDate:          req.PayDate.UTC(),
		Currency:         strings.ToUpper(req.CurrencyCode),
		TaxRevisionID:    req.TaxRevisionID,
		Fraction:         req.Fraction,
		Status:           domain.PayrollCreated,
		AuditFields:      domain.NewAuditFields(creatorUserID, now),
	}
	if req.ExchangeRate != nil {
		effective := req.ExchangeRate.DateEffective
		if effective.IsZero() {
			effective = run.PayDate
		}
		rate := domain.NewExchangeRate(req.ExchangeRate.FromCurrencyCode, req.ExchangeRate.ToCurrencyCode, req.ExchangeRate.Rate, effective)
		rate.ExchangeRateID = uuid.NewString()
		rate.AuditFields = domain.NewAuditFields(creatorUserID, now)
		run.ExchangeRate = &rate
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}

	if run.TaxRevisionID != "" {
		if _, err := s.store.FindRevisionByID(ctx, run.TaxRevisionID); err != nil {
			return nil, fmt.Errorf("%w: tax revision %s: %v", apperrors.ErrValidation, run.TaxRevisionID, err)
		}
	}

	if err := s.store.SavePayroll(ctx, run); err != nil {
		s.LogError(ctx, err, "Failed to save payroll", slog.String("number", run.Number))
		return nil, fmt.Errorf("failed to create payroll: %w", err)
	}

	s.LogInfo(ctx, "Payroll created",
		slog.String("payroll_id", run.PayrollID),
		slog.String("number", run.Number),
		slog.String("pay_period", run.PayPeriod.String()))
	return &run, nil
}

func (s *payrollService) GetPayroll(ctx context.Context, payrollID string) (*domain.PayrollRun, error) {
	run, err := s.store.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll: %w", err)
	}
	return run, nil
}

func (s *payrollService) ListPayrolls(ctx context.Context, params dto.ListPayrollsParams) (*dto.ListPayrollsResponse, error) {
	limit := pagination.ClampLimit(params.Limit, defaultPayrollPageSize, maxPayrollPageSize)
	runs, nextToken, err := s.store.ListPayrolls(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payrolls")
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}

	resp := &dto.ListPayrollsResponse{
		Payrolls:  make([]dto.PayrollResponse, len(runs)),
		NextToken: nextToken,
	}
	for i := range runs {
		resp.Payrolls[i] = dto.ToPayrollResponse(&runs[i])
	}
	return resp, nil
}

func (s *payrollService) ListLines(ctx context.Context, payrollID string) ([]domain.PayrollLine, error) {
	if _, err := s.store.FindPayrollByID(ctx, payrollID); err != nil {
		return nil, fmt.Errorf("failed to get payroll: %w", err)
	}
	lines, err := s.store.ListLinesByPayroll(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}
	return lines, nil
}

func (s *payrollService) AddLine(ctx context.Context, payrollID string, req dto.AddLineRequest, userID string) (*domain.PayrollLine, error) {
	var added domain.PayrollLine
	err := s.store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		run, err := tx.FindPayrollForUpdate(ctx, payrollID)
		if err != nil {
			return err
		}
		if !run.Status.IsEditable() {
			return notEditable(run)
		}

		position, err := tx.FindPositionByID(ctx, req.PositionID)
		if err != nil {
			return err
		}
		employee, err := tx.FindEmployeeByID(ctx, position.EmployeeID)
		if err != nil {
			return err
		}
		if !employee.Active {
			return fmt.Errorf("%w: employee %s is not active", apperrors.ErrValidation, employee.EmployeeID)
		}
		if !position.IsPayable() {
			return fmt.Errorf("%w: position %s is not active", apperrors.ErrValidation, position.PositionID)
		}

		hours, err := s.hoursWorked(ctx, tx, run, position, req.HoursWorked)
		if err != nil {
			return err
		}

		now := s.Now()
		zero := domain.ZeroMoney(run.Currency)
		line := domain.PayrollLine{
			LineID:      uuid.NewString(),
			PayrollID:   run.PayrollID,
			EmployeeID:  employee.EmployeeID,
			PositionID:  position.PositionID,
			HoursWorked: hours,
			Earnings:    zero,
			ExtraIncome: zero,
			GrossIncome: zero,
			IncomeTax:   zero,
			EmployerTax: zero,
			Deductions:  zero,
			NetIncome:   zero,
			AuditFields: domain.NewAuditFields(userID, now),
		}
		if err := tx.SaveLine(ctx, line); err != nil {
			return err
		}

		computed, err := s.recomputeRun(ctx, tx, *run, userID, now)
		if err != nil {
			return err
		}
		added = computed.line(line.LineID)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add payroll line",
			slog.String("payroll_id", payrollID),
			slog.String("position_id", req.PositionID))
		return nil, err
	}

	s.LogInfo(ctx, "Payroll line added",
		slog.String("payroll_id", payrollID),
		slog.String("line_id", added.LineID))
	return &added, nil
}

// hoursWorked returns the hours a PER_RATE line is paid for: the given figure, or the
// timesheets dated inside the pay period that ends on the pay date.
func (s *payrollService) hoursWorked(ctx context.Context, tx portsrepo.Store, run *domain.PayrollRun, position *domain.EmployeePosition, given *decimal.Decimal) (*decimal.Decimal, error) {
	if position.WageType != domain.PerRate {
		return nil, nil
	}
	if given != nil {
		if given.IsNegative() {
			return nil, fmt.Errorf("%w: hours worked cannot be negative", apperrors.ErrValidation)
		}
		return given, nil
	}

	from := run.PayPeriod.WindowStart(run.PayDate).AddDate(0, 0, 1)
	entries, err := tx.ListTimeSheetEntries(ctx, position.EmployeeID, from, run.PayDate)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	hours := domain.SumWorkedHours(entries).Round(domain.MonetaryScale)
	return &hours, nil
}

func (s *payrollService) ApplyLineAdjustments(ctx context.Context, payrollID, lineID string, req dto.LineAdjustmentsRequest, userID string) (*domain.PayrollLine, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no adjustments given", apperrors.ErrValidation)
	}

	var adjusted domain.PayrollLine
	err := s.store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		run, err := tx.FindPayrollForUpdate(ctx, payrollID)
		if err != nil {
			return err
		}
		if !run.Status.IsEditable() {
			return notEditable(run)
		}
		line, err := tx.FindLineByID(ctx, payrollID, lineID)
		if err != nil {
			return err
		}

		for _, id := range req.RemoveAdditions {
			if err := tx.DeleteAddition(ctx, lineID, id); err != nil {
				return err
			}
		}
		for _, id := range req.RemoveInstallments {
			if err := tx.DeleteManualDeduction(ctx, lineID, id); err != nil {
				return err
			}
		}

		now := s.Now()
		for _, a := range req.AddAdditions {
			if !a.Amount.IsPositive() {
				return fmt.Errorf("%w: addition %q must be positive", apperrors.ErrValidation, a.ItemName)
			}
			currency := a.CurrencyCode
			if currency == "" {
				currency = run.Currency
			}
			addition := domain.Addition{
				AdditionID:  uuid.NewString(),
				PayrollID:   payrollID,
				LineID:      lineID,
				ItemName:    a.ItemName,
				AccountID:   a.AccountID,
				Amount:      domain.NewMoney(a.Amount, currency),
				AuditFields: domain.NewAuditFields(userID, now),
			}
			if err := tx.SaveAddition(ctx, addition); err != nil {
				return err
			}
		}

		if len(req.AddInstallments) > 0 {
			plans, err := tx.ListCreditPlansByEmployees(ctx, []string{line.EmployeeID})
			if err != nil {
				return err
			}
			byPlan := make(map[string]domain.CreditPlan, len(plans))
			for _, cp := range plans {
				byPlan[cp.Plan.PlanID] = cp
			}
			for _, inst := range req.AddInstallments {
				cp, ok := byPlan[inst.PlanID]
				if !ok {
					return fmt.Errorf("%w: plan %s is not an open plan of employee %s", apperrors.ErrValidation, inst.PlanID, line.EmployeeID)
				}
				if !cp.Plan.Status.AcceptsManual() {
					return fmt.Errorf("%w: plan %s is %s", apperrors.ErrValidation, inst.PlanID, cp.Plan.Status)
				}
				if !inst.Amount.IsPositive() {
					return fmt.Errorf("%w: installment for plan %s must be positive", apperrors.ErrValidation, inst.PlanID)
				}
				deduction := domain.PayrollDeduction{
					DeductionID: uuid.NewString(),
					PayrollID:   payrollID,
					LineID:      lineID,
					PlanID:      cp.Plan.PlanID,
					CreditID:    cp.Credit.CreditID,
					Amount:      domain.NewMoney(inst.Amount, cp.Credit.Principal.Currency),
					Manual:      true,
				}
				if err := tx.SaveManualDeduction(ctx, deduction); err != nil {
					return err
				}
			}
		}

		computed, err := s.recomputeRun(ctx, tx, *run, userID, now)
		if err != nil {
			return err
		}
		adjusted = computed.line(lineID)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust payroll line",
			slog.String("payroll_id", payrollID),
			slog.String("line_id", lineID))
		return nil, err
	}

	s.LogInfo(ctx, "Payroll line adjusted",
		slog.String("payroll_id", payrollID),
		slog.String("line_id", lineID),
		slog.Int("additions", len(req.AddAdditions)),
		slog.Int("installments", len(req.AddInstallments)))
	return &adjusted, nil
}

func (s *payrollService) Recompute(ctx context.Context, payrollID string, userID string) ([]domain.PayrollLine, error) {
	var lines []domain.PayrollLine
	err := s.store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		run, err := tx.FindPayrollForUpdate(ctx, payrollID)
		if err != nil {
			return err
		}
		if !run.Status.IsEditable() {
			return notEditable(run)
		}
		computed, err := s.recomputeRun(ctx, tx, *run, userID, s.Now())
		if err != nil {
			return err
		}
		lines = computed.lines
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute payroll", slog.String("payroll_id", payrollID))
		return nil, err
	}
	s.LogInfo(ctx, "Payroll recomputed", slog.String("payroll_id", payrollID), slog.Int("lines", len(lines)))
	return lines, nil
}

func (s *payrollService) Transition(ctx context.Context, payrollID string, target domain.PayrollStatus, userID string) (*dto.TransitionResponse, error) {
	if target.Rank() < 0 {
		return nil, fmt.Errorf("%w: unknown payroll status %q", apperrors.ErrValidation, target)
	}

	var resp dto.TransitionResponse
	err := s.store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		run, err := tx.FindPayrollForUpdate(ctx, payrollID)
		if err != nil {
			return err
		}
		resp = dto.TransitionResponse{
			PayrollID:      run.PayrollID,
			PreviousStatus: string(run.Status),
			Status:         string(target),
		}
		if run.Status == target {
			resp.AlreadyApplied = true
			return nil
		}
		if !run.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: payroll %s cannot move from %s to %s",
				apperrors.ErrInvalidStateTransition, run.PayrollID, run.Status, target)
		}

		now := s.Now()
		switch target {
		case domain.PayrollReview:
			err = tx.ClearAutomaticAuditRows(ctx, run.PayrollID)
		case domain.PayrollClosed:
			err = s.close(ctx, tx, *run, userID, now)
		case domain.PayrollApproved:
			resp.JournalID, err = s.approve(ctx, tx, *run, userID)
		case domain.PayrollPaid:
			resp.JournalID, resp.FlaggedLines, err = s.pay(ctx, tx, *run, userID, now)
		}
		if err != nil {
			return err
		}
		return tx.UpdatePayrollStatus(ctx, run.PayrollID, target, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Payroll transition failed",
			slog.String("payroll_id", payrollID),
			slog.String("target", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "Payroll transitioned",
		slog.String("payroll_id", payrollID),
		slog.String("from", resp.PreviousStatus),
		slog.String("to", resp.Status),
		slog.Bool("already_applied", resp.AlreadyApplied),
		slog.Int("flagged_lines", len(resp.FlaggedLines)))
	return &resp, nil
}

// close recomputes every line and records the audit rows the run settles on. Credits
// whose balance reached zero are completed and SKIP_NEXT plans resume for the next run.
func (s *payrollService) close(ctx context.Context, tx portsrepo.Store, run domain.PayrollRun, userID string, now time.Time) error {
	computed, err := s.recomputeRun(ctx, tx, run, userID, now)
	if err != nil {
		return err
	}

	for i := range computed.collectors {
		computed.collectors[i].CollectorID = uuid.NewString()
	}
	for i := range computed.deductions {
		if computed.deductions[i].DeductionID == "" {
			computed.deductions[i].DeductionID = uuid.NewString()
		}
		computed.deductions[i].RecordedAt = now
	}
	if err := tx.ReplaceAuditRows(ctx, run.PayrollID, computed.collectors, computed.deductions); err != nil {
		return err
	}

	if len(computed.settled) > 0 {
		if err := tx.MarkCreditsCompleted(ctx, computed.settled, userID, now); err != nil {
			return err
		}
	}
	settled := make(map[string]struct{}, len(computed.settled))
	for _, id := range computed.settled {
		settled[id] = struct{}{}
	}
	var resume []string
	for _, cp := range computed.plans {
		if _, done := settled[cp.Credit.CreditID]; done || cp.Plan.Status != domain.PlanSkipNext {
			continue
		}
		resume = append(resume, cp.Plan.PlanID)
	}
	if len(resume) > 0 {
		if err := tx.UpdatePlanStatuses(ctx, resume, domain.PlanActive, userID, now); err != nil {
			return err
		}
	}

	s.LogDebug(ctx, "Payroll closed",
		slog.String("payroll_id", run.PayrollID),
		slog.Int("collectors", len(computed.collectors)),
		slog.Int("deductions", len(computed.deductions)),
		slog.Int("settled_credits", len(computed.settled)))
	return nil
}

func (s *payrollService) approve(ctx context.Context, tx portsrepo.Store, run domain.PayrollRun, userID string) (string, error) {
	lines, err := tx.ListLinesByPayroll(ctx, run.PayrollID)
	if err != nil {
		return "", err
	}
	entry, err := s.poster.Approval(run, lines, userID)
	if err != nil {
		return "", err
	}
	if len(entry.Postings) == 0 {
		return "", nil
	}
	if err := tx.SaveJournal(ctx, entry.Journal, entry.Postings); err != nil {
		return "", err
	}
	return entry.Journal.JournalID, nil
}

// pay posts the net of every line with a single current bank account. The others are
// flagged for review and stored with the journal.
func (s *payrollService) pay(ctx context.Context, tx portsrepo.Store, run domain.PayrollRun, userID string, now time.Time) (string, []string, error) {
	lines, err := tx.ListLinesByPayroll(ctx, run.PayrollID)
	if err != nil {
		return "", nil, err
	}
	accounts, err := tx.ListBankAccountsByEmployees(ctx, employeeIDsOf(lines))
	if err != nil {
		return "", nil, err
	}

	entry, flags, err := s.poster.Payment(run, lines, accounts, userID)
	if err != nil {
		return "", nil, err
	}

	var flagged []string
	if len(flags) > 0 {
		reasons := make(map[string]string, len(flags))
		for _, f := range flags {
			reasons[f.LineID] = f.Reason
		}
		var updates []domain.PayrollLine
		for _, l := range lines {
			reason, ok := reasons[l.LineID]
			if !ok {
				continue
			}
			l.NeedsReview = true
			l.ReviewReason = reason
			l.Touch(userID, now)
			updates = append(updates, l)
			flagged = append(flagged, l.LineID)
		}
		if err := tx.UpdateLineFigures(ctx, updates); err != nil {
			return "", nil, err
		}
		s.LogInfo(ctx, "Payroll lines flagged for review",
			slog.String("payroll_id", run.PayrollID),
			slog.Int("count", len(flagged)))
	}

	if len(entry.Postings) == 0 {
		return "", flagged, nil
	}
	if err := tx.SaveJournal(ctx, entry.Journal, entry.Postings); err != nil {
		return "", nil, err
	}
	return entry.Journal.JournalID, flagged, nil
}

// computedRun is the outcome of recomputing every line of a run.
type computedRun struct {
	lines      []domain.PayrollLine
	collectors []domain.TaxContributionCollector
	deductions []domain.PayrollDeduction
	settled    []string
	plans      []domain.CreditPlan
}

func (c computedRun) line(lineID string) domain.PayrollLine {
	for _, l := range c.lines {
		if l.LineID == lineID {
			return l
		}
	}
	return domain.PayrollLine{}
}

// recomputeRun builds the snapshot of every line from tx, runs it through the calculator
// and stores the new figures. Payment history excludes the run's own rows, so calling it
// twice yields the same figures.
func (s *payrollService) recomputeRun(ctx context.Context, tx portsrepo.Store, run domain.PayrollRun, userID string, now time.Time) (computedRun, error) {
	lines, err := tx.ListLinesByPayroll(ctx, run.PayrollID)
	if err != nil {
		return computedRun{}, err
	}
	if len(lines) == 0 {
		return computedRun{}, nil
	}

	positionIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		positionIDs = append(positionIDs, l.PositionID)
	}
	employeeIDs := employeeIDsOf(lines)

	positions, err := tx.FindPositionsByIDs(ctx, positionIDs)
	if err != nil {
		return computedRun{}, err
	}
	additions, err := tx.ListAdditionsByPayroll(ctx, run.PayrollID)
	if err != nil {
		return computedRun{}, err
	}
	mandatory, err := tx.ListMandatoryContributions(ctx, run.TaxRevisionID)
	if err != nil {
		return computedRun{}, err
	}
	optIns, err := tx.ListOptInContributions(ctx, employeeIDs)
	if err != nil {
		return computedRun{}, err
	}
	// Concurrent runs of the same employees must not read one balance twice
	if err := tx.LockEmployeeCredits(ctx, employeeIDs); err != nil {
		return computedRun{}, err
	}
	plans, err := tx.ListCreditPlansByEmployees(ctx, employeeIDs)
	if err != nil {
		return computedRun{}, err
	}
	existing, err := tx.ListDeductionsByPayroll(ctx, run.PayrollID)
	if err != nil {
		return computedRun{}, err
	}

	creditIDs := make([]string, 0, len(plans))
	seenCredit := make(map[string]struct{}, len(plans))
	plansByEmployee := make(map[string][]domain.CreditPlan)
	for _, cp := range plans {
		plansByEmployee[cp.Credit.EmployeeID] = append(plansByEmployee[cp.Credit.EmployeeID], cp)
		if _, ok := seenCredit[cp.Credit.CreditID]; !ok {
			seenCredit[cp.Credit.CreditID] = struct{}{}
			creditIDs = append(creditIDs, cp.Credit.CreditID)
		}
	}
	history, err := tx.PaymentHistory(ctx, creditIDs, run.PayrollID)
	if err != nil {
		return computedRun{}, err
	}

	additionsByLine := make(map[string][]domain.Addition)
	for _, a := range additions {
		additionsByLine[a.LineID] = append(additionsByLine[a.LineID], a)
	}
	manualByLine := make(map[string]map[string]domain.PayrollDeduction)
	for _, d := range existing {
		if !d.Manual {
			continue
		}
		if manualByLine[d.LineID] == nil {
			manualByLine[d.LineID] = make(map[string]domain.PayrollDeduction)
		}
		manualByLine[d.LineID][d.PlanID] = d
	}

	inputs := make([]payroll.LineInput, 0, len(lines))
	var missing apperrors.LineErrors
	for _, l := range lines {
		position, ok := positions[l.PositionID]
		if !ok {
			missing = append(missing, apperrors.NewLineError(l.LineID, "position "+l.PositionID, apperrors.NewNotFoundError("position "+l.PositionID)))
			continue
		}
		inputs = append(inputs, payroll.LineInput{
			Run:       run,
			Line:      l,
			Position:  position,
			Additions: additionsByLine[l.LineID],
			Taxes:     mandatory,
			OptIns:    optIns[l.EmployeeID],
			Plans:     plansByEmployee[l.EmployeeID],
			Manual:    manualByLine[l.LineID],
		})
	}
	if len(missing) > 0 {
		return computedRun{}, missing
	}

	results, err := s.runs.Compute(ctx, inputs, payroll.NewInstallmentBook(history))
	if err != nil {
		return computedRun{}, err
	}

	out := computedRun{plans: plans}
	settled := make(map[string]struct{})
	for _, res := range results {
		line := roundLine(res.Line)
		line.NeedsReview = false
		line.ReviewReason = ""
		line.Touch(userID, now)
		out.lines = append(out.lines, line)
		out.collectors = append(out.collectors, res.Collectors...)
		out.deductions = append(out.deductions, res.Deductions...)
		for _, id := range res.SettledCredits {
			if _, dup := settled[id]; !dup {
				settled[id] = struct{}{}
				out.settled = append(out.settled, id)
			}
		}
	}
	sort.Strings(out.settled)

	if err := tx.UpdateLineFigures(ctx, out.lines); err != nil {
		return computedRun{}, err
	}
	return out, nil
}

func roundLine(l domain.PayrollLine) domain.PayrollLine {
	l.Earnings = l.Earnings.Round()
	l.ExtraIncome = l.ExtraIncome.Round()
	l.GrossIncome = l.GrossIncome.Round()
	l.IncomeTax = l.IncomeTax.Round()
	l.EmployerTax = l.EmployerTax.Round()
	l.Deductions = l.Deductions.Round()
	l.NetIncome = l.NetIncome.Round()
	return l
}

func employeeIDsOf(lines []domain.PayrollLine) []string {
	seen := make(map[string]struct{}, len(lines))
	var ids []string
	for _, l := range lines {
		if _, ok := seen[l.EmployeeID]; ok {
			continue
		}
		seen[l.EmployeeID] = struct{}{}
		ids = append(ids, l.EmployeeID)
	}
	sort.Strings(ids)
	return ids
}
