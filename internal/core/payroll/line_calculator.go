package payroll

import (
	"fmt"
	"sort"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// LineInput is the explicit snapshot a line is computed from.
type LineInput struct {
	Run       domain.PayrollRun
	Line      domain.PayrollLine
	Position  domain.EmployeePosition
	Additions []domain.Addition
	// Taxes holds the contributions that are mandatory and active for the run's revision.
	Taxes []domain.TaxContribution
	// OptIns holds the contributions the employee chose individually.
	OptIns []domain.TaxContribution
	Plans  []domain.CreditPlan
	// Manual maps plan ID to an installment keyed in by an operator for this line.
	Manual map[string]domain.PayrollDeduction
}

// LineResult is the outcome of computing one line.
type LineResult struct {
	Line       domain.PayrollLine
	Collectors []domain.TaxContributionCollector
	Deductions []domain.PayrollDeduction
	// SettledCredits lists credits whose balance reached zero on this line.
	SettledCredits []string
}

// PayrollLineCalculator derives the monetary figures of one line.
type PayrollLineCalculator struct {
	converter domain.PeriodConverter
	taxes     TaxContributionEngine
}

// NewPayrollLineCalculator wires a calculator around converter.
func NewPayrollLineCalculator(converter domain.PeriodConverter) PayrollLineCalculator {
	return PayrollLineCalculator{
		converter: converter,
		taxes:     NewTaxContributionEngine(NewTaxBracketResolver(converter)),
	}
}

// Compute runs earnings, extra income, gross, taxes, deductions and net in that order.
// Every failure is a *apperrors.LineError naming the line and the item at fault.
func (c PayrollLineCalculator) Compute(in LineInput, book *InstallmentBook) (LineResult, error) {
	lineID := in.Line.LineID
	fail := func(subject string, err error) (LineResult, error) {
		return LineResult{}, apperrors.NewLineError(lineID, subject, err)
	}

	earnings, err := c.earnings(in)
	if err != nil {
		return fail("earnings", err)
	}
	extra, subject, err := c.extraIncome(in)
	if err != nil {
		return fail(subject, err)
	}
	gross, err := earnings.Add(extra)
	if err != nil {
		return fail("gross income", err)
	}

	taxes, subject, err := c.incomeTax(in, earnings, extra, gross)
	if err != nil {
		return fail(subject, err)
	}

	deductions, rows, settled, subject, err := c.deductions(in, book)
	if err != nil {
		return fail(subject, err)
	}

	net, err := gross.Sub(taxes.employee)
	if err == nil {
		net, err = net.Sub(deductions)
	}
	if err != nil {
		return fail("net income", err)
	}

	line := in.Line
	line.Earnings = earnings.Money
	line.ExtraIncome = extra.Money
	line.GrossIncome = gross.Money
	line.IncomeTax = taxes.employee.Money
	line.EmployerTax = taxes.employer.Money
	line.Deductions = deductions.Money
	line.NetIncome = net.Money

	return LineResult{Line: line, Collectors: taxes.rows, Deductions: rows, SettledCredits: settled}, nil
}

// toRun expresses an income in the run's currency and period.
func (c PayrollLineCalculator) toRun(run domain.PayrollRun, income domain.Income) (domain.Income, error) {
	converted, err := domain.ConvertIncome(income, run.Currency, run.ExchangeRate)
	if err != nil {
		return domain.Income{}, err
	}
	return converted.ConvertTo(run.PayPeriod, c.converter), nil
}

func (c PayrollLineCalculator) earnings(in LineInput) (domain.Income, error) {
	run := in.Run
	total := domain.ZeroIncome(run.PayPeriod, run.Currency)

	switch in.Position.WageType {
	case domain.Salaried:
		sources := append([]domain.Income{in.Position.Negotiated}, in.Position.OtherEarnings...)
		for _, src := range sources {
			converted, err := c.toRun(run, src)
			if err != nil {
				return domain.Income{}, err
			}
			if total, err = total.Add(converted); err != nil {
				return domain.Income{}, err
			}
		}
	case domain.PerRate:
		if in.Line.HoursWorked == nil {
			return domain.Income{}, fmt.Errorf("%w: position %s is paid per rate", apperrors.ErrMissingHoursWorked, in.Position.PositionID)
		}
		wage, err := domain.ConvertMoney(in.Position.Negotiated.Money.Mul(*in.Line.HoursWorked), run.Currency, run.ExchangeRate)
		if err != nil {
			return domain.Income{}, err
		}
		total = domain.NewIncome(run.PayPeriod, wage)
	default:
		return domain.Income{}, fmt.Errorf("%w: unknown wage type %q", apperrors.ErrValidation, in.Position.WageType)
	}

	if run.Fraction != nil {
		total = total.Mul(*run.Fraction)
	}
	return total.Round(), nil
}

func (c PayrollLineCalculator) extraIncome(in LineInput) (domain.Income, string, error) {
	run := in.Run
	byCurrency := make(map[string]domain.Money)
	for _, a := range in.Additions {
		sum, ok := byCurrency[a.Amount.Currency]
		if !ok {
			sum = domain.ZeroMoney(a.Amount.Currency)
		}
		sum, err := sum.Add(a.Amount)
		if err != nil {
			return domain.Income{}, "addition " + a.AdditionID, err
		}
		byCurrency[a.Amount.Currency] = sum
	}

	currencies := make([]string, 0, len(byCurrency))
	for cur := range byCurrency {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)

	total := domain.ZeroMoney(run.Currency)
	for _, cur := range currencies {
		converted, err := domain.ConvertMoney(byCurrency[cur], run.Currency, run.ExchangeRate)
		if err != nil {
			return domain.Income{}, "additions in " + cur, err
		}
		if total, err = total.Add(converted); err != nil {
			return domain.Income{}, "additions in " + cur, err
		}
	}
	return domain.NewIncome(run.PayPeriod, total.Round()), "", nil
}

type taxTotals struct {
	employee domain.Income
	employer domain.Income
	rows     []domain.TaxContributionCollector
}

// applicableTaxes is the union of mandatory active taxes and active opt ins,
// de-duplicated by ID, in input order.
func applicableTaxes(in LineInput) []domain.TaxContribution {
	seen := make(map[string]struct{})
	var out []domain.TaxContribution
	for _, group := range [][]domain.TaxContribution{in.Taxes, in.OptIns} {
		for _, t := range group {
			if !t.Active {
				continue
			}
			if _, dup := seen[t.ContributionID]; dup {
				continue
			}
			seen[t.ContributionID] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// incomeTax evaluates every applicable tax. NET based taxes run in a second pass against
// gross less the employee tax of the first pass.
func (c PayrollLineCalculator) incomeTax(in LineInput, earnings, extra, gross domain.Income) (taxTotals, string, error) {
	run := in.Run
	totals := taxTotals{
		employee: domain.ZeroIncome(run.PayPeriod, run.Currency),
		employer: domain.ZeroIncome(run.PayPeriod, run.Currency),
	}

	taxes := applicableTaxes(in)
	var netBased []domain.TaxContribution

	apply := func(tax domain.TaxContribution, base domain.Income) error {
		owed, err := c.taxes.Calculate(tax, base, run.ExchangeRate)
		if err != nil {
			return err
		}
		owed, err = c.toRun(run, owed)
		if err != nil {
			return err
		}
		owed = owed.Round()

		switch tax.PayBy {
		case domain.PayByEmployer:
			totals.employer, err = totals.employer.Add(owed)
		default:
			totals.employee, err = totals.employee.Add(owed)
		}
		if err != nil {
			return err
		}
		totals.rows = append(totals.rows, domain.TaxContributionCollector{
			PayrollID:      run.PayrollID,
			LineID:         in.Line.LineID,
			ContributionID: tax.ContributionID,
			PayBy:          tax.PayBy,
			Amount:         owed.Money,
		})
		return nil
	}

	for _, tax := range taxes {
		var base domain.Income
		switch tax.TakenFrom {
		case domain.IncomeSalary:
			base = earnings
		case domain.IncomeGross:
			base = gross
		case domain.IncomeExtra:
			base = extra
		case domain.IncomeNet:
			netBased = append(netBased, tax)
			continue
		default:
			return taxTotals{}, "tax " + tax.Name, fmt.Errorf("%w: tax cannot be taken from %s", apperrors.ErrValidation, tax.TakenFrom)
		}
		if err := apply(tax, base); err != nil {
			return taxTotals{}, "tax " + tax.Name, err
		}
	}

	if len(netBased) > 0 {
		net, err := gross.Sub(totals.employee)
		if err != nil {
			return taxTotals{}, "net income", err
		}
		for _, tax := range netBased {
			if err := apply(tax, net); err != nil {
				return taxTotals{}, "tax " + tax.Name, err
			}
		}
	}
	return totals, "", nil
}

func (c PayrollLineCalculator) deductions(in LineInput, book *InstallmentBook) (domain.Income, []domain.PayrollDeduction, []string, string, error) {
	run := in.Run
	total := domain.ZeroIncome(run.PayPeriod, run.Currency)
	var rows []domain.PayrollDeduction
	var settled []string

	for _, cp := range in.Plans {
		if cp.Credit.EmployeeID != in.Line.EmployeeID || cp.Credit.Completed || !cp.Plan.Status.AcceptsManual() {
			continue
		}
		var manual *domain.Money
		var manualRow domain.PayrollDeduction
		if row, ok := in.Manual[cp.Plan.PlanID]; ok {
			manualRow = row
			amount := row.Amount
			manual = &amount
		}
		if cp.Plan.Status != domain.PlanActive && manual == nil {
			continue
		}

		subject := "plan " + cp.Plan.PlanID
		inst, ok, done, err := book.Reserve(cp, manual)
		if err != nil {
			return domain.Income{}, nil, nil, subject, err
		}
		if done {
			settled = append(settled, cp.Credit.CreditID)
		}
		if !ok {
			continue
		}

		amount, err := domain.ConvertMoney(inst.Amount, run.Currency, run.ExchangeRate)
		if err != nil {
			return domain.Income{}, nil, nil, subject, err
		}
		amount = amount.Round()
		if total, err = total.Add(domain.NewIncome(run.PayPeriod, amount)); err != nil {
			return domain.Income{}, nil, nil, subject, err
		}

		row := domain.PayrollDeduction{
			PayrollID: run.PayrollID,
			LineID:    in.Line.LineID,
			PlanID:    cp.Plan.PlanID,
			CreditID:  cp.Credit.CreditID,
			Amount:    inst.Amount,
		}
		if manual != nil {
			row = manualRow
			row.Amount = inst.Amount
			row.Manual = true
		}
		rows = append(rows, row)
	}
	return total, rows, settled, "", nil
}
