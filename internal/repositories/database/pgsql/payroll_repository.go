package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/SscSPs/payroll_engine/internal/utils/mapping"
	"github.com/SscSPs/payroll_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `payroll_id, number, funding_account_id, pay_period, pay_date, currency_code,
	tax_revision_id, fraction, exchange_rate_id, status,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, payroll_id, employee_id, position_id, hours_worked, currency_code,
	earnings, extra_income, gross_income, income_tax, employer_tax, deductions, net_income,
	needs_review, review_reason, created_at, created_by, last_updated_at, last_updated_by`

const additionColumns = `addition_id, payroll_id, line_id, item_name, account_id, amount, currency_code,
	created_at, created_by, last_updated_at, last_updated_by`

const collectorColumns = `collector_id, payroll_id, line_id, contribution_id, pay_by, amount, currency_code`

const deductionColumns = `deduction_id, payroll_id, line_id, plan_id, credit_id, amount, currency_code, manual, recorded_at`

// FindPayrollByID retrieves a run and its exchange rate.
func (s *Store) FindPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRun, error) {
	return s.findPayroll(ctx, `SELECT `+payrollColumns+` FROM payroll_runs WHERE payroll_id = $1`, payrollID)
}

// FindPayrollForUpdate retrieves a run with a row lock held until the transaction ends.
func (s *Store) FindPayrollForUpdate(ctx context.Context, payrollID string) (*domain.PayrollRun, error) {
	return s.findPayroll(ctx, `SELECT `+payrollColumns+` FROM payroll_runs WHERE payroll_id = $1 FOR UPDATE`, payrollID)
}

func (s *Store) findPayroll(ctx context.Context, query, payrollID string) (*domain.PayrollRun, error) {
	rows, err := s.db.Query(ctx, query, payrollID)
	if err != nil {
		return nil, storeError(err, "payroll "+payrollID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PayrollRun])
	if err != nil {
		return nil, storeError(err, "payroll "+payrollID)
	}
	runs, err := s.toDomainRuns(ctx, []models.PayrollRun{m})
	if err != nil {
		return nil, err
	}
	return &runs[0], nil
}

// toDomainRuns converts rows and attaches the exchange rates they reference.
func (s *Store) toDomainRuns(ctx context.Context, rows []models.PayrollRun) ([]domain.PayrollRun, error) {
	rateIDs := make([]string, 0)
	for _, m := range rows {
		if m.ExchangeRateID != nil {
			rateIDs = append(rateIDs, *m.ExchangeRateID)
		}
	}
	rates := make(map[string]models.ExchangeRate, len(rateIDs))
	if len(rateIDs) > 0 {
		found, err := s.findExchangeRatesByIDs(ctx, rateIDs)
		if err != nil {
			return nil, err
		}
		rates = found
	}

	out := make([]domain.PayrollRun, 0, len(rows))
	for _, m := range rows {
		var rate *models.ExchangeRate
		if m.ExchangeRateID != nil {
			r, ok := rates[*m.ExchangeRateID]
			if !ok {
				return nil, apperrors.NewNotFoundError("exchange rate " + *m.ExchangeRateID)
			}
			rate = &r
		}
		run, err := mapping.ToDomainPayrollRun(m, rate)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map payroll "+m.PayrollID, err)
		}
		out = append(out, run)
	}
	return out, nil
}

// ListPayrolls retrieves runs newest pay date first. The token is the (pay date, ID) of
// the last run on the previous page.
func (s *Store) ListPayrolls(ctx context.Context, limit int, nextToken *string) ([]domain.PayrollRun, *string, error) {
	args := []any{}
	query := `SELECT ` + payrollColumns + ` FROM payroll_runs`
	if nextToken != nil && *nextToken != "" {
		afterDate, afterID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (pay_date, payroll_id) < ($1, $2)`
		args = append(args, afterDate, afterID)
	}
	query += ` ORDER BY pay_date DESC, payroll_id DESC`
	if limit > 0 {
		// One extra row tells whether another page exists
		query += fmt.Sprintf(` LIMIT %d`, limit+1)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, storeError(err, "payroll list")
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PayrollRun])
	if err != nil {
		return nil, nil, storeError(err, "payroll list")
	}

	var token *string
	if limit > 0 && len(found) > limit {
		found = found[:limit]
		last := found[len(found)-1]
		t := pagination.EncodeCursor(last.PayDate, last.PayrollID)
		token = &t
	}
	runs, err := s.toDomainRuns(ctx, found)
	if err != nil {
		return nil, nil, err
	}
	return runs, token, nil
}

// SavePayroll inserts a run. A run carrying its own exchange rate stores that rate first.
func (s *Store) SavePayroll(ctx context.Context, run domain.PayrollRun) error {
	m := mapping.ToModelPayrollRun(run)
	batch := &pgx.Batch{}
	if run.ExchangeRate != nil {
		if m.ExchangeRateID == nil {
			return apperrors.NewValidationError("run exchange rate needs an ID")
		}
		rate := mapping.ToModelExchangeRate(*run.ExchangeRate)
		batch.Queue(`
			INSERT INTO exchange_rates (`+exchangeRateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (exchange_rate_id) DO NOTHING`,
			rate.ExchangeRateID, rate.ForeignCurrency, rate.LocalCurrency, rate.Rate, rate.DateEffective,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	batch.Queue(`
		INSERT INTO payroll_runs (`+payrollColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.PayrollID, m.Number, m.FundingAccountID, m.PayPeriod, m.PayDate, m.CurrencyCode,
		m.TaxRevisionID, m.Fraction, m.ExchangeRateID, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return s.sendBatch(ctx, batch, "payroll "+run.PayrollID)
}

func (s *Store) UpdatePayrollStatus(ctx context.Context, payrollID string, status domain.PayrollStatus, userID string, at time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE payroll_runs SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE payroll_id = $4`,
		string(status), at, userID, payrollID,
	)
	if err != nil {
		return storeError(err, "payroll "+payrollID)
	}
	return requireAffected(tag, "payroll "+payrollID)
}

func (s *Store) FindLineByID(ctx context.Context, payrollID, lineID string) (*domain.PayrollLine, error) {
	rows, err := s.db.Query(ctx, `SELECT `+lineColumns+` FROM payroll_lines WHERE payroll_id = $1 AND line_id = $2`, payrollID, lineID)
	if err != nil {
		return nil, storeError(err, "payroll line "+lineID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PayrollLine])
	if err != nil {
		return nil, storeError(err, "payroll line "+lineID)
	}
	line := mapping.ToDomainPayrollLine(m)
	return &line, nil
}

func (s *Store) ListLinesByPayroll(ctx context.Context, payrollID string) ([]domain.PayrollLine, error) {
	rows, err := s.db.Query(ctx, `SELECT `+lineColumns+` FROM payroll_lines WHERE payroll_id = $1 ORDER BY line_id`, payrollID)
	if err != nil {
		return nil, storeError(err, "lines of payroll "+payrollID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PayrollLine])
	if err != nil {
		return nil, storeError(err, "lines of payroll "+payrollID)
	}
	out := make([]domain.PayrollLine, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainPayrollLine(m))
	}
	return out, nil
}

func (s *Store) ListAdditionsByPayroll(ctx context.Context, payrollID string) ([]domain.Addition, error) {
	rows, err := s.db.Query(ctx, `SELECT `+additionColumns+` FROM payroll_additions WHERE payroll_id = $1 ORDER BY addition_id`, payrollID)
	if err != nil {
		return nil, storeError(err, "additions of payroll "+payrollID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Addition])
	if err != nil {
		return nil, storeError(err, "additions of payroll "+payrollID)
	}
	out := make([]domain.Addition, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainAddition(m))
	}
	return out, nil
}

// SaveLine inserts a line. The (payroll_id, position_id) unique key rejects a position
// that is already on the run.
func (s *Store) SaveLine(ctx context.Context, line domain.PayrollLine) error {
	m := mapping.ToModelPayrollLine(line, line.GrossIncome.Currency)
	_, err := s.db.Exec(ctx, `
		INSERT INTO payroll_lines (`+lineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		m.LineID, m.PayrollID, m.EmployeeID, m.PositionID, m.HoursWorked, m.CurrencyCode,
		m.Earnings, m.ExtraIncome, m.GrossIncome, m.IncomeTax, m.EmployerTax, m.Deductions, m.NetIncome,
		m.NeedsReview, m.ReviewReason, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, fmt.Sprintf("position %s on payroll %s", line.PositionID, line.PayrollID))
	}
	return nil
}

// UpdateLineFigures writes the computed figures of every line in one batch.
func (s *Store) UpdateLineFigures(ctx context.Context, lines []domain.PayrollLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelPayrollLine(l, l.GrossIncome.Currency)
		batch.Queue(`
			UPDATE payroll_lines SET
				hours_worked = $1, currency_code = $2, earnings = $3, extra_income = $4, gross_income = $5,
				income_tax = $6, employer_tax = $7, deductions = $8, net_income = $9,
				needs_review = $10, review_reason = $11, last_updated_at = $12, last_updated_by = $13
			WHERE line_id = $14`,
			m.HoursWorked, m.CurrencyCode, m.Earnings, m.ExtraIncome, m.GrossIncome,
			m.IncomeTax, m.EmployerTax, m.Deductions, m.NetIncome,
			m.NeedsReview, m.ReviewReason, m.LastUpdatedAt, m.LastUpdatedBy, m.LineID,
		)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for _, l := range lines {
		tag, err := br.Exec()
		if err != nil {
			return storeError(err, "payroll line "+l.LineID)
		}
		if err := requireAffected(tag, "payroll line "+l.LineID); err != nil {
			return err
		}
	}
	return br.Close()
}

func (s *Store) SaveAddition(ctx context.Context, addition domain.Addition) error {
	m := mapping.ToModelAddition(addition)
	_, err := s.db.Exec(ctx, `
		INSERT INTO payroll_additions (`+additionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.AdditionID, m.PayrollID, m.LineID, m.ItemName, m.AccountID, m.Amount, m.CurrencyCode,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "addition "+addition.AdditionID)
	}
	return nil
}

func (s *Store) DeleteAddition(ctx context.Context, lineID, additionID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM payroll_additions WHERE line_id = $1 AND addition_id = $2`, lineID, additionID)
	if err != nil {
		return storeError(err, "addition "+additionID)
	}
	return requireAffected(tag, "addition "+additionID)
}

func (s *Store) ListCollectorsByPayroll(ctx context.Context, payrollID string) ([]domain.TaxContributionCollector, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+collectorColumns+` FROM tax_collectors
		WHERE payroll_id = $1 ORDER BY line_id, contribution_id`, payrollID)
	if err != nil {
		return nil, storeError(err, "collectors of payroll "+payrollID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TaxCollector])
	if err != nil {
		return nil, storeError(err, "collectors of payroll "+payrollID)
	}
	out := make([]domain.TaxContributionCollector, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainTaxCollector(m))
	}
	return out, nil
}

func (s *Store) ListDeductionsByPayroll(ctx context.Context, payrollID string) ([]domain.PayrollDeduction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+deductionColumns+` FROM payroll_deductions
		WHERE payroll_id = $1 ORDER BY line_id, plan_id`, payrollID)
	if err != nil {
		return nil, storeError(err, "deductions of payroll "+payrollID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PayrollDeduction])
	if err != nil {
		return nil, storeError(err, "deductions of payroll "+payrollID)
	}
	out := make([]domain.PayrollDeduction, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainPayrollDeduction(m))
	}
	return out, nil
}

// PaymentHistory reads the installments of runs at CLOSED or later, oldest first.
func (s *Store) PaymentHistory(ctx context.Context, creditIDs []string, excludePayrollID string) (map[string][]domain.Money, error) {
	out := make(map[string][]domain.Money)
	if len(creditIDs) == 0 {
		return out, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT d.credit_id, d.amount, d.currency_code
		FROM payroll_deductions d
		JOIN payroll_runs p ON p.payroll_id = d.payroll_id
		WHERE d.credit_id = ANY($1)
			AND d.payroll_id <> $2
			AND p.status IN ('CLOSED', 'APPROVED', 'PAID')
		ORDER BY d.recorded_at, d.deduction_id`,
		creditIDs, excludePayrollID,
	)
	if err != nil {
		return nil, storeError(err, "credit payment history")
	}
	defer rows.Close()

	for rows.Next() {
		var m models.PayrollDeduction
		if err := rows.Scan(&m.CreditID, &m.Amount, &m.CurrencyCode); err != nil {
			return nil, storeError(err, "credit payment history")
		}
		out[m.CreditID] = append(out[m.CreditID], domain.NewMoney(m.Amount, m.CurrencyCode))
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "credit payment history")
	}
	return out, nil
}

func queueClearAutomatic(batch *pgx.Batch, payrollID string) {
	batch.Queue(`DELETE FROM tax_collectors WHERE payroll_id = $1`, payrollID)
	batch.Queue(`DELETE FROM payroll_deductions WHERE payroll_id = $1 AND NOT manual`, payrollID)
}

// ReplaceAuditRows clears the automatic rows of a run and writes the given ones. Manual
// deductions present in deductions have their amount refreshed; the others are deleted.
func (s *Store) ReplaceAuditRows(ctx context.Context, payrollID string, collectors []domain.TaxContributionCollector, deductions []domain.PayrollDeduction) error {
	keptManual := make([]string, 0)
	for _, d := range deductions {
		if d.Manual {
			keptManual = append(keptManual, d.DeductionID)
		}
	}

	batch := &pgx.Batch{}
	queueClearAutomatic(batch, payrollID)
	batch.Queue(`DELETE FROM payroll_deductions WHERE payroll_id = $1 AND manual AND NOT (deduction_id = ANY($2))`,
		payrollID, keptManual,
	)
	for _, c := range collectors {
		m := mapping.ToModelTaxCollector(c)
		batch.Queue(`INSERT INTO tax_collectors (`+collectorColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.CollectorID, m.PayrollID, m.LineID, m.ContributionID, m.PayBy, m.Amount, m.CurrencyCode,
		)
	}
	for _, d := range deductions {
		m := mapping.ToModelPayrollDeduction(d)
		batch.Queue(`
			INSERT INTO payroll_deductions (`+deductionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (deduction_id) DO UPDATE SET
				amount = EXCLUDED.amount, currency_code = EXCLUDED.currency_code, recorded_at = EXCLUDED.recorded_at`,
			m.DeductionID, m.PayrollID, m.LineID, m.PlanID, m.CreditID, m.Amount, m.CurrencyCode, m.Manual, m.RecordedAt,
		)
	}
	return s.sendBatch(ctx, batch, "audit rows of payroll "+payrollID)
}

func (s *Store) ClearAutomaticAuditRows(ctx context.Context, payrollID string) error {
	batch := &pgx.Batch{}
	queueClearAutomatic(batch, payrollID)
	return s.sendBatch(ctx, batch, "audit rows of payroll "+payrollID)
}

// SaveManualDeduction inserts an operator keyed installment. The partial unique index on
// (line_id, plan_id) allows one per plan and line.
func (s *Store) SaveManualDeduction(ctx context.Context, deduction domain.PayrollDeduction) error {
	m := mapping.ToModelPayrollDeduction(deduction)
	_, err := s.db.Exec(ctx, `
		INSERT INTO payroll_deductions (`+deductionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)`,
		m.DeductionID, m.PayrollID, m.LineID, m.PlanID, m.CreditID, m.Amount, m.CurrencyCode, m.RecordedAt,
	)
	if err != nil {
		return storeError(err, fmt.Sprintf("manual installment of plan %s on line %s", deduction.PlanID, deduction.LineID))
	}
	return nil
}

func (s *Store) DeleteManualDeduction(ctx context.Context, lineID, deductionID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM payroll_deductions WHERE line_id = $1 AND deduction_id = $2 AND manual`, lineID, deductionID)
	if err != nil {
		return storeError(err, "manual deduction "+deductionID)
	}
	return requireAffected(tag, "manual deduction "+deductionID)
}
