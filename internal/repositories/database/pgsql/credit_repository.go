package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/SscSPs/payroll_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const creditColumns = `credit_id, employee_id, item, principal, currency_code, interest_rate, credit_date,
	payment_start_date, account_id, is_completed, created_at, created_by, last_updated_at, last_updated_by`

const planColumns = `plan_id, credit_id, name, deduct_from, percent, status,
	created_at, created_by, last_updated_at, last_updated_by`

func (s *Store) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	rows, err := s.db.Query(ctx, `SELECT `+creditColumns+` FROM credits WHERE credit_id = $1`, creditID)
	if err != nil {
		return nil, storeError(err, "credit "+creditID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Credit])
	if err != nil {
		return nil, storeError(err, "credit "+creditID)
	}
	c := mapping.ToDomainCredit(m)
	return &c, nil
}

func (s *Store) ListPlansByCredit(ctx context.Context, creditID string) ([]domain.PaymentPlan, error) {
	rows, err := s.db.Query(ctx, `SELECT `+planColumns+` FROM payment_plans WHERE credit_id = $1 ORDER BY plan_id`, creditID)
	if err != nil {
		return nil, storeError(err, "plans of credit "+creditID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentPlan])
	if err != nil {
		return nil, storeError(err, "plans of credit "+creditID)
	}
	out := make([]domain.PaymentPlan, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainPaymentPlan(m))
	}
	return out, nil
}

var errLockOutsideTx = errors.New("pgsql store: credit locks need a transaction")

// LockEmployeeCredits locks the open credits of employeeIDs in credit ID order, so two
// transactions locking overlapping sets cannot deadlock.
func (s *Store) LockEmployeeCredits(ctx context.Context, employeeIDs []string) error {
	if s.tx == nil {
		return errLockOutsideTx
	}
	if len(employeeIDs) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		SELECT credit_id FROM credits
		WHERE employee_id = ANY($1) AND NOT is_completed
		ORDER BY credit_id
		FOR UPDATE`,
		employeeIDs,
	)
	if err != nil {
		return storeError(err, "credit locks")
	}
	return nil
}

// ListCreditPlansByEmployees joins open credits to their plans.
func (s *Store) ListCreditPlansByEmployees(ctx context.Context, employeeIDs []string) ([]domain.CreditPlan, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT
			c.credit_id, c.employee_id, c.item, c.principal, c.currency_code, c.interest_rate, c.credit_date,
			c.payment_start_date, c.account_id, c.is_completed,
			c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
			p.plan_id, p.name, p.deduct_from, p.percent, p.status,
			p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM credits c
		JOIN payment_plans p ON p.credit_id = c.credit_id
		WHERE c.employee_id = ANY($1) AND NOT c.is_completed
		ORDER BY c.credit_id, p.plan_id`,
		employeeIDs,
	)
	if err != nil {
		return nil, storeError(err, "credit plans")
	}
	defer rows.Close()

	var out []domain.CreditPlan
	for rows.Next() {
		var c models.Credit
		var p models.PaymentPlan
		if err := rows.Scan(
			&c.CreditID, &c.EmployeeID, &c.Item, &c.Principal, &c.CurrencyCode, &c.InterestRate, &c.CreditDate,
			&c.PaymentStartDate, &c.AccountID, &c.IsCompleted,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
			&p.PlanID, &p.Name, &p.DeductFrom, &p.Percent, &p.Status,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, storeError(err, "credit plans")
		}
		p.CreditID = c.CreditID
		out = append(out, domain.CreditPlan{Credit: mapping.ToDomainCredit(c), Plan: mapping.ToDomainPaymentPlan(p)})
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "credit plans")
	}
	return out, nil
}

func (s *Store) SaveCredit(ctx context.Context, credit domain.Credit) error {
	m := mapping.ToModelCredit(credit)
	_, err := s.db.Exec(ctx, `
		INSERT INTO credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.CreditID, m.EmployeeID, m.Item, m.Principal, m.CurrencyCode, m.InterestRate, m.CreditDate,
		m.PaymentStartDate, m.AccountID, m.IsCompleted, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "credit "+credit.CreditID)
	}
	return nil
}

// SavePlan inserts or replaces a plan.
func (s *Store) SavePlan(ctx context.Context, plan domain.PaymentPlan) error {
	m := mapping.ToModelPaymentPlan(plan)
	_, err := s.db.Exec(ctx, `
		INSERT INTO payment_plans (`+planColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (plan_id) DO UPDATE SET
			name = EXCLUDED.name, deduct_from = EXCLUDED.deduct_from, percent = EXCLUDED.percent,
			status = EXCLUDED.status, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
		m.PlanID, m.CreditID, m.Name, m.DeductFrom, m.Percent, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "payment plan "+plan.PlanID)
	}
	return nil
}

func (s *Store) MarkCreditsCompleted(ctx context.Context, creditIDs []string, userID string, at time.Time) error {
	if len(creditIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	batch.Queue(`
		UPDATE credits SET is_completed = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE credit_id = ANY($3)`, at, userID, creditIDs)
	batch.Queue(`
		UPDATE payment_plans SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE credit_id = ANY($4)`, string(domain.PlanCompleted), at, userID, creditIDs)
	return s.sendBatch(ctx, batch, "credit completion")
}

func (s *Store) UpdatePlanStatuses(ctx context.Context, planIDs []string, status domain.PlanStatus, userID string, at time.Time) error {
	if len(planIDs) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		UPDATE payment_plans SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE plan_id = ANY($4)`,
		string(status), at, userID, planIDs,
	)
	if err != nil {
		return storeError(err, "payment plan statuses")
	}
	return nil
}
