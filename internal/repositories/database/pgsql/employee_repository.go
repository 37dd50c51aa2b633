package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/SscSPs/payroll_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `employee_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

const positionColumns = `position_id, employee_id, title, wage_type, wage_period, wage_amount, wage_currency_code,
	other_earnings, state, is_active, created_at, created_by, last_updated_at, last_updated_by`

const bankAccountColumns = `bank_account_id, employee_id, ledger_account_id, account_number, is_current, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const timeSheetColumns = `entry_id, employee_id, entry_date, clock_in, clock_out, break_start, break_end`

func (s *Store) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	rows, err := s.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return nil, storeError(err, "employee "+employeeID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Employee])
	if err != nil {
		return nil, storeError(err, "employee "+employeeID)
	}
	e := mapping.ToDomainEmployee(m)
	return &e, nil
}

func (s *Store) FindPositionByID(ctx context.Context, positionID string) (*domain.EmployeePosition, error) {
	found, err := s.FindPositionsByIDs(ctx, []string{positionID})
	if err != nil {
		return nil, err
	}
	p, ok := found[positionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("position " + positionID)
	}
	return &p, nil
}

func (s *Store) FindPositionsByIDs(ctx context.Context, positionIDs []string) (map[string]domain.EmployeePosition, error) {
	out := make(map[string]domain.EmployeePosition, len(positionIDs))
	if len(positionIDs) == 0 {
		return out, nil
	}
	rows, err := s.db.Query(ctx, `SELECT `+positionColumns+` FROM employee_positions WHERE position_id = ANY($1)`, positionIDs)
	if err != nil {
		return nil, storeError(err, "positions")
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.EmployeePosition])
	if err != nil {
		return nil, storeError(err, "positions")
	}
	for _, m := range found {
		p, err := mapping.ToDomainEmployeePosition(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map position "+m.PositionID, err)
		}
		out[p.PositionID] = p
	}
	return out, nil
}

func (s *Store) ListBankAccountsByEmployees(ctx context.Context, employeeIDs []string) (map[string][]domain.BankAccount, error) {
	out := make(map[string][]domain.BankAccount)
	if len(employeeIDs) == 0 {
		return out, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+bankAccountColumns+` FROM bank_accounts
		WHERE employee_id = ANY($1) ORDER BY employee_id, bank_account_id`, employeeIDs)
	if err != nil {
		return nil, storeError(err, "bank accounts")
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankAccount])
	if err != nil {
		return nil, storeError(err, "bank accounts")
	}
	for _, m := range found {
		out[m.EmployeeID] = append(out[m.EmployeeID], mapping.ToDomainBankAccount(m))
	}
	return out, nil
}

func (s *Store) ListTimeSheetEntries(ctx context.Context, employeeID string, from, to time.Time) ([]domain.TimeSheetEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+timeSheetColumns+` FROM timesheet_entries
		WHERE employee_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY clock_in`,
		employeeID, from, to,
	)
	if err != nil {
		return nil, storeError(err, "timesheet of employee "+employeeID)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TimeSheetEntry])
	if err != nil {
		return nil, storeError(err, "timesheet of employee "+employeeID)
	}
	out := make([]domain.TimeSheetEntry, 0, len(found))
	for _, m := range found {
		out = append(out, mapping.ToDomainTimeSheetEntry(m))
	}
	return out, nil
}

func (s *Store) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	_, err := s.db.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.EmployeeID, m.Name, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "employee "+employee.EmployeeID)
	}
	return nil
}

// SavePosition inserts or replaces a position.
func (s *Store) SavePosition(ctx context.Context, position domain.EmployeePosition) error {
	m, err := mapping.ToModelEmployeePosition(position)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map position "+position.PositionID, err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO employee_positions (`+positionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (position_id) DO UPDATE SET
			title = EXCLUDED.title, wage_type = EXCLUDED.wage_type, wage_period = EXCLUDED.wage_period,
			wage_amount = EXCLUDED.wage_amount, wage_currency_code = EXCLUDED.wage_currency_code,
			other_earnings = EXCLUDED.other_earnings, state = EXCLUDED.state, is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
		m.PositionID, m.EmployeeID, m.Title, m.WageType, m.WagePeriod, m.WageAmount, m.WageCurrency,
		m.OtherEarnings, m.State, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "position "+position.PositionID)
	}
	return nil
}

// SaveBankAccount inserts or replaces a bank account.
func (s *Store) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	_, err := s.db.Exec(ctx, `
		INSERT INTO bank_accounts (`+bankAccountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (bank_account_id) DO UPDATE SET
			ledger_account_id = EXCLUDED.ledger_account_id, account_number = EXCLUDED.account_number,
			is_current = EXCLUDED.is_current, is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
		m.BankAccountID, m.EmployeeID, m.LedgerAccountID, m.AccountNumber, m.IsCurrent, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "bank account "+account.BankAccountID)
	}
	return nil
}

func (s *Store) SaveTimeSheetEntry(ctx context.Context, entry domain.TimeSheetEntry) error {
	m := mapping.ToModelTimeSheetEntry(entry)
	_, err := s.db.Exec(ctx, `
		INSERT INTO timesheet_entries (`+timeSheetColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.EntryID, m.EmployeeID, m.EntryDate, m.ClockIn, m.ClockOut, m.BreakStart, m.BreakEnd,
	)
	if err != nil {
		return storeError(err, "timesheet entry "+entry.EntryID)
	}
	return nil
}
