package pgsql

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/models"
	"github.com/SscSPs/payroll_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const revisionColumns = `revision_id, version, country, date_effective, created_at, created_by, last_updated_at, last_updated_by`

const contributionColumns = `contribution_id, name, tax_type, revision_id, period, pay_by, taken_from, currency_code,
	is_mandatory, is_active, account_id, calc_mode, fixed_value, percent_rate,
	created_at, created_by, last_updated_at, last_updated_by`

const clauseColumns = `contribution_id, line_num, start_amount, end_amount, excess_over, percent, addition`

func (s *Store) FindRevisionByID(ctx context.Context, revisionID string) (*domain.TaxRevision, error) {
	rows, err := s.db.Query(ctx, `SELECT `+revisionColumns+` FROM tax_revisions WHERE revision_id = $1`, revisionID)
	if err != nil {
		return nil, storeError(err, "tax revision "+revisionID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TaxRevision])
	if err != nil {
		return nil, storeError(err, "tax revision "+revisionID)
	}
	r := mapping.ToDomainTaxRevision(m)
	return &r, nil
}

func (s *Store) FindContributionByID(ctx context.Context, contributionID string) (*domain.TaxContribution, error) {
	found, err := s.queryContributions(ctx, `SELECT `+contributionColumns+` FROM tax_contributions WHERE contribution_id = $1`, contributionID)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperrors.NewNotFoundError("tax contribution " + contributionID)
	}
	return &found[0], nil
}

func (s *Store) ListMandatoryContributions(ctx context.Context, revisionID string) ([]domain.TaxContribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM tax_contributions
		WHERE is_mandatory AND is_active AND ($1 = '' OR revision_id = $1)
		ORDER BY created_at, contribution_id`
	return s.queryContributions(ctx, query, revisionID)
}

func (s *Store) ListOptInContributions(ctx context.Context, employeeIDs []string) (map[string][]domain.TaxContribution, error) {
	out := make(map[string][]domain.TaxContribution)
	if len(employeeIDs) == 0 {
		return out, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT employee_id, contribution_id FROM employee_tax_opt_ins
		WHERE employee_id = ANY($1) AND is_active`, employeeIDs)
	if err != nil {
		return nil, storeError(err, "tax opt ins")
	}
	type optIn struct {
		EmployeeID     string `db:"employee_id"`
		ContributionID string `db:"contribution_id"`
	}
	optIns, err := pgx.CollectRows(rows, pgx.RowToStructByName[optIn])
	if err != nil {
		return nil, storeError(err, "tax opt ins")
	}
	if len(optIns) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(optIns))
	for _, o := range optIns {
		ids = append(ids, o.ContributionID)
	}
	contributions, err := s.queryContributions(ctx, `
		SELECT `+contributionColumns+` FROM tax_contributions
		WHERE contribution_id = ANY($1) ORDER BY created_at, contribution_id`, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range contributions {
		for _, o := range optIns {
			if o.ContributionID == t.ContributionID {
				out[o.EmployeeID] = append(out[o.EmployeeID], t)
			}
		}
	}
	return out, nil
}

// queryContributions runs a contribution query and attaches the clauses of rule based rows.
func (s *Store) queryContributions(ctx context.Context, query string, args ...any) ([]domain.TaxContribution, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(err, "tax contributions")
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TaxContribution])
	if err != nil {
		return nil, storeError(err, "tax contributions")
	}

	var ruleBased []string
	for _, m := range found {
		if domain.CalcMode(m.CalcMode) == domain.CalcRuleBased {
			ruleBased = append(ruleBased, m.ContributionID)
		}
	}
	clauses := make(map[string][]models.TaxClause)
	if len(ruleBased) > 0 {
		rows, err := s.db.Query(ctx, `
			SELECT `+clauseColumns+` FROM tax_clauses
			WHERE contribution_id = ANY($1) ORDER BY contribution_id, position`, ruleBased)
		if err != nil {
			return nil, storeError(err, "tax clauses")
		}
		all, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TaxClause])
		if err != nil {
			return nil, storeError(err, "tax clauses")
		}
		for _, c := range all {
			clauses[c.ContributionID] = append(clauses[c.ContributionID], c)
		}
	}

	out := make([]domain.TaxContribution, 0, len(found))
	for _, m := range found {
		t, err := mapping.ToDomainTaxContribution(m, clauses[m.ContributionID])
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map tax contribution "+m.ContributionID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) SaveRevision(ctx context.Context, revision domain.TaxRevision) error {
	m := mapping.ToModelTaxRevision(revision)
	_, err := s.db.Exec(ctx, `
		INSERT INTO tax_revisions (`+revisionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.RevisionID, m.Version, m.Country, m.DateEffective, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storeError(err, "tax revision "+revision.RevisionID)
	}
	return nil
}

// SaveContribution inserts a contribution and its clauses in one batch. Clause position
// keeps the order the caller gave them in.
func (s *Store) SaveContribution(ctx context.Context, contribution domain.TaxContribution) error {
	m, clauses := mapping.ToModelTaxContribution(contribution)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO tax_contributions (`+contributionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		m.ContributionID, m.Name, m.TaxType, m.RevisionID, m.Period, m.PayBy, m.TakenFrom, m.CurrencyCode,
		m.IsMandatory, m.IsActive, m.AccountID, m.CalcMode, m.FixedValue, m.PercentRate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for i, c := range clauses {
		batch.Queue(`
			INSERT INTO tax_clauses (`+clauseColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ContributionID, c.LineNum, c.StartAmount, c.EndAmount, c.ExcessOver, c.Percent, c.Addition, i,
		)
	}
	return s.sendBatch(ctx, batch, "tax contribution "+contribution.ContributionID)
}

func (s *Store) SaveOptIn(ctx context.Context, optIn domain.EmployeeTaxOptIn) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO employee_tax_opt_ins (employee_id, contribution_id, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, contribution_id) DO UPDATE SET is_active = EXCLUDED.is_active`,
		optIn.EmployeeID, optIn.ContributionID, optIn.Active,
	)
	if err != nil {
		return storeError(err, "tax opt in "+optIn.ContributionID)
	}
	return nil
}
