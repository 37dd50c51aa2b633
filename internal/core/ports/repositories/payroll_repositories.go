package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// PayrollReader defines read operations for payroll runs
type PayrollReader interface {
	// FindPayrollByID retrieves a specific run by its unique identifier.
	FindPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRun, error)

	// FindPayrollForUpdate retrieves a run and locks it until the surrounding transaction ends.
	// Outside a transaction it behaves like FindPayrollByID.
	FindPayrollForUpdate(ctx context.Context, payrollID string) (*domain.PayrollRun, error)

	// ListPayrolls retrieves runs ordered by pay date, newest first, using token-based pagination.
	// It returns the runs, a token for the next page, and an error.
	ListPayrolls(ctx context.Context, limit int, nextToken *string) ([]domain.PayrollRun, *string, error)
}

// PayrollWriter defines write operations for payroll runs
type PayrollWriter interface {
	// SavePayroll persists a new run.
	SavePayroll(ctx context.Context, run domain.PayrollRun) error

	// UpdatePayrollStatus moves a run to status.
	UpdatePayrollStatus(ctx context.Context, payrollID string, status domain.PayrollStatus, userID string, at time.Time) error
}

// PayrollRepositoryFacade combines all payroll run repository interfaces
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}

// PayrollLineReader defines read operations for lines and their additions
type PayrollLineReader interface {
	// FindLineByID retrieves a line, scoped to its run.
	FindLineByID(ctx context.Context, payrollID, lineID string) (*domain.PayrollLine, error)

	// ListLinesByPayroll retrieves every line of a run ordered by line ID.
	ListLinesByPayroll(ctx context.Context, payrollID string) ([]domain.PayrollLine, error)

	// ListAdditionsByPayroll retrieves every addition of a run.
	ListAdditionsByPayroll(ctx context.Context, payrollID string) ([]domain.Addition, error)
}

// PayrollLineWriter defines write operations for lines and their additions
type PayrollLineWriter interface {
	// SaveLine persists a new line. A position already on the run is ErrDuplicate.
	SaveLine(ctx context.Context, line domain.PayrollLine) error

	// UpdateLineFigures stores the computed figures and review flags of lines in one batch.
	UpdateLineFigures(ctx context.Context, lines []domain.PayrollLine) error

	// SaveAddition persists a new addition.
	SaveAddition(ctx context.Context, addition domain.Addition) error

	// DeleteAddition removes an addition from a line.
	DeleteAddition(ctx context.Context, lineID, additionID string) error
}

// PayrollLineRepositoryFacade combines all line repository interfaces
type PayrollLineRepositoryFacade interface {
	PayrollLineReader
	PayrollLineWriter
}

// PayrollAuditReader defines read operations for the collector and deduction rows of runs
type PayrollAuditReader interface {
	// ListCollectorsByPayroll retrieves the tax collector rows of a run.
	ListCollectorsByPayroll(ctx context.Context, payrollID string) ([]domain.TaxContributionCollector, error)

	// ListDeductionsByPayroll retrieves the deduction rows of a run, manual ones included.
	ListDeductionsByPayroll(ctx context.Context, payrollID string) ([]domain.PayrollDeduction, error)

	// PaymentHistory returns, per credit, the deduction amounts recorded on runs that reached
	// CLOSED. Rows belonging to excludePayrollID are left out.
	PaymentHistory(ctx context.Context, creditIDs []string, excludePayrollID string) (map[string][]domain.Money, error)
}

// PayrollAuditWriter defines write operations for the collector and deduction rows of runs
type PayrollAuditWriter interface {
	// ReplaceAuditRows swaps the run's collectors and deductions for the given rows. Manual
	// deductions missing from deductions took no installment and are deleted.
	ReplaceAuditRows(ctx context.Context, payrollID string, collectors []domain.TaxContributionCollector, deductions []domain.PayrollDeduction) error

	// ClearAutomaticAuditRows deletes the run's collectors and automatic deductions.
	ClearAutomaticAuditRows(ctx context.Context, payrollID string) error

	// SaveManualDeduction persists an operator keyed installment.
	SaveManualDeduction(ctx context.Context, deduction domain.PayrollDeduction) error

	// DeleteManualDeduction removes an operator keyed installment from a line.
	DeleteManualDeduction(ctx context.Context, lineID, deductionID string) error
}

// PayrollAuditRepositoryFacade combines all audit row repository interfaces
type PayrollAuditRepositoryFacade interface {
	PayrollAuditReader
	PayrollAuditWriter
}
