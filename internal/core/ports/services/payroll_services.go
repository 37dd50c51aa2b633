package services

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/SscSPs/payroll_engine/internal/dto"
)

// PayrollReaderSvc defines read operations for payroll runs and their lines
type PayrollReaderSvc interface {
	// GetPayroll retrieves a specific run by its ID.
	GetPayroll(ctx context.Context, payrollID string) (*domain.PayrollRun, error)

	// ListPayrolls retrieves a paginated list of runs, newest pay date first.
	ListPayrolls(ctx context.Context, params dto.ListPayrollsParams) (*dto.ListPayrollsResponse, error)

	// ListLines retrieves the lines of a run.
	ListLines(ctx context.Context, payrollID string) ([]domain.PayrollLine, error)
}

// PayrollWriterSvc defines write operations for payroll runs and their lines
type PayrollWriterSvc interface {
	// CreatePayroll opens a new run in CREATED.
	CreatePayroll(ctx context.Context, req dto.CreatePayrollRequest, creatorUserID string) (*domain.PayrollRun, error)

	// AddLine puts an employee position on an editable run and recomputes the run.
	AddLine(ctx context.Context, payrollID string, req dto.AddLineRequest, userID string) (*domain.PayrollLine, error)

	// ApplyLineAdjustments applies a batch of edits to a line, then recomputes once.
	ApplyLineAdjustments(ctx context.Context, payrollID, lineID string, req dto.LineAdjustmentsRequest, userID string) (*domain.PayrollLine, error)

	// Recompute recalculates and stores the figures of every line of an editable run.
	Recompute(ctx context.Context, payrollID string, userID string) ([]domain.PayrollLine, error)
}

// PayrollTransitionSvc defines the state machine of payroll runs
type PayrollTransitionSvc interface {
	// Transition moves a run to target, committing every side effect with the status change.
	// Requesting the current status again is a no-op reported through AlreadyApplied.
	Transition(ctx context.Context, payrollID string, target domain.PayrollStatus, userID string) (*dto.TransitionResponse, error)
}

// PayrollSvcFacade combines all payroll-related service interfaces
type PayrollSvcFacade interface {
	PayrollReaderSvc
	PayrollWriterSvc
	PayrollTransitionSvc
}

// TransitionScheduler queues a transition to be run by the worker.
type TransitionScheduler interface {
	// EnqueueTransition returns the ID of the queued task.
	EnqueueTransition(ctx context.Context, payrollID string, target domain.PayrollStatus, requestedBy string) (string, error)
}
