package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPayrollTransition moves a payroll run to a new status.
	TaskPayrollTransition = "payroll:transition"
)

// TransitionPayload describes a queued payroll transition.
type TransitionPayload struct {
	PayrollID   string `json:"payrollID"`
	Status      string `json:"status"`
	RequestedBy string `json:"requestedBy"`
}

func (p TransitionPayload) validate() error {
	if p.PayrollID == "" {
		return fmt.Errorf("%w: payroll id is required", apperrors.ErrValidation)
	}
	if p.RequestedBy == "" {
		return fmt.Errorf("%w: requesting user is required", apperrors.ErrValidation)
	}
	_, err := domain.ParsePayrollStatus(p.Status)
	return err
}

// NewTransitionTask constructs an Asynq task.
func NewTransitionTask(payload TransitionPayload) (*asynq.Task, error) {
	if err := payload.validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPayrollTransition, data), nil
}
