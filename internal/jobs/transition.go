package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/SscSPs/payroll_engine/internal/core/domain"
	portssvc "github.com/SscSPs/payroll_engine/internal/core/ports/services"
	"github.com/SscSPs/payroll_engine/internal/middleware"
	"github.com/hibiken/asynq"
)

// TransitionJob processes payroll transition tasks.
type TransitionJob struct {
	payrolls portssvc.PayrollTransitionSvc
	logger   *slog.Logger
}

// NewTransitionJob constructs a job handler.
func NewTransitionJob(payrolls portssvc.PayrollTransitionSvc, logger *slog.Logger) *TransitionJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransitionJob{payrolls: payrolls, logger: logger}
}

// Handle fulfils the asynq.HandlerFunc contract. Engine and validation failures
// cannot succeed on a retry and are returned wrapped in asynq.SkipRetry.
func (j *TransitionJob) Handle(ctx context.Context, task *asynq.Task) error {
	var payload TransitionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		j.logger.Error("payroll transition: bad payload", slog.Any("error", err))
		return asynq.SkipRetry
	}
	if err := payload.validate(); err != nil {
		j.logger.Error("payroll transition: bad payload", slog.Any("error", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With(
		slog.String("payroll_id", payload.PayrollID),
		slog.String("status", payload.Status),
		slog.String("requested_by", payload.RequestedBy))
	if id, ok := asynq.GetTaskID(ctx); ok {
		logger = logger.With(slog.String("task_id", id))
	}
	ctx = middleware.WithUserID(middleware.WithLogger(ctx, logger), payload.RequestedBy)

	resp, err := j.payrolls.Transition(ctx, payload.PayrollID, domain.PayrollStatus(payload.Status), payload.RequestedBy)
	if err != nil {
		logger.Error("payroll transition failed", slog.Any("error", err))
		if apperrors.IsEngineError(err) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}
	logger.Info("payroll transition done",
		slog.Bool("already_applied", resp.AlreadyApplied),
		slog.String("journal_id", resp.JournalID),
		slog.Int("flagged_lines", len(resp.FlaggedLines)))
	return nil
}
