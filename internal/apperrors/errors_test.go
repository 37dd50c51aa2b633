package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to save payroll", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Contains(t, err.Error(), "failed to save payroll")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestAppError_ClientCodeDoesNotMatchInternal(t *testing.T) {
	err := apperrors.NewAppError(404, "missing", apperrors.ErrNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrInternal)
}

func TestLineErrors(t *testing.T) {
	errs := apperrors.LineErrors{
		apperrors.NewLineError("line-1", "tax income", apperrors.ErrNoMatchingClause),
		apperrors.NewLineError("line-2", "", apperrors.ErrMissingHoursWorked),
	}
	var err error = fmt.Errorf("close payroll: %w", errs)

	assert.ErrorIs(t, err, apperrors.ErrNoMatchingClause)
	assert.ErrorIs(t, err, apperrors.ErrMissingHoursWorked)
	assert.NotErrorIs(t, err, apperrors.ErrAmbiguousBankAccount)
	assert.Contains(t, err.Error(), "line line-1 (tax income)")
	assert.Contains(t, err.Error(), "2 payroll line(s) failed")

	extracted, ok := apperrors.AsLineErrors(err)
	require.True(t, ok)
	assert.Len(t, extracted, 2)
	assert.Equal(t, "line-2", extracted[1].LineID)
}

func TestAsLineErrors_Single(t *testing.T) {
	err := fmt.Errorf("wrap: %w", apperrors.NewLineError("l", "plan p", apperrors.ErrMissingExchangeRate))
	extracted, ok := apperrors.AsLineErrors(err)
	require.True(t, ok)
	assert.Len(t, extracted, 1)

	_, ok = apperrors.AsLineErrors(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsEngineError(t *testing.T) {
	assert.True(t, apperrors.IsEngineError(fmt.Errorf("x: %w", apperrors.ErrNoMatchingClause)))
	assert.True(t, apperrors.IsEngineError(apperrors.NewValidationError("bad")))
	assert.False(t, apperrors.IsEngineError(errors.New("timeout")))
}
