package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// Payroll engine integrity errors. None of these are transient and none should be retried.
var (
	// ErrCurrencyMismatch is returned for arithmetic between amounts of different currency or period.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrMissingExchangeRate is returned when a conversion is needed but no usable rate is configured.
	ErrMissingExchangeRate = errors.New("missing exchange rate")
	// ErrUnsupportedCurrency is returned when a rate is asked to exchange a currency it does not cover.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrNoMatchingClause means bracket resolution found no clause for the income.
	ErrNoMatchingClause = errors.New("no matching tax clause")
	// ErrMissingHoursWorked is returned for a per-rate position without hours.
	ErrMissingHoursWorked = errors.New("missing hours worked")
	// ErrInvalidStateTransition is returned when a run or line is changed outside its mutable window.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrAmbiguousBankAccount means zero or several current bank accounts exist at pay time.
	ErrAmbiguousBankAccount = errors.New("ambiguous bank account")
	// ErrUnbalancedPostings means a journal's debits and credits differ.
	ErrUnbalancedPostings = errors.New("postings do not balance")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message. Internal failures (5xx) also match ErrInternal.
func NewAppError(code int, message string, err error) error {
	if code >= 500 {
		if err == nil {
			err = ErrInternal
		} else {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error matching ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// LineError ties an engine failure to the payroll line and the tax, plan or addition at fault.
type LineError struct {
	LineID  string
	Subject string
	Err     error
}

func (e *LineError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("line %s: %v", e.LineID, e.Err)
	}
	return fmt.Sprintf("line %s (%s): %v", e.LineID, e.Subject, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// NewLineError builds a LineError.
func NewLineError(lineID, subject string, err error) *LineError {
	return &LineError{LineID: lineID, Subject: subject, Err: err}
}

// LineErrors collects the failures of every line in a run so they surface together.
type LineErrors []*LineError

func (e LineErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, le := range e {
		parts = append(parts, le.Error())
	}
	return fmt.Sprintf("%d payroll line(s) failed: %s", len(e), strings.Join(parts, "; "))
}

func (e LineErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, le := range e {
		errs = append(errs, le)
	}
	return errs
}

// AsLineErrors extracts the per-line failures from err, if any.
func AsLineErrors(err error) (LineErrors, bool) {
	var many LineErrors
	if errors.As(err, &many) {
		return many, true
	}
	var one *LineError
	if errors.As(err, &one) {
		return LineErrors{one}, true
	}
	return nil, false
}

// IsEngineError reports whether err is a local data integrity failure that must not be retried.
func IsEngineError(err error) bool {
	for _, target := range []error{
		ErrCurrencyMismatch, ErrMissingExchangeRate, ErrUnsupportedCurrency, ErrNoMatchingClause,
		ErrMissingHoursWorked, ErrInvalidStateTransition, ErrAmbiguousBankAccount, ErrUnbalancedPostings,
		ErrValidation, ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
