// Package errors provides centralized error definitions and error handling utilities
// for the factorize tool. It defines sentinel errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures while factorizing a number:
//   - FactorizationError: a number could not be factorized (carries the input)
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input (not an integer, below 2, too many digits)
//   - TimeoutError: decomposition exceeded its deadline
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewValidationError("number must be greater than 1").
//		WithField("number").WithValue("1").WithCause(errors.ErrNoFactorization)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvalidInput) { ... }
//
//	var verr *errors.ValidationError
//	if errors.As(err, &verr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Input-related sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNotInteger indicates that the input is not a base-10 integer.
	ErrNotInteger = New("not an integer")
	// ErrNoFactorization indicates a number below 2, which has no prime factorization.
	ErrNoFactorization = New("number has no prime factorization")
	// ErrInputTooLarge indicates that the input exceeds the configured digit limit.
	ErrInputTooLarge = New("number exceeds digit limit")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// FactorError is the base interface for all errors raised by this module.
// It extends the standard error interface with additional methods for
// error handling and classification.
type FactorError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the operation may succeed on retry,
	// for example with a longer deadline.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// FactorizationError reports that a specific number could not be factorized.
//
// Example:
//
//	err := errors.NewFactorizationError("decomposition aborted", ctx.Err()).WithNumber("1000003")
//	fmt.Println(err) // "factorization error [number=1000003]: decomposition aborted: context deadline exceeded"
type FactorizationError struct {
	baseError
	Number string
}

// NewFactorizationError creates a new FactorizationError.
func NewFactorizationError(message string, cause error) *FactorizationError {
	return &FactorizationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithNumber adds the input number to the error context.
func (e *FactorizationError) WithNumber(n string) *FactorizationError {
	e.Number = n
	return e
}

// WithSeverity sets the error severity.
func (e *FactorizationError) WithSeverity(s Severity) *FactorizationError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *FactorizationError) Error() string {
	prefix := "factorization error"
	if e.Number != "" {
		prefix = fmt.Sprintf("factorization error [number=%s]", e.Number)
	}
	switch {
	case e.message == "" && e.cause != nil:
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	case e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// IsRetryable reports whether the underlying cause is retryable.
func (e *FactorizationError) IsRetryable() bool {
	return e.retryable || IsRetryable(e.cause)
}

// Is checks if this error matches the target.
func (e *FactorizationError) Is(target error) bool {
	if _, ok := target.(*FactorizationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("number must be greater than 1")
//	err = err.WithField("number").WithValue("0")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("decomposition", 10*time.Second)
//	fmt.Println(err) // "timeout error: decomposition (timeout: 10s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // a longer deadline may succeed
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithDuration records the deadline that was exceeded.
func (e *TimeoutError) WithDuration(d time.Duration) *TimeoutError {
	e.Duration = d
	return e
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s", e.Operation)
	if e.Duration > 0 {
		base = fmt.Sprintf("%s (timeout: %s)", base, e.Duration)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a condition that may
// succeed on retry (currently only timeouts).
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var factorErr FactorError
	if As(err, &factorErr) {
		return factorErr.IsRetryable()
	}

	return Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    fmt.Fprintln(os.Stderr, err)
//	} else {
//	    fmt.Fprintln(os.Stderr, "an internal error occurred")
//	    logger.Error("internal error", "error", err.Error())
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var factorErr FactorError
	if As(err, &factorErr) {
		return factorErr.IsUserFacing()
	}

	var validation *ValidationError
	var timeout *TimeoutError
	return As(err, &validation) || As(err, &timeout)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement FactorError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var factorErr FactorError
	if As(err, &factorErr) {
		return factorErr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load config")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to factorize %s", input)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
