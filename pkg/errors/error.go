// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid configuration, proposals, versions
//   - Data errors (200-299): Collaborator data that is absent or unusable
//   - Risk errors (300-399): Gate rejections, fail-closed inputs, halted trading
//   - Scoring errors (400-499): Signal scoring and options selection failures
//   - Execution errors (500-599): Order placement, position close, persistence
//   - Alert errors (800-899): Alert delivery failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "daily loss limit must be positive")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataUnavailable, "no technical snapshot for %s", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeOrderFailed, "broker rejected order", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeDataUnavailable) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an engine failure tagged with a code the caller can branch on.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error without a cause.
func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), nil)
}

// Wrap tags cause with code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the first coded error in err's chain, or
// ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var bars *InsufficientDataError
	if errors.As(err, &bars) {
		return ErrCodeInsufficientBars
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsDataUnavailable reports whether err means a collaborator had nothing to give.
// Callers skip the affected symbol instead of failing the cycle.
func IsDataUnavailable(err error) bool {
	return err != nil && GetCode(err).Category() == CategoryData
}

// IsRiskViolation reports whether err comes from a risk gate or a fail-closed risk input.
func IsRiskViolation(err error) bool {
	return err != nil && GetCode(err).Category() == CategoryRisk
}

// InsufficientDataError is returned when a symbol has too few bars for an
// indicator, e.g. a 200 bar moving average over 120 bars. Its code is
// ErrCodeInsufficientBars.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

// NewInsufficientDataErrorf creates an InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
