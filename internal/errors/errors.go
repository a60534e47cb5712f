package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewInvalidDurationError reports a negative millisecond count.
func NewInvalidDurationError(milliseconds int64) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("duration cannot be negative: %dms", milliseconds),
		Code:    CodeInvalidDuration,
		Context: map[string]interface{}{
			"milliseconds": milliseconds,
		},
	}
}

// NewDurationOverflowError reports a unit count whose millisecond value does not fit in int64.
func NewDurationOverflowError(count int64, unit string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("duration out of range: %d %s", count, unit),
		Code:    CodeInvalidDuration,
		Context: map[string]interface{}{
			"count": count,
			"unit":  unit,
		},
	}
}

// NewInvalidDateError reports an unparsable calendar date.
func NewInvalidDateError(value string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value),
		Code:    CodeInvalidDate,
		Cause:   cause,
		Context: map[string]interface{}{
			"value": value,
		},
	}
}

// NewInvalidTransitionError reports a timer status change that is not allowed.
func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Code:    CodeInvalidTransition,
		Context: map[string]interface{}{
			"from": from,
			"to":   to,
		},
	}
}

// NewNotRunningError reports a stop or pause without an active session.
func NewNotRunningError(status string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: "no active work session",
		Code:    CodeNotRunning,
		Context: map[string]interface{}{
			"status": status,
		},
	}
}

// NewNotPausedError reports a resume while the timer is not paused.
func NewNotPausedError(status string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("timer is not paused (status: %s)", status),
		Code:    CodeNotPaused,
		Context: map[string]interface{}{
			"status": status,
		},
	}
}

// NewDateMismatchError reports an instant that falls on another calendar day.
func NewDateMismatchError(workDate, actual string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("time falls on %s, not on work day %s", actual, workDate),
		Code:    CodeDateMismatch,
		Context: map[string]interface{}{
			"work_date": workDate,
			"actual":    actual,
		},
	}
}

// NewAlreadyStoppedError reports a second stop of the same session.
func NewAlreadyStoppedError(sessionID string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("work session %s is already stopped", sessionID),
		Code:    CodeAlreadyStopped,
		Context: map[string]interface{}{
			"session_id": sessionID,
		},
	}
}

// NewInvalidTimeRangeError reports an end that is not after its start.
func NewInvalidTimeRangeError(reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid time range: %s", reason),
		Code:    CodeInvalidTimeRange,
		Context: map[string]interface{}{
			"reason": reason,
		},
	}
}

// NewInvalidWorkDayError reports persisted work day data that breaks an invariant.
func NewInvalidWorkDayError(date string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("invalid work day %s: %s", date, reason),
		Code:    CodeInvalidWorkDay,
		Context: map[string]interface{}{
			"date":   date,
			"reason": reason,
		},
	}
}

// NewStillRunningError reports a session left running on an earlier day.
func NewStillRunningError(date string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("a work session started on %s is still running; stop it first", date),
		Code:    CodeStillRunning,
		Context: map[string]interface{}{
			"date": date,
		},
	}
}

// NewNoDeductionError reports a pause deduction the rules do not allow.
func NewNoDeductionError(date string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("pause deduction not applicable for %s: %s", date, reason),
		Code:    CodeNoDeduction,
		Context: map[string]interface{}{
			"date":   date,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeInvalidState:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeInvalidState:
			return false // usage errors
		default:
			return true
		}
	}
	return true
}
