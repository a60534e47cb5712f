package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeInvalidState
	ErrorTypeTimeout
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	case ErrorTypeInvalidState:
		return "invalid_state"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error codes for work-day and session rule violations.
const (
	CodeInvalidDuration   = "INVALID_DURATION"
	CodeInvalidDate       = "INVALID_DATE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotRunning        = "NOT_RUNNING"
	CodeNotPaused         = "NOT_PAUSED"
	CodeDateMismatch      = "DATE_MISMATCH"
	CodeAlreadyStopped    = "ALREADY_STOPPED"
	CodeInvalidTimeRange  = "INVALID_TIME_RANGE"
	CodeInvalidWorkDay    = "INVALID_WORK_DAY"
	CodeNoDeduction       = "DEDUCTION_NOT_APPLICABLE"
	CodeStillRunning      = "SESSION_STILL_RUNNING"
)

// Sentinels for errors.Is. AppError.Is compares Type and Code only.
var (
	ErrInvalidDuration   = &AppError{Type: ErrorTypeInvalidInput, Code: CodeInvalidDuration}
	ErrInvalidDate       = &AppError{Type: ErrorTypeInvalidInput, Code: CodeInvalidDate}
	ErrInvalidTransition = &AppError{Type: ErrorTypeInvalidState, Code: CodeInvalidTransition}
	ErrNotRunning        = &AppError{Type: ErrorTypeInvalidState, Code: CodeNotRunning}
	ErrNotPaused         = &AppError{Type: ErrorTypeInvalidState, Code: CodeNotPaused}
	ErrDateMismatch      = &AppError{Type: ErrorTypeInvalidInput, Code: CodeDateMismatch}
	ErrAlreadyStopped    = &AppError{Type: ErrorTypeInvalidState, Code: CodeAlreadyStopped}
	ErrInvalidTimeRange  = &AppError{Type: ErrorTypeInvalidInput, Code: CodeInvalidTimeRange}
	ErrInvalidWorkDay    = &AppError{Type: ErrorTypeValidation, Code: CodeInvalidWorkDay}
	ErrNoDeduction       = &AppError{Type: ErrorTypeInvalidState, Code: CodeNoDeduction}
	ErrStillRunning      = &AppError{Type: ErrorTypeInvalidState, Code: CodeStillRunning}
	ErrNotFound          = &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}
