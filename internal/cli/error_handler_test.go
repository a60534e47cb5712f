package cli

import (
	stderrors "errors"
	"testing"

	"work-timer/internal/errors"
	"work-timer/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestErrorHandler_Handle(t *testing.T) {
	ve := validation.NewValidationError()
	ve.AddRequiredError("date")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid state", errors.NewNotRunningError("STOPPED"), "failed to stop work: no active work session"},
		{"database", errors.NewDatabaseError("save", stderrors.New("locked")), "failed to stop work: A database error occurred. Please try again."},
		{"timeout", errors.NewTimeoutError("save", "5s"), "failed to stop work: The operation timed out. Please try again."},
		{"raw validation", ve, "failed to stop work: " + ve.GetUserFriendlyMessage()},
		{"plain", stderrors.New("boom"), "failed to stop work: boom"},
	}

	handler := NewErrorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.Handle("stop work", tt.err)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	handler := NewErrorHandler()
	assert.NoError(t, handler.HandleSimple(nil))
	assert.EqualError(t, handler.HandleSimple(errors.NewNotPausedError("RUNNING")), "timer is not paused (status: RUNNING)")
}

func TestErrorHandler_Classification(t *testing.T) {
	handler := NewErrorHandler()
	ve := validation.NewValidationError()
	ve.AddRequiredError("date")

	assert.True(t, handler.IsValidationError(ve))
	assert.True(t, handler.IsValidationError(ve.Err()))
	assert.True(t, handler.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.False(t, handler.IsValidationError(errors.NewNotRunningError("STOPPED")))

	assert.True(t, handler.IsNotFoundError(errors.NewNotFoundError("work day", "2024-01-15")))
	assert.False(t, handler.IsNotFoundError(stderrors.New("missing")))

	assert.Equal(t, errors.CodeNotRunning, handler.GetErrorCode(errors.NewNotRunningError("STOPPED")))
	assert.Equal(t, "UNKNOWN_ERROR", handler.GetErrorCode(stderrors.New("x")))
}
