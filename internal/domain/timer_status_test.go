package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerStatusTransitions(t *testing.T) {
	statuses := []TimerStatus{StatusStopped, StatusRunning, StatusPaused}
	allowed := map[TimerStatus]map[TimerStatus]bool{
		StatusStopped: {StatusRunning: true},
		StatusRunning: {StatusPaused: true},
		StatusPaused:  {StatusRunning: true},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, allowed[from][to], from.CanTransitionTo(to))
			})
		}
	}
}

func TestTimerStatusUnknown(t *testing.T) {
	unknown := TimerStatus("FINISHED")
	assert.False(t, unknown.IsValid())
	assert.False(t, unknown.CanTransitionTo(StatusRunning))
	assert.False(t, StatusStopped.CanTransitionTo(unknown))
}

func TestParseTimerStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TimerStatus
		wantErr bool
	}{
		{"RUNNING", StatusRunning, false},
		{"paused", StatusPaused, false},
		{" Stopped ", StatusStopped, false},
		{"FINISHED", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimerStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimerStatusPresentation(t *testing.T) {
	assert.Equal(t, "Running", StatusRunning.DisplayText())
	assert.Equal(t, "Paused", StatusPaused.DisplayText())
	assert.Equal(t, "Stopped", StatusStopped.DisplayText())
	assert.Equal(t, "status-running", StatusRunning.CSSClass())
	assert.Equal(t, "status-paused", StatusPaused.CSSClass())
	assert.Equal(t, "STOPPED", StatusStopped.String())
}
