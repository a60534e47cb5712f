package domain

import (
	"strings"

	"work-timer/internal/errors"
)

// TimerStatus is the state of a work day's timer.
type TimerStatus string

const (
	StatusStopped TimerStatus = "STOPPED"
	StatusRunning TimerStatus = "RUNNING"
	StatusPaused  TimerStatus = "PAUSED"
)

// allowedTransitions lists every legal status change. Self-transitions are not legal.
var allowedTransitions = map[TimerStatus]map[TimerStatus]bool{
	StatusStopped: {StatusRunning: true},
	StatusRunning: {StatusPaused: true},
	StatusPaused:  {StatusRunning: true},
}

// ParseTimerStatus accepts the serialized status names, case-insensitively.
func ParseTimerStatus(s string) (TimerStatus, error) {
	status := TimerStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", errors.NewInvalidInputError("status", s, "must be one of STOPPED, RUNNING, PAUSED")
	}
	return status, nil
}

// IsValid reports whether s is one of the three known statuses.
func (s TimerStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s TimerStatus) CanTransitionTo(target TimerStatus) bool {
	return allowedTransitions[s][target]
}

// DisplayText is the human label for the status.
func (s TimerStatus) DisplayText() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusStopped:
		return "Stopped"
	default:
		return string(s)
	}
}

// CSSClass is the style key used by renderers.
func (s TimerStatus) CSSClass() string {
	return "status-" + strings.ToLower(string(s))
}

func (s TimerStatus) String() string {
	return string(s)
}
