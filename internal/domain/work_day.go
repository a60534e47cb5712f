package domain

import (
	"fmt"
	"slices"
	"time"

	"work-timer/internal/errors"
)

// WorkDay is the aggregate of all work sessions on one calendar date.
//
// Completed sessions are kept in chronological order and never overlap. At
// most one session is running, and only while the status is RUNNING. Every
// transition returns a new WorkDay and leaves the receiver untouched.
type WorkDay struct {
	date                  WorkDayDate
	sessions              []WorkSession
	currentSession        *WorkSession
	status                TimerStatus
	pauseDeductionApplied bool
}

// NewWorkDay creates an empty, stopped work day.
func NewWorkDay(date WorkDayDate) WorkDay {
	return WorkDay{
		date:   date,
		status: StatusStopped,
	}
}

// Date returns the calendar day.
func (d WorkDay) Date() WorkDayDate { return d.date }

// Status returns the timer status.
func (d WorkDay) Status() TimerStatus { return d.status }

// PauseDeductionApplied reports whether the deduction has been recorded.
func (d WorkDay) PauseDeductionApplied() bool { return d.pauseDeductionApplied }

// Sessions returns a copy of the completed sessions.
func (d WorkDay) Sessions() []WorkSession {
	return slices.Clone(d.sessions)
}

// CurrentSession returns the running session, if any.
func (d WorkDay) CurrentSession() (WorkSession, bool) {
	if d.currentSession == nil {
		return WorkSession{}, false
	}
	return *d.currentSession, true
}

// SessionCount counts completed sessions plus the running one.
func (d WorkDay) SessionCount() int {
	if d.currentSession != nil {
		return len(d.sessions) + 1
	}
	return len(d.sessions)
}

// HasActivity reports whether any session was ever started today.
func (d WorkDay) HasActivity() bool {
	return len(d.sessions) > 0 || d.currentSession != nil
}

// IsActive reports whether the timer is running.
func (d WorkDay) IsActive() bool {
	return d.status == StatusRunning
}

func (d WorkDay) clone() WorkDay {
	next := d
	next.sessions = slices.Clone(d.sessions)
	if d.currentSession != nil {
		current := *d.currentSession
		next.currentSession = &current
	}
	return next
}

func (d WorkDay) lastEnd() (time.Time, bool) {
	if len(d.sessions) == 0 {
		return time.Time{}, false
	}
	return d.sessions[len(d.sessions)-1].EndTime()
}

// StartWork opens a new running session at t.
func (d WorkDay) StartWork(t time.Time) (WorkDay, error) {
	if d.currentSession != nil || !d.status.CanTransitionTo(StatusRunning) {
		return WorkDay{}, errors.NewInvalidTransitionError(d.status.String(), StatusRunning.String())
	}
	if !d.date.Contains(t) {
		return WorkDay{}, errors.NewDateMismatchError(d.date.ToISOString(), WorkDayDateFromTime(t).ToISOString())
	}
	if end, ok := d.lastEnd(); ok && t.Truncate(time.Millisecond).Before(end) {
		return WorkDay{}, errors.NewInvalidTimeRangeError("start time precedes the end of the previous session").
			WithContext("previous_end", end).
			WithContext("start", t)
	}

	next := d.clone()
	session := NewWorkSession(t)
	next.currentSession = &session
	next.status = StatusRunning
	return next, nil
}

// StopWork completes the running session at t and pauses the timer.
func (d WorkDay) StopWork(t time.Time) (WorkDay, error) {
	if d.status != StatusRunning || d.currentSession == nil {
		return WorkDay{}, errors.NewNotRunningError(d.status.String())
	}
	stopped, err := d.currentSession.Stop(t)
	if err != nil {
		return WorkDay{}, err
	}

	next := d.clone()
	next.sessions = append(next.sessions, stopped)
	next.currentSession = nil
	next.status = StatusPaused
	return next, nil
}

// PauseWork is an alias for StopWork.
func (d WorkDay) PauseWork(t time.Time) (WorkDay, error) {
	return d.StopWork(t)
}

// ResumeWork starts a new session after a pause.
func (d WorkDay) ResumeWork(t time.Time) (WorkDay, error) {
	if d.status != StatusPaused {
		return WorkDay{}, errors.NewNotPausedError(d.status.String())
	}
	return d.StartWork(t)
}

// ApplyPauseDeduction marks the deduction as applied. Applying twice is a no-op.
func (d WorkDay) ApplyPauseDeduction() WorkDay {
	if d.pauseDeductionApplied {
		return d
	}
	next := d.clone()
	next.pauseDeductionApplied = true
	return next
}

// Reset returns an empty work day for the same date.
func (d WorkDay) Reset() WorkDay {
	return NewWorkDay(d.date)
}

// TotalWorkTime sums completed sessions and the live duration of the running one.
func (d WorkDay) TotalWorkTime(now time.Time) Duration {
	total := Zero()
	for _, s := range d.sessions {
		total = total.Add(s.Duration())
	}
	return total.Add(d.CurrentSessionDuration(now))
}

// TotalPauseTime sums the gaps between consecutive completed sessions.
func (d WorkDay) TotalPauseTime() Duration {
	total := Zero()
	for i := 1; i < len(d.sessions); i++ {
		prevEnd, _ := d.sessions[i-1].EndTime()
		gap := d.sessions[i].StartTime().Sub(prevEnd)
		if gap > 0 {
			total = total.Add(Duration{ms: gap.Milliseconds()})
		}
	}
	return total
}

// CurrentSessionDuration is the live duration of the running session, or zero.
func (d WorkDay) CurrentSessionDuration(now time.Time) Duration {
	if d.currentSession == nil {
		return Zero()
	}
	return d.currentSession.CurrentDuration(now)
}

// ToData produces the serialized form.
func (d WorkDay) ToData() WorkDayData {
	data := WorkDayData{
		Date:                  d.date.ToISOString(),
		Sessions:              make([]WorkSessionData, 0, len(d.sessions)),
		Status:                d.status.String(),
		PauseDeductionApplied: d.pauseDeductionApplied,
	}
	for _, s := range d.sessions {
		data.Sessions = append(data.Sessions, s.ToData())
	}
	if d.currentSession != nil {
		current := d.currentSession.ToData()
		data.CurrentSession = &current
	}
	return data
}

// WorkDayFromData rebuilds a work day and rejects data that breaks the
// aggregate's invariants instead of trusting the caller's ordering.
func WorkDayFromData(data WorkDayData) (WorkDay, error) {
	date, err := ParseWorkDayDate(data.Date)
	if err != nil {
		return WorkDay{}, err
	}
	status, err := ParseTimerStatus(data.Status)
	if err != nil {
		return WorkDay{}, err
	}

	day := WorkDay{
		date:                  date,
		sessions:              make([]WorkSession, 0, len(data.Sessions)),
		status:                status,
		pauseDeductionApplied: data.PauseDeductionApplied,
	}
	invalid := func(format string, args ...interface{}) error {
		return errors.NewInvalidWorkDayError(data.Date, fmt.Sprintf(format, args...))
	}

	for i, sd := range data.Sessions {
		session, err := WorkSessionFromData(sd)
		if err != nil {
			return WorkDay{}, err
		}
		if session.IsRunning() {
			return WorkDay{}, invalid("session %d (%s) has no end time", i, session.ID())
		}
		if !session.WorkDate().Equals(date) {
			return WorkDay{}, invalid("session %s belongs to %s", session.ID(), session.WorkDate())
		}
		if end, ok := day.lastEnd(); ok && session.StartTime().Before(end) {
			return WorkDay{}, invalid("session %s starts before the previous session ends", session.ID())
		}
		day.sessions = append(day.sessions, session)
	}

	if data.CurrentSession != nil {
		current, err := WorkSessionFromData(*data.CurrentSession)
		if err != nil {
			return WorkDay{}, err
		}
		if current.IsCompleted() {
			return WorkDay{}, invalid("current session %s is already stopped", current.ID())
		}
		if !current.WorkDate().Equals(date) {
			return WorkDay{}, invalid("current session %s belongs to %s", current.ID(), current.WorkDate())
		}
		if end, ok := day.lastEnd(); ok && current.StartTime().Before(end) {
			return WorkDay{}, invalid("current session %s starts before the previous session ends", current.ID())
		}
		day.currentSession = &current
	}

	if (day.currentSession != nil) != (status == StatusRunning) {
		return WorkDay{}, invalid("status %s does not match current session presence", status)
	}
	return day, nil
}
