package domain

import (
	"time"

	"github.com/google/uuid"

	"work-timer/internal/errors"
)

// WorkSession is one contiguous interval of work. A session without an end
// time is still running. Sessions are immutable; Stop returns a new value.
type WorkSession struct {
	id        string
	startTime time.Time
	endTime   *time.Time
	workDate  WorkDayDate
	duration  Duration
}

// NewWorkSession starts a running session at startTime with a fresh id.
// Instants are kept at millisecond precision so the serialized form is lossless.
func NewWorkSession(startTime time.Time) WorkSession {
	start := startTime.Truncate(time.Millisecond)
	return WorkSession{
		id:        uuid.NewString(),
		startTime: start,
		workDate:  WorkDayDateFromTime(start),
		duration:  Zero(),
	}
}

func (s WorkSession) ID() string            { return s.id }
func (s WorkSession) StartTime() time.Time  { return s.startTime }
func (s WorkSession) WorkDate() WorkDayDate { return s.workDate }
func (s WorkSession) Duration() Duration    { return s.duration }
func (s WorkSession) IsRunning() bool       { return s.endTime == nil }
func (s WorkSession) IsCompleted() bool     { return s.endTime != nil }

// EndTime returns the end instant and whether the session has one.
func (s WorkSession) EndTime() (time.Time, bool) {
	if s.endTime == nil {
		return time.Time{}, false
	}
	return *s.endTime, true
}

// Stop completes the session at endTime. The receiver is left unchanged.
func (s WorkSession) Stop(endTime time.Time) (WorkSession, error) {
	if s.endTime != nil {
		return WorkSession{}, errors.NewAlreadyStoppedError(s.id)
	}
	end := endTime.Truncate(time.Millisecond)
	if !end.After(s.startTime) {
		return WorkSession{}, errors.NewInvalidTimeRangeError("end time must be after start time").
			WithContext("start", s.startTime).
			WithContext("end", end)
	}
	elapsed, err := FromStd(end.Sub(s.startTime))
	if err != nil {
		return WorkSession{}, err
	}

	stopped := s
	stopped.endTime = &end
	stopped.duration = elapsed
	return stopped, nil
}

// CurrentDuration is the live elapsed time at now for a running session, or
// the fixed duration once completed.
func (s WorkSession) CurrentDuration(now time.Time) Duration {
	if s.endTime != nil {
		return s.duration
	}
	if !now.After(s.startTime) {
		return Zero()
	}
	return Duration{ms: now.Sub(s.startTime).Milliseconds()}
}

// Equals compares every persisted field.
func (s WorkSession) Equals(other WorkSession) bool {
	if s.id != other.id || !s.startTime.Equal(other.startTime) {
		return false
	}
	if !s.workDate.Equals(other.workDate) || !s.duration.Equals(other.duration) {
		return false
	}
	if (s.endTime == nil) != (other.endTime == nil) {
		return false
	}
	return s.endTime == nil || s.endTime.Equal(*other.endTime)
}

// ToData produces the serialized form.
func (s WorkSession) ToData() WorkSessionData {
	data := WorkSessionData{
		ID:        s.id,
		StartTime: FormatInstant(s.startTime),
		Duration:  s.duration.Milliseconds(),
		Date:      s.workDate.ToISOString(),
	}
	if s.endTime != nil {
		end := FormatInstant(*s.endTime)
		data.EndTime = &end
	}
	return data
}

// WorkSessionFromData rebuilds a session from its serialized form.
func WorkSessionFromData(data WorkSessionData) (WorkSession, error) {
	if data.ID == "" {
		return WorkSession{}, errors.NewInvalidInputError("id", data.ID, "session id is required")
	}
	start, err := ParseInstant(data.StartTime)
	if err != nil {
		return WorkSession{}, errors.NewInvalidInputError("startTime", data.StartTime, "must be an RFC 3339 instant")
	}
	duration, err := FromMilliseconds(data.Duration)
	if err != nil {
		return WorkSession{}, err
	}
	date, err := ParseWorkDayDate(data.Date)
	if err != nil {
		return WorkSession{}, err
	}

	session := WorkSession{
		id:        data.ID,
		startTime: start,
		workDate:  date,
		duration:  duration,
	}
	if data.EndTime != nil {
		end, err := ParseInstant(*data.EndTime)
		if err != nil {
			return WorkSession{}, errors.NewInvalidInputError("endTime", *data.EndTime, "must be an RFC 3339 instant")
		}
		if !end.After(start) {
			return WorkSession{}, errors.NewInvalidTimeRangeError("end time must be after start time").
				WithContext("session_id", data.ID)
		}
		session.endTime = &end
	}
	return session, nil
}
