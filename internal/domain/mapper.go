package domain

import (
	"time"

	"work-timer/internal/repository/sqlite"
)

// WorkDayMapper handles conversion between domain and database WorkDay models.
// Rows are routed through WorkDayData so loading applies the same checks as
// importing.
type WorkDayMapper struct{}

// NewWorkDayMapper creates a new WorkDayMapper instance.
func NewWorkDayMapper() *WorkDayMapper {
	return &WorkDayMapper{}
}

// ToDatabase converts a domain WorkDay to its day row and session rows.
// Completed sessions keep their order; the running session is placed last.
func (m *WorkDayMapper) ToDatabase(day WorkDay, updatedAt time.Time) (*sqlite.WorkDay, []*sqlite.WorkSession) {
	row := &sqlite.WorkDay{
		Date:                  day.Date().ToISOString(),
		Status:                day.Status().String(),
		PauseDeductionApplied: day.PauseDeductionApplied(),
		UpdatedAt:             updatedAt,
	}

	completed := day.Sessions()
	sessions := make([]*sqlite.WorkSession, 0, day.SessionCount())
	for i, s := range completed {
		sessions = append(sessions, m.sessionToDatabase(s, i, false))
	}
	if current, ok := day.CurrentSession(); ok {
		sessions = append(sessions, m.sessionToDatabase(current, len(completed), true))
	}
	return row, sessions
}

func (m *WorkDayMapper) sessionToDatabase(s WorkSession, position int, current bool) *sqlite.WorkSession {
	row := &sqlite.WorkSession{
		ID:         s.ID(),
		WorkDate:   s.WorkDate().ToISOString(),
		StartTime:  s.StartTime(),
		DurationMs: s.Duration().Milliseconds(),
		IsCurrent:  current,
		Position:   position,
	}
	if end, ok := s.EndTime(); ok {
		row.EndTime = &end
	}
	return row
}

// FromDatabase converts stored rows back into a domain WorkDay. Sessions are
// expected in position order.
func (m *WorkDayMapper) FromDatabase(row *sqlite.WorkDay, sessions []*sqlite.WorkSession) (WorkDay, error) {
	data := WorkDayData{
		Date:                  row.Date,
		Sessions:              make([]WorkSessionData, 0, len(sessions)),
		Status:                row.Status,
		PauseDeductionApplied: row.PauseDeductionApplied,
	}
	for _, s := range sessions {
		sd := m.sessionToData(s)
		if s.IsCurrent {
			data.CurrentSession = &sd
			continue
		}
		data.Sessions = append(data.Sessions, sd)
	}
	return WorkDayFromData(data)
}

func (m *WorkDayMapper) sessionToData(s *sqlite.WorkSession) WorkSessionData {
	data := WorkSessionData{
		ID:        s.ID,
		StartTime: FormatInstant(s.StartTime),
		Duration:  s.DurationMs,
		Date:      s.WorkDate,
	}
	if s.EndTime != nil {
		end := FormatInstant(*s.EndTime)
		data.EndTime = &end
	}
	return data
}
