package sqlite

import "time"

// WorkDay is a row of the work_days table.
type WorkDay struct {
	Date                  string // YYYY-MM-DD, primary key
	Status                string
	PauseDeductionApplied bool
	UpdatedAt             time.Time
}

// WorkSession is a row of the work_sessions table.
// IsCurrent marks the running session of its day; Position keeps insertion order.
type WorkSession struct {
	ID         string
	WorkDate   string
	StartTime  time.Time
	EndTime    *time.Time // Using pointer to allow NULL values
	DurationMs int64
	IsCurrent  bool
	Position   int
}
