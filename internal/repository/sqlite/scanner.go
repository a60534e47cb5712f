package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanWorkDay scans a single work day from a database row
func ScanWorkDay(scanner Scanner) (*WorkDay, error) {
	day := &WorkDay{}
	var applied int
	var updatedAt string

	err := scanner.Scan(
		&day.Date,
		&day.Status,
		&applied,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	day.PauseDeductionApplied = applied != 0
	day.UpdatedAt, err = ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at for %s: %w", day.Date, err)
	}
	return day, nil
}

// ScanWorkDays scans multiple work days from database rows
func ScanWorkDays(rows Rows) ([]*WorkDay, error) {
	var days []*WorkDay
	for rows.Next() {
		day, err := ScanWorkDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// ScanWorkSession scans a single work session from a database row
func ScanWorkSession(scanner Scanner) (*WorkSession, error) {
	session := &WorkSession{}
	var startTime string
	var endTime sql.NullString
	var isCurrent int

	err := scanner.Scan(
		&session.ID,
		&session.WorkDate,
		&startTime,
		&endTime,
		&session.DurationMs,
		&isCurrent,
		&session.Position,
	)
	if err != nil {
		return nil, err
	}

	session.IsCurrent = isCurrent != 0
	session.StartTime, err = ParseTimeFromDB(startTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time for session %s: %w", session.ID, err)
	}
	if endTime.Valid {
		end, err := ParseTimeFromDB(endTime.String)
		if err != nil {
			return nil, fmt.Errorf("parsing end_time for session %s: %w", session.ID, err)
		}
		session.EndTime = &end
	}

	return session, nil
}

// ScanWorkSessions scans multiple work sessions from database rows
func ScanWorkSessions(rows Rows) ([]*WorkSession, error) {
	var sessions []*WorkSession
	for rows.Next() {
		session, err := ScanWorkSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
