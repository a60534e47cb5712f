package sqlite

import (
	"time"
)

// dbTimeLayout is fixed-width UTC so TEXT columns sort chronologically.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimeForDB formats a time.Time value as fixed-width UTC RFC3339 for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// boolToInt maps Go booleans onto SQLite INTEGER columns.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
