package domain

import "time"

// InstantLayout is RFC 3339 with millisecond precision.
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

// WorkSessionData is the serialized form of a WorkSession.
type WorkSessionData struct {
	ID        string  `json:"id" yaml:"id"`
	StartTime string  `json:"startTime" yaml:"startTime"`
	EndTime   *string `json:"endTime" yaml:"endTime"`
	Duration  int64   `json:"duration" yaml:"duration"`
	Date      string  `json:"date" yaml:"date"`
}

// WorkDayData is the serialized form of a WorkDay.
type WorkDayData struct {
	Date                  string            `json:"date" yaml:"date"`
	Sessions              []WorkSessionData `json:"sessions" yaml:"sessions"`
	CurrentSession        *WorkSessionData  `json:"currentSession" yaml:"currentSession"`
	Status                string            `json:"status" yaml:"status"`
	PauseDeductionApplied bool              `json:"pauseDeductionApplied" yaml:"pauseDeductionApplied"`
}

// FormatInstant renders t in UTC using InstantLayout.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// ParseInstant accepts any RFC 3339 instant, with or without fractional seconds.
func ParseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
