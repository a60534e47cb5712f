package domain

import (
	"encoding/json"
	"time"

	"work-timer/internal/errors"
)

// ISODateLayout is the serialized form of a WorkDayDate.
const ISODateLayout = "2006-01-02"

// WorkDayDate is a calendar day without a time of day, held as local midnight.
type WorkDayDate struct {
	t time.Time
}

// WorkDayDateFromTime takes the calendar day of t in t's own location.
func WorkDayDateFromTime(t time.Time) WorkDayDate {
	year, month, day := t.Date()
	return WorkDayDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseWorkDayDate parses a YYYY-MM-DD string.
func ParseWorkDayDate(s string) (WorkDayDate, error) {
	parsed, err := time.ParseInLocation(ISODateLayout, s, time.Local)
	if err != nil {
		return WorkDayDate{}, errors.NewInvalidDateError(s, err)
	}
	return WorkDayDateFromTime(parsed), nil
}

// Today returns the clock's current calendar day.
func Today(clock Clock) WorkDayDate {
	return WorkDayDateFromTime(clock.Now())
}

func (d WorkDayDate) key() int {
	year, month, day := d.t.Date()
	return year*10000 + int(month)*100 + day
}

// Equals reports whether both values name the same calendar day.
func (d WorkDayDate) Equals(other WorkDayDate) bool {
	return d.key() == other.key()
}

// IsBefore reports whether d is an earlier calendar day than other.
func (d WorkDayDate) IsBefore(other WorkDayDate) bool {
	return d.key() < other.key()
}

// IsAfter reports whether d is a later calendar day than other.
func (d WorkDayDate) IsAfter(other WorkDayDate) bool {
	return d.key() > other.key()
}

// IsToday reports whether d is the clock's current day.
func (d WorkDayDate) IsToday(clock Clock) bool {
	return d.Equals(Today(clock))
}

// Contains reports whether instant t falls on this calendar day.
func (d WorkDayDate) Contains(t time.Time) bool {
	return d.Equals(WorkDayDateFromTime(t))
}

// AddDays moves forward by n days, rolling over months and years.
func (d WorkDayDate) AddDays(n int) WorkDayDate {
	return WorkDayDateFromTime(d.t.AddDate(0, 0, n))
}

// SubtractDays moves back by n days.
func (d WorkDayDate) SubtractDays(n int) WorkDayDate {
	return d.AddDays(-n)
}

// Time returns local midnight of the day.
func (d WorkDayDate) Time() time.Time {
	return d.t
}

// ToISOString renders YYYY-MM-DD.
func (d WorkDayDate) ToISOString() string {
	return d.t.Format(ISODateLayout)
}

// Format renders a long display date such as "Thursday, February 29, 2024".
func (d WorkDayDate) Format() string {
	return d.t.Format("Monday, January 2, 2006")
}

// String implements fmt.Stringer.
func (d WorkDayDate) String() string {
	return d.ToISOString()
}

// MarshalJSON encodes the date as an ISO string.
func (d WorkDayDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToISOString())
}

// UnmarshalJSON decodes an ISO date string.
func (d *WorkDayDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWorkDayDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
