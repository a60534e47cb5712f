package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"work-timer/internal/domain"
)

// Export formats understood by ValidateFormat.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	clockTimeFormat = "HH:MM or HH:MM:SS"
	dateFormat      = "YYYY-MM-DD, today or yesterday"
)

// Validator parses and checks user supplied values relative to a clock.
type Validator struct {
	clockTimeRegex *regexp.Regexp
	clock          domain.Clock
}

// NewValidator creates a validator reading "now" from clock
func NewValidator(clock domain.Clock) *Validator {
	return &Validator{
		clockTimeRegex: regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)(?::([0-5]\d))?$`),
		clock:          clock,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidClockTime checks the HH:MM[:SS] shape
func (v *Validator) IsValidClockTime(s string) bool {
	return v.clockTimeRegex.MatchString(strings.TrimSpace(s))
}

// ParseClockTime resolves an HH:MM[:SS] wall-clock value on the given day.
// Times later than now are rejected when date is today.
func (v *Validator) ParseClockTime(field, value string, date domain.WorkDayDate) (time.Time, error) {
	ve := NewValidationError()
	value = strings.TrimSpace(value)

	matches := v.clockTimeRegex.FindStringSubmatch(value)
	if matches == nil {
		ve.AddInvalidFormatError(field, value, clockTimeFormat)
		return time.Time{}, ve.Err()
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	second := 0
	if matches[3] != "" {
		second, _ = strconv.Atoi(matches[3])
	}

	base := date.Time()
	t := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, second, 0, base.Location())
	if t.After(v.clock.Now()) {
		ve.AddInvalidRangeError(field, value, "cannot be in the future")
		return time.Time{}, ve.Err()
	}
	return t, nil
}

// ParseRecentClockTime resolves an HH:MM[:SS] value on its latest past
// occurrence: today, or yesterday when today's instant is still ahead.
func (v *Validator) ParseRecentClockTime(field, value string) (time.Time, error) {
	today := domain.Today(v.clock)
	t, err := v.ParseClockTime(field, value, today)
	if err == nil || !v.IsValidClockTime(value) {
		return t, err
	}
	return v.ParseClockTime(field, value, today.SubtractDays(1))
}

// ParseDate accepts YYYY-MM-DD, "today" or "yesterday". Empty input means today.
func (v *Validator) ParseDate(field, value string) (domain.WorkDayDate, error) {
	today := domain.Today(v.clock)
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.SubtractDays(1), nil
	}

	date, err := domain.ParseWorkDayDate(strings.TrimSpace(value))
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidFormatError(field, value, dateFormat)
		return domain.WorkDayDate{}, ve.Err()
	}
	if !v.IsReasonableDate(date) {
		ve := NewValidationError()
		ve.AddInvalidRangeError(field, value, "must be within the last ten years and not in the future")
		return domain.WorkDayDate{}, ve.Err()
	}
	return date, nil
}

// IsReasonableDate allows dates from ten years ago up to today.
func (v *Validator) IsReasonableDate(date domain.WorkDayDate) bool {
	today := domain.Today(v.clock)
	tenYearsAgo := domain.WorkDayDateFromTime(today.Time().AddDate(-10, 0, 0))
	return !date.IsAfter(today) && !date.IsBefore(tenYearsAgo)
}

// ValidateFormat normalizes an export format name ("yml" is accepted as yaml).
func (v *Validator) ValidateFormat(field, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	ve := NewValidationError()
	ve.AddInvalidValueError(field, format, "must be json or yaml")
	return "", ve.Err()
}

// ValidatePeriod rejects an empty period expression.
func (v *Validator) ValidatePeriod(field, period string) error {
	if !v.IsNonEmptyString(period) {
		ve := NewValidationError()
		ve.AddRequiredError(field)
		return ve.Err()
	}
	return nil
}
