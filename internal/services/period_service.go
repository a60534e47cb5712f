package services

import (
	"strings"
	"time"

	"work-timer/internal/domain"
	"work-timer/internal/errors"
)

// periodRangeSeparator splits an explicit "from..to" period.
const periodRangeSeparator = ".."

// periodServiceImpl implements the PeriodService interface
type periodServiceImpl struct {
	clock domain.Clock
}

// NewPeriodService creates a new PeriodService instance
func NewPeriodService(clock domain.Clock) PeriodService {
	return &periodServiceImpl{clock: clock}
}

// ParsePeriod accepts a shorthand ending today ("today", "1d", "1w", "1mo",
// "1y"), "yesterday", a single date, or "YYYY-MM-DD..YYYY-MM-DD".
func (p *periodServiceImpl) ParsePeriod(value string) (Period, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Period{}, errors.NewValidationError("period cannot be empty", nil)
	}

	today := p.Today()
	if days, ok := p.parsePeriodShorthand(value); ok {
		return Period{From: today.SubtractDays(days - 1), To: today}, nil
	}

	switch value {
	case "yesterday":
		yesterday := today.SubtractDays(1)
		return Period{From: yesterday, To: yesterday}, nil
	}

	if from, to, found := strings.Cut(value, periodRangeSeparator); found {
		start, err := domain.ParseWorkDayDate(from)
		if err != nil {
			return Period{}, err
		}
		end, err := domain.ParseWorkDayDate(to)
		if err != nil {
			return Period{}, err
		}
		if end.IsBefore(start) {
			return Period{}, errors.NewValidationError("period end "+to+" is before its start "+from, nil)
		}
		return Period{From: start, To: end}, nil
	}

	date, err := domain.ParseWorkDayDate(value)
	if err != nil {
		return Period{}, errors.NewValidationError("invalid period format: "+value, err)
	}
	return Period{From: date, To: date}, nil
}

// parsePeriodShorthand maps shorthands to a number of days ending today.
func (p *periodServiceImpl) parsePeriodShorthand(value string) (int, bool) {
	switch value {
	case "today", "1d":
		return 1, true
	case "1w":
		return 7, true
	case "1mo":
		return 30, true
	case "1y":
		return 365, true
	default:
		return 0, false
	}
}

// Today returns the clock's calendar day
func (p *periodServiceImpl) Today() domain.WorkDayDate {
	return domain.Today(p.clock)
}

// IsToday checks if the given time falls on the clock's current day
func (p *periodServiceImpl) IsToday(t time.Time) bool {
	return p.Today().Contains(t)
}
