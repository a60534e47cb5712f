package services

import (
	"context"
	"time"

	"work-timer/internal/domain"
)

// WorkDayCalculations are the derived figures of one work day.
// RemainingTime is floored at zero; Overtime carries the excess.
type WorkDayCalculations struct {
	TotalWorkTime     domain.Duration
	TotalPauseTime    domain.Duration
	PauseDeduction    domain.Duration
	EffectiveWorkTime domain.Duration
	RemainingTime     domain.Duration
	Overtime          domain.Duration
	IsComplete        bool
}

// DeductionDecision is the outcome of evaluating the pause deduction rules.
type DeductionDecision struct {
	ShouldApplyDeduction bool
	DeductionAmount      domain.Duration
	Reason               string
}

// Period is an inclusive range of calendar days.
type Period struct {
	From domain.WorkDayDate
	To   domain.WorkDayDate
}

// Contains reports whether d lies within the period.
func (p Period) Contains(d domain.WorkDayDate) bool {
	return !d.IsBefore(p.From) && !d.IsAfter(p.To)
}

// DayReport pairs a work day with its calculations.
type DayReport struct {
	Day     domain.WorkDay
	Metrics WorkDayCalculations
}

// PeriodSummary aggregates the day reports of a period.
type PeriodSummary struct {
	Period           Period
	Days             []DayReport
	TotalWorkTime    domain.Duration
	TotalEffective   domain.Duration
	TotalOvertime    domain.Duration
	AverageEffective domain.Duration
	CompleteDays     int
}

// TimeCalculator derives the figures of a work day
type TimeCalculator interface {
	CalculateWorkDayMetrics(day domain.WorkDay) WorkDayCalculations
	CalculateProgressPercentage(effective domain.Duration) float64
	DailyLimit() domain.Duration
	PauseThreshold() domain.Duration
	DeductionAmount() domain.Duration
}

// DeductionPolicy decides on the pause deduction of a work day
type DeductionPolicy interface {
	EvaluateDeduction(day domain.WorkDay) DeductionDecision
	CanApplyDeduction(day domain.WorkDay) bool
	PauseThreshold() domain.Duration
	DeductionAmount() domain.Duration
}

// PeriodService resolves user-supplied periods relative to the clock
type PeriodService interface {
	ParsePeriod(value string) (Period, error)
	Today() domain.WorkDayDate
	IsToday(t time.Time) bool
}

// ReportingService summarizes stored work days
type ReportingService interface {
	SummarizePeriod(ctx context.Context, period Period) (*PeriodSummary, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Calculator       TimeCalculator
	Policy           DeductionPolicy
	PeriodService    PeriodService
	ReportingService ReportingService
}
