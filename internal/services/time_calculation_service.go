package services

import (
	"work-timer/internal/domain"
)

// TimeCalculationService derives the figures shown for a work day.
type TimeCalculationService struct {
	rules Rules
	clock domain.Clock
}

// NewTimeCalculationService creates a calculator reading "now" from clock.
func NewTimeCalculationService(rules Rules, clock domain.Clock) *TimeCalculationService {
	return &TimeCalculationService{rules: rules, clock: clock}
}

// CalculateWorkDayMetrics computes totals for day at the clock's current instant.
//
// The deduction uses the same capped formula as PauseDeductionPolicy: once
// applied, and while the pause time is within the threshold, it is
// min(DeductionAmount, TotalWorkTime).
func (s *TimeCalculationService) CalculateWorkDayMetrics(day domain.WorkDay) WorkDayCalculations {
	work := day.TotalWorkTime(s.clock.Now())
	pause := day.TotalPauseTime()

	deduction := domain.Zero()
	switch {
	case day.PauseDeductionApplied():
		deduction = cappedDeduction(s.rules.DeductionAmount, work)
	case !pause.IsZero() && pause.LessThanOrEqual(s.rules.PauseThreshold):
		deduction = cappedDeduction(s.rules.DeductionAmount, work)
	}

	effective := work.Subtract(deduction)
	return WorkDayCalculations{
		TotalWorkTime:     work,
		TotalPauseTime:    pause,
		PauseDeduction:    deduction,
		EffectiveWorkTime: effective,
		RemainingTime:     s.rules.DailyLimit.Subtract(effective),
		Overtime:          effective.Subtract(s.rules.DailyLimit),
		IsComplete:        effective.GreaterThanOrEqual(s.rules.DailyLimit),
	}
}

// CalculateProgressPercentage is effective time as a share of the daily limit, clamped to [0, 100].
func (s *TimeCalculationService) CalculateProgressPercentage(effective domain.Duration) float64 {
	if s.rules.DailyLimit.IsZero() {
		return 0
	}
	pct := float64(effective.Milliseconds()) / float64(s.rules.DailyLimit.Milliseconds()) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

func (s *TimeCalculationService) DailyLimit() domain.Duration      { return s.rules.DailyLimit }
func (s *TimeCalculationService) PauseThreshold() domain.Duration  { return s.rules.PauseThreshold }
func (s *TimeCalculationService) DeductionAmount() domain.Duration { return s.rules.DeductionAmount }
