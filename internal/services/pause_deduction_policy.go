package services

import (
	"fmt"

	"work-timer/internal/domain"
)

// Decision reasons without variable parts.
const (
	ReasonAlreadyApplied = "pause deduction already applied"
	ReasonNoPause        = "no pause time recorded"
)

// PauseDeductionPolicy decides whether a day's short breaks are replaced by
// the fixed deduction.
type PauseDeductionPolicy struct {
	rules Rules
	clock domain.Clock
}

// NewPauseDeductionPolicy creates a policy reading "now" from clock.
func NewPauseDeductionPolicy(rules Rules, clock domain.Clock) *PauseDeductionPolicy {
	return &PauseDeductionPolicy{rules: rules, clock: clock}
}

// EvaluateDeduction applies the rules to day. An in-threshold deduction is
// capped at the work time recorded so far, so effective time never goes negative.
func (p *PauseDeductionPolicy) EvaluateDeduction(day domain.WorkDay) DeductionDecision {
	if day.PauseDeductionApplied() {
		return DeductionDecision{
			ShouldApplyDeduction: false,
			DeductionAmount:      p.rules.DeductionAmount,
			Reason:               ReasonAlreadyApplied,
		}
	}

	pause := day.TotalPauseTime()
	if pause.IsZero() {
		return DeductionDecision{
			ShouldApplyDeduction: false,
			DeductionAmount:      domain.Zero(),
			Reason:               ReasonNoPause,
		}
	}

	if pause.LessThanOrEqual(p.rules.PauseThreshold) {
		work := day.TotalWorkTime(p.clock.Now())
		amount := cappedDeduction(p.rules.DeductionAmount, work)
		return DeductionDecision{
			ShouldApplyDeduction: true,
			DeductionAmount:      amount,
			Reason: fmt.Sprintf("pause time %s is within threshold %s; deducting %s of %s worked",
				pause, p.rules.PauseThreshold, amount, work),
		}
	}

	return DeductionDecision{
		ShouldApplyDeduction: false,
		DeductionAmount:      domain.Zero(),
		Reason:               fmt.Sprintf("pause time %s exceeds threshold %s", pause, p.rules.PauseThreshold),
	}
}

// CanApplyDeduction reports whether EvaluateDeduction would apply a deduction.
func (p *PauseDeductionPolicy) CanApplyDeduction(day domain.WorkDay) bool {
	return p.EvaluateDeduction(day).ShouldApplyDeduction
}

func (p *PauseDeductionPolicy) PauseThreshold() domain.Duration  { return p.rules.PauseThreshold }
func (p *PauseDeductionPolicy) DeductionAmount() domain.Duration { return p.rules.DeductionAmount }

// cappedDeduction is the single deduction formula used by every caller.
func cappedDeduction(amount, work domain.Duration) domain.Duration {
	return amount.Min(work)
}
