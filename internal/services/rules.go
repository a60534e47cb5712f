package services

import (
	"work-timer/internal/domain"
	"work-timer/internal/errors"
)

// Default rule values.
var (
	DefaultDailyLimit      = domain.MustFromHours(10)
	DefaultPauseThreshold  = domain.MustFromMinutes(30)
	DefaultDeductionAmount = domain.MustFromMinutes(30)
)

// Rules are the working-time parameters shared by the policy and the
// calculation service.
type Rules struct {
	DailyLimit      domain.Duration
	PauseThreshold  domain.Duration
	DeductionAmount domain.Duration
	// AutoDeduct applies the pause deduction after a stop whenever the policy allows it.
	AutoDeduct bool
}

// DefaultRules returns a 10h limit with a 30 minute threshold and deduction.
func DefaultRules() Rules {
	return Rules{
		DailyLimit:      DefaultDailyLimit,
		PauseThreshold:  DefaultPauseThreshold,
		DeductionAmount: DefaultDeductionAmount,
	}
}

// Validate rejects rules that would make progress or deductions meaningless.
func (r Rules) Validate() error {
	if r.DailyLimit.IsZero() {
		return errors.NewInvalidInputError("daily_limit", r.DailyLimit.String(), "must be positive")
	}
	if r.PauseThreshold.IsZero() {
		return errors.NewInvalidInputError("pause_threshold", r.PauseThreshold.String(), "must be positive")
	}
	return nil
}
