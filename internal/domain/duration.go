package domain

import (
	"fmt"
	"math"
	"time"

	"work-timer/internal/errors"
)

const (
	millisPerSecond = int64(1000)
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
)

// Duration is an immutable, non-negative span of time with millisecond precision.
type Duration struct {
	ms int64
}

// Zero returns an empty duration.
func Zero() Duration {
	return Duration{}
}

// FromMilliseconds creates a Duration from a millisecond count.
func FromMilliseconds(ms int64) (Duration, error) {
	if ms < 0 {
		return Duration{}, errors.NewInvalidDurationError(ms)
	}
	return Duration{ms: ms}, nil
}

// FromSeconds creates a Duration from whole seconds.
func FromSeconds(seconds int64) (Duration, error) {
	return fromUnits(seconds, millisPerSecond, "seconds")
}

// FromMinutes creates a Duration from whole minutes.
func FromMinutes(minutes int64) (Duration, error) {
	return fromUnits(minutes, millisPerMinute, "minutes")
}

// FromHours creates a Duration from whole hours.
func FromHours(hours int64) (Duration, error) {
	return fromUnits(hours, millisPerHour, "hours")
}

func fromUnits(count, millisPerUnit int64, unit string) (Duration, error) {
	if count > math.MaxInt64/millisPerUnit || count < math.MinInt64/millisPerUnit {
		return Duration{}, errors.NewDurationOverflowError(count, unit)
	}
	return FromMilliseconds(count * millisPerUnit)
}

// FromStd converts a time.Duration, truncating below one millisecond.
func FromStd(d time.Duration) (Duration, error) {
	return FromMilliseconds(d.Milliseconds())
}

// MustFromMilliseconds is like FromMilliseconds but panics on negative input.
func MustFromMilliseconds(ms int64) Duration {
	return must(FromMilliseconds(ms))
}

// MustFromMinutes is like FromMinutes but panics on invalid input.
func MustFromMinutes(minutes int64) Duration {
	return must(FromMinutes(minutes))
}

// MustFromHours is like FromHours but panics on invalid input.
func MustFromHours(hours int64) Duration {
	return must(FromHours(hours))
}

func must(d Duration, err error) Duration {
	if err != nil {
		panic(err)
	}
	return d
}

// Add returns the sum of both durations, saturating at the largest
// representable duration.
func (d Duration) Add(other Duration) Duration {
	if other.ms > math.MaxInt64-d.ms {
		return Duration{ms: math.MaxInt64}
	}
	return Duration{ms: d.ms + other.ms}
}

// Subtract returns d minus other, floored at zero.
func (d Duration) Subtract(other Duration) Duration {
	if other.ms >= d.ms {
		return Duration{}
	}
	return Duration{ms: d.ms - other.ms}
}

// Min returns the shorter of both durations.
func (d Duration) Min(other Duration) Duration {
	if other.ms < d.ms {
		return other
	}
	return d
}

func (d Duration) GreaterThan(other Duration) bool        { return d.ms > other.ms }
func (d Duration) LessThan(other Duration) bool           { return d.ms < other.ms }
func (d Duration) GreaterThanOrEqual(other Duration) bool { return d.ms >= other.ms }
func (d Duration) LessThanOrEqual(other Duration) bool    { return d.ms <= other.ms }
func (d Duration) Equals(other Duration) bool             { return d.ms == other.ms }

// IsZero reports whether the duration is empty.
func (d Duration) IsZero() bool {
	return d.ms == 0
}

// Milliseconds returns the raw millisecond count.
func (d Duration) Milliseconds() int64 {
	return d.ms
}

// ToSeconds returns whole seconds, truncated.
func (d Duration) ToSeconds() int64 {
	return d.ms / millisPerSecond
}

// ToMinutes returns whole minutes, truncated.
func (d Duration) ToMinutes() int64 {
	return d.ms / millisPerMinute
}

// ToHours returns whole hours, truncated.
func (d Duration) ToHours() int64 {
	return d.ms / millisPerHour
}

// Std converts to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.ms) * time.Millisecond
}

// Format renders the duration as HH:MM:SS. Hours are not wrapped at 24.
func (d Duration) Format() string {
	hours := d.ms / millisPerHour
	minutes := (d.ms % millisPerHour) / millisPerMinute
	seconds := (d.ms % millisPerMinute) / millisPerSecond
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return d.Format()
}
