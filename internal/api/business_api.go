package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"work-timer/internal/domain"
	"work-timer/internal/errors"
	"work-timer/internal/logging"
	"work-timer/internal/repository/sqlite"
	"work-timer/internal/services"
	"work-timer/internal/validation"
)

// DefaultTimeout bounds every BusinessAPI call unless WithTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

// DayStatus is a work day together with everything derived from it at AsOf.
type DayStatus struct {
	Day       domain.WorkDay
	Metrics   services.WorkDayCalculations
	Deduction services.DeductionDecision
	Progress  float64
	AsOf      time.Time
	// Stored is false for a day that has never been saved.
	Stored bool
}

// BusinessAPI is the single entry point the CLI uses to drive the timer.
// A zero at means "now" according to the API's clock.
type BusinessAPI interface {
	// ========== Timer Workflows ==========

	// StartWork opens a session on the day at falls on
	StartWork(ctx context.Context, at time.Time) (*DayStatus, error)

	// StopWork closes the running session. A session that started before
	// midnight is closed on the day it started.
	StopWork(ctx context.Context, at time.Time) (*DayStatus, error)

	// PauseWork closes the running session, same as StopWork
	PauseWork(ctx context.Context, at time.Time) (*DayStatus, error)

	// ResumeWork opens a new session on a paused day
	ResumeWork(ctx context.Context, at time.Time) (*DayStatus, error)

	// ApplyPauseDeduction records the deduction when the rules allow it
	ApplyPauseDeduction(ctx context.Context, date domain.WorkDayDate) (*DayStatus, error)

	// ResetDay clears all sessions of a day
	ResetDay(ctx context.Context, date domain.WorkDayDate) (*DayStatus, error)

	// DeleteDay removes a stored day and its sessions
	DeleteDay(ctx context.Context, date domain.WorkDayDate) error

	// ========== Query Operations ==========

	// GetDayStatus computes the status of a day, stored or not
	GetDayStatus(ctx context.Context, date domain.WorkDayDate) (*DayStatus, error)

	// ListDays summarizes the stored days of a period expression ("1w", "2024-01-01..2024-01-31")
	ListDays(ctx context.Context, period string) (*services.PeriodSummary, error)

	// ========== Import / Export ==========

	// ExportDay returns the serialized form of a stored day
	ExportDay(ctx context.Context, date domain.WorkDayDate) (domain.WorkDayData, error)

	// ImportDay stores a serialized day. An existing day is only replaced when replace is set.
	ImportDay(ctx context.Context, data domain.WorkDayData, replace bool) (*DayStatus, error)
}

// Option configures a BusinessAPI
type Option func(*businessAPIImpl)

// WithTimeout bounds each call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(b *businessAPIImpl) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	// mu serializes load, transition and save so concurrent writers never
	// act on the same snapshot.
	mu sync.Mutex

	store     DayStore
	services  *services.ServiceContainer
	validator *validation.Validator
	rules     services.Rules
	clock     domain.Clock
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(repo sqlite.Repository, rules services.Rules, clock domain.Clock, opts ...Option) BusinessAPI {
	calculator := services.NewTimeCalculationService(rules, clock)
	b := &businessAPIImpl{
		store: NewDayStore(repo, clock),
		services: &services.ServiceContainer{
			Calculator:       calculator,
			Policy:           services.NewPauseDeductionPolicy(rules, clock),
			PeriodService:    services.NewPeriodService(clock),
			ReportingService: services.NewReportingService(repo, calculator),
		},
		validator: validation.NewValidator(clock),
		rules:     rules,
		clock:     clock,
		timeout:   DefaultTimeout,
		logger:    logging.Logger("api"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// transition is a pure step applied to a loaded day.
type transition func(day domain.WorkDay, at time.Time) (domain.WorkDay, error)

// ========== Timer Workflows ==========

func (b *businessAPIImpl) StartWork(ctx context.Context, at time.Time) (*DayStatus, error) {
	return b.openSession(ctx, "start work", b.resolve(at), domain.WorkDay.StartWork)
}

func (b *businessAPIImpl) StopWork(ctx context.Context, at time.Time) (*DayStatus, error) {
	return b.closeSession(ctx, "stop work", b.resolve(at), domain.WorkDay.StopWork)
}

func (b *businessAPIImpl) PauseWork(ctx context.Context, at time.Time) (*DayStatus, error) {
	return b.closeSession(ctx, "pause work", b.resolve(at), domain.WorkDay.PauseWork)
}

func (b *businessAPIImpl) ResumeWork(ctx context.Context, at time.Time) (*DayStatus, error) {
	return b.openSession(ctx, "resume work", b.resolve(at), domain.WorkDay.ResumeWork)
}

func (b *businessAPIImpl) ApplyPauseDeduction(ctx context.Context, date domain.WorkDayDate) (*DayStatus, error) {
	const op = "apply pause deduction"
	apply := func(day domain.WorkDay, _ time.Time) (domain.WorkDay, error) {
		decision := b.services.Policy.EvaluateDeduction(day)
		if !decision.ShouldApplyDeduction {
			return domain.WorkDay{}, errors.NewNoDeductionError(day.Date().ToISOString(), decision.Reason)
		}
		b.logger.Debug().
			Str("date", day.Date().ToISOString()).
			Str("amount", decision.DeductionAmount.String()).
			Msg("pause deduction applied")
		return day.ApplyPauseDeduction(), nil
	}
	return b.mutate(ctx, op, date, b.clock.Now(), apply)
}

func (b *businessAPIImpl) ResetDay(ctx context.Context, date domain.WorkDayDate) (*DayStatus, error) {
	reset := func(day domain.WorkDay, _ time.Time) (domain.WorkDay, error) {
		return day.Reset(), nil
	}
	return b.mutate(ctx, "reset day", date, b.clock.Now(), reset)
}

func (b *businessAPIImpl) DeleteDay(ctx context.Context, date domain.WorkDayDate) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.Delete(ctx, date); err != nil {
		return b.fail(ctx, "delete day", err)
	}
	b.logger.Debug().Str("date", date.ToISOString()).Msg("work day deleted")
	return nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetDayStatus(ctx context.Context, date domain.WorkDayDate) (*DayStatus, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	day, found, err := b.store.Find(ctx, date)
	if err != nil {
		return nil, b.fail(ctx, "get day status", err)
	}
	if !found {
		day = domain.NewWorkDay(date)
	}
	return b.status(day, found), nil
}

func (b *businessAPIImpl) ListDays(ctx context.Context, period string) (*services.PeriodSummary, error) {
	const op = "list days"
	if err := b.validator.ValidatePeriod("period", period); err != nil {
		return nil, err
	}
	parsed, err := b.services.PeriodService.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	summary, err := b.services.ReportingService.SummarizePeriod(ctx, parsed)
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}
	return summary, nil
}

// ========== Import / Export ==========

func (b *businessAPIImpl) ExportDay(ctx context.Context, date domain.WorkDayDate) (domain.WorkDayData, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	day, found, err := b.store.Find(ctx, date)
	if err != nil {
		return domain.WorkDayData{}, b.fail(ctx, "export day", err)
	}
	if !found {
		return domain.WorkDayData{}, errors.NewNotFoundError("work day", date.ToISOString())
	}
	return day.ToData(), nil
}

func (b *businessAPIImpl) ImportDay(ctx context.Context, data domain.WorkDayData, replace bool) (*DayStatus, error) {
	const op = "import day"
	day, err := domain.WorkDayFromData(data)
	if err != nil {
		return nil, err
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	exists, err := b.store.Exists(ctx, day.Date())
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}
	if exists && !replace {
		return nil, errors.NewValidationError(
			fmt.Sprintf("work day %s already exists; pass replace to overwrite it", day.Date().ToISOString()), nil)
	}
	if err := b.store.Save(ctx, day); err != nil {
		return nil, b.fail(ctx, op, err)
	}

	b.logger.Debug().
		Str("date", day.Date().ToISOString()).
		Int("sessions", day.SessionCount()).
		Bool("replaced", exists).
		Msg("work day imported")
	return b.status(day, true), nil
}

// ========== Helpers ==========

// mutate runs load, transition and save for one day under the writer lock.
func (b *businessAPIImpl) mutate(ctx context.Context, op string, date domain.WorkDayDate, at time.Time, step transition) (*DayStatus, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	day, err := b.store.Load(ctx, date)
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}
	return b.apply(ctx, op, day, at, step)
}

// openSession starts a session on the day at falls on. It refuses while the
// previous day still has a running session, which only a stop can close.
func (b *businessAPIImpl) openSession(ctx context.Context, op string, at time.Time, step transition) (*DayStatus, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	date := domain.WorkDayDateFromTime(at)
	previous, found, err := b.store.Find(ctx, date.SubtractDays(1))
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}
	if found && previous.IsActive() {
		return nil, b.fail(ctx, op, errors.NewStillRunningError(previous.Date().ToISOString()))
	}

	day, err := b.store.Load(ctx, date)
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}
	return b.apply(ctx, op, day, at, step)
}

// closeSession stops the running session of the day at falls on, or of the
// previous day when the session was started before midnight.
func (b *businessAPIImpl) closeSession(ctx context.Context, op string, at time.Time, step transition) (*DayStatus, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	date := domain.WorkDayDateFromTime(at)
	day, err := b.store.Load(ctx, date)
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}
	if !day.IsActive() {
		previous, found, err := b.store.Find(ctx, date.SubtractDays(1))
		if err != nil {
			return nil, b.fail(ctx, op, err)
		}
		if found && previous.IsActive() {
			day = previous
		}
	}
	return b.apply(ctx, op, day, at, step)
}

func (b *businessAPIImpl) apply(ctx context.Context, op string, day domain.WorkDay, at time.Time, step transition) (*DayStatus, error) {
	next, err := step(day, at)
	if err != nil {
		return nil, b.fail(ctx, op, err)
	}

	if b.rules.AutoDeduct && day.IsActive() && !next.IsActive() && b.services.Policy.CanApplyDeduction(next) {
		next = next.ApplyPauseDeduction()
		b.logger.Debug().Str("date", next.Date().ToISOString()).Msg("pause deduction applied automatically")
	}

	if err := b.store.Save(ctx, next); err != nil {
		return nil, b.fail(ctx, op, err)
	}

	b.logger.Debug().
		Str("operation", op).
		Str("date", next.Date().ToISOString()).
		Str("from", day.Status().String()).
		Str("to", next.Status().String()).
		Time("at", at).
		Msg("work day updated")
	return b.status(next, true), nil
}

func (b *businessAPIImpl) status(day domain.WorkDay, stored bool) *DayStatus {
	metrics := b.services.Calculator.CalculateWorkDayMetrics(day)
	return &DayStatus{
		Day:       day,
		Metrics:   metrics,
		Deduction: b.services.Policy.EvaluateDeduction(day),
		Progress:  b.services.Calculator.CalculateProgressPercentage(metrics.EffectiveWorkTime),
		AsOf:      b.clock.Now(),
		Stored:    stored,
	}
}

func (b *businessAPIImpl) resolve(at time.Time) time.Time {
	if at.IsZero() {
		return b.clock.Now()
	}
	return at
}

func (b *businessAPIImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// fail turns an expired context into a timeout error and logs system failures.
func (b *businessAPIImpl) fail(ctx context.Context, op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = errors.NewTimeoutError(op, b.timeout)
	}
	if errors.ShouldLogError(err) {
		b.logger.Error().Err(err).Str("operation", op).Msg("operation failed")
	}
	return err
}
