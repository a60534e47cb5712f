package api

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"work-timer/internal/domain"
	apperrors "work-timer/internal/errors"
	"work-timer/internal/repository/sqlite"
	"work-timer/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localTime(day, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, time.Local)
}

func setupBusinessAPI(t *testing.T, rules services.Rules) (BusinessAPI, *domain.FixedClock) {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "wt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := domain.NewFixedClock(localTime(15, 9, 0))
	return NewBusinessAPI(repo, rules, clock), clock
}

func date(t *testing.T, s string) domain.WorkDayDate {
	t.Helper()
	d, err := domain.ParseWorkDayDate(s)
	require.NoError(t, err)
	return d
}

func TestBusinessAPI_WorkDayLifecycle(t *testing.T) {
	businessAPI, clock := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()

	status, err := businessAPI.StartWork(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, status.Day.Status())
	assert.True(t, status.Stored)
	assert.Equal(t, "2024-01-15", status.Day.Date().ToISOString())

	clock.Advance(3 * time.Hour)
	status, err = businessAPI.PauseWork(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, status.Day.Status())

	clock.Advance(20 * time.Minute)
	_, err = businessAPI.ResumeWork(ctx, time.Time{})
	require.NoError(t, err)

	clock.Advance(4 * time.Hour)
	status, err = businessAPI.StopWork(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2, status.Day.SessionCount())
	assert.Equal(t, int64(7*60), status.Metrics.TotalWorkTime.ToMinutes())
	assert.Equal(t, int64(20), status.Metrics.TotalPauseTime.ToMinutes())
	assert.True(t, status.Deduction.ShouldApplyDeduction)
	assert.Equal(t, int64(30), status.Deduction.DeductionAmount.ToMinutes())
	assert.False(t, status.Day.PauseDeductionApplied(), "deduction is not applied without auto-deduct")

	today := date(t, "2024-01-15")
	status, err = businessAPI.ApplyPauseDeduction(ctx, today)
	require.NoError(t, err)
	assert.True(t, status.Day.PauseDeductionApplied())
	assert.Equal(t, int64(6*60+30), status.Metrics.EffectiveWorkTime.ToMinutes())
	assert.Equal(t, int64(3*60+30), status.Metrics.RemainingTime.ToMinutes())
	assert.InDelta(t, 65.0, status.Progress, 0.001)

	_, err = businessAPI.ApplyPauseDeduction(ctx, today)
	assert.ErrorIs(t, err, apperrors.ErrNoDeduction)

	reloaded, err := businessAPI.GetDayStatus(ctx, today)
	require.NoError(t, err)
	assert.True(t, reloaded.Stored)
	assert.Equal(t, status.Day.ToData(), reloaded.Day.ToData())
}

func TestBusinessAPI_ExplicitTimes(t *testing.T) {
	businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()

	_, err := businessAPI.StartWork(ctx, localTime(15, 7, 30))
	require.NoError(t, err)
	status, err := businessAPI.StopWork(ctx, localTime(15, 8, 45))
	require.NoError(t, err)

	sessions := status.Day.Sessions()
	require.Len(t, sessions, 1)
	assert.True(t, localTime(15, 7, 30).Equal(sessions[0].StartTime()))
	assert.Equal(t, int64(75), sessions[0].Duration().ToMinutes())
}

func TestBusinessAPI_TransitionErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(BusinessAPI) error
		op    func(BusinessAPI) error
		want  error
	}{
		{
			name:  "stop without a running session",
			setup: func(BusinessAPI) error { return nil },
			op: func(b BusinessAPI) error {
				_, err := b.StopWork(ctx, time.Time{})
				return err
			},
			want: apperrors.ErrNotRunning,
		},
		{
			name:  "resume a stopped day",
			setup: func(BusinessAPI) error { return nil },
			op: func(b BusinessAPI) error {
				_, err := b.ResumeWork(ctx, time.Time{})
				return err
			},
			want: apperrors.ErrNotPaused,
		},
		{
			name: "start twice",
			setup: func(b BusinessAPI) error {
				_, err := b.StartWork(ctx, localTime(15, 8, 0))
				return err
			},
			op: func(b BusinessAPI) error {
				_, err := b.StartWork(ctx, localTime(15, 8, 30))
				return err
			},
			want: apperrors.ErrInvalidTransition,
		},
		{
			name: "resume before the previous session ended",
			setup: func(b BusinessAPI) error {
				if _, err := b.StartWork(ctx, localTime(15, 7, 0)); err != nil {
					return err
				}
				_, err := b.StopWork(ctx, localTime(15, 8, 0))
				return err
			},
			op: func(b BusinessAPI) error {
				_, err := b.ResumeWork(ctx, localTime(15, 7, 30))
				return err
			},
			want: apperrors.ErrInvalidTimeRange,
		},
		{
			name:  "deduct without pauses",
			setup: func(BusinessAPI) error { return nil },
			op: func(b BusinessAPI) error {
				_, err := b.ApplyPauseDeduction(ctx, date(t, "2024-01-15"))
				return err
			},
			want: apperrors.ErrNoDeduction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
			require.NoError(t, tt.setup(businessAPI))

			err := tt.op(businessAPI)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, apperrors.ShouldLogError(err))
		})
	}
}

func TestBusinessAPI_FailedTransitionIsNotPersisted(t *testing.T) {
	businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()

	_, err := businessAPI.StartWork(ctx, localTime(15, 8, 0))
	require.NoError(t, err)
	_, err = businessAPI.StopWork(ctx, localTime(15, 8, 0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)

	status, err := businessAPI.GetDayStatus(ctx, date(t, "2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, status.Day.Status())
}

func TestBusinessAPI_AutoDeduct(t *testing.T) {
	rules := services.DefaultRules()
	rules.AutoDeduct = true
	businessAPI, _ := setupBusinessAPI(t, rules)
	ctx := context.Background()

	_, err := businessAPI.StartWork(ctx, localTime(15, 6, 0))
	require.NoError(t, err)
	status, err := businessAPI.StopWork(ctx, localTime(15, 7, 0))
	require.NoError(t, err)
	assert.False(t, status.Day.PauseDeductionApplied(), "no pause yet")

	_, err = businessAPI.ResumeWork(ctx, localTime(15, 7, 15))
	require.NoError(t, err)
	status, err = businessAPI.StopWork(ctx, localTime(15, 8, 0))
	require.NoError(t, err)
	assert.True(t, status.Day.PauseDeductionApplied())
	assert.Equal(t, int64(30), status.Metrics.PauseDeduction.ToMinutes())
}

func TestBusinessAPI_AutoDeductSkipsLongPauses(t *testing.T) {
	rules := services.DefaultRules()
	rules.AutoDeduct = true
	businessAPI, _ := setupBusinessAPI(t, rules)
	ctx := context.Background()

	_, err := businessAPI.StartWork(ctx, localTime(15, 6, 0))
	require.NoError(t, err)
	_, err = businessAPI.StopWork(ctx, localTime(15, 7, 0))
	require.NoError(t, err)
	_, err = businessAPI.ResumeWork(ctx, localTime(15, 8, 0))
	require.NoError(t, err)
	status, err := businessAPI.StopWork(ctx, localTime(15, 8, 30))
	require.NoError(t, err)

	assert.False(t, status.Day.PauseDeductionApplied())
	assert.True(t, status.Metrics.PauseDeduction.IsZero())
}

func TestBusinessAPI_StopAfterMidnight(t *testing.T) {
	businessAPI, clock := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()
	clock.Set(localTime(16, 1, 0))

	_, err := businessAPI.StartWork(ctx, localTime(15, 23, 0))
	require.NoError(t, err)

	status, err := businessAPI.StopWork(ctx, localTime(16, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", status.Day.Date().ToISOString())
	assert.Equal(t, int64(90), status.Metrics.TotalWorkTime.ToMinutes())

	next, err := businessAPI.GetDayStatus(ctx, date(t, "2024-01-16"))
	require.NoError(t, err)
	assert.False(t, next.Stored)
	assert.False(t, next.Day.HasActivity())
}

func TestBusinessAPI_StartWhilePreviousDayRunning(t *testing.T) {
	businessAPI, clock := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()
	clock.Set(localTime(15, 23, 30))

	_, err := businessAPI.StartWork(ctx, localTime(15, 23, 0))
	require.NoError(t, err)

	clock.Set(localTime(16, 8, 0))
	for name, call := range map[string]func(context.Context, time.Time) (*DayStatus, error){
		"start":  businessAPI.StartWork,
		"resume": businessAPI.ResumeWork,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := call(ctx, time.Time{})
			assert.ErrorIs(t, err, apperrors.ErrStillRunning)
		})
	}

	today, err := businessAPI.GetDayStatus(ctx, date(t, "2024-01-16"))
	require.NoError(t, err)
	assert.False(t, today.Stored, "rejected start must not create a day")

	stopped, err := businessAPI.StopWork(ctx, localTime(16, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", stopped.Day.Date().ToISOString())
	assert.False(t, stopped.Day.IsActive())

	started, err := businessAPI.StartWork(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", started.Day.Date().ToISOString())
	assert.Equal(t, domain.StatusRunning, started.Day.Status())
}

func TestBusinessAPI_ConcurrentStartWork(t *testing.T) {
	businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = businessAPI.StartWork(ctx, localTime(15, 8, 0))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	}
	assert.Equal(t, 1, succeeded)

	status, err := businessAPI.GetDayStatus(ctx, date(t, "2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, status.Day.SessionCount())
}

func TestBusinessAPI_ResetAndDeleteDay(t *testing.T) {
	businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()
	today := date(t, "2024-01-15")

	_, err := businessAPI.StartWork(ctx, localTime(15, 8, 0))
	require.NoError(t, err)

	status, err := businessAPI.ResetDay(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, status.Day.Status())
	assert.Equal(t, 0, status.Day.SessionCount())
	assert.True(t, status.Stored)

	require.NoError(t, businessAPI.DeleteDay(ctx, today))
	status, err = businessAPI.GetDayStatus(ctx, today)
	require.NoError(t, err)
	assert.False(t, status.Stored)

	assert.ErrorIs(t, businessAPI.DeleteDay(ctx, today), apperrors.ErrNotFound)
}

func TestBusinessAPI_ExportImport(t *testing.T) {
	businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()
	today := date(t, "2024-01-15")

	_, err := businessAPI.ExportDay(ctx, today)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = businessAPI.StartWork(ctx, localTime(15, 6, 0))
	require.NoError(t, err)
	_, err = businessAPI.StopWork(ctx, localTime(15, 8, 0))
	require.NoError(t, err)
	_, err = businessAPI.ResumeWork(ctx, localTime(15, 8, 10))
	require.NoError(t, err)

	data, err := businessAPI.ExportDay(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", data.Status)
	require.NotNil(t, data.CurrentSession)
	assert.Len(t, data.Sessions, 1)

	_, err = businessAPI.ImportDay(ctx, data, false)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation), "existing days are kept by default")

	require.NoError(t, businessAPI.DeleteDay(ctx, today))
	status, err := businessAPI.ImportDay(ctx, data, false)
	require.NoError(t, err)
	assert.Equal(t, data, status.Day.ToData())

	status, err = businessAPI.ImportDay(ctx, data, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, status.Day.Status())

	broken := data
	broken.Status = "PAUSED"
	_, err = businessAPI.ImportDay(ctx, broken, true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidWorkDay)
}

func TestBusinessAPI_ListDays(t *testing.T) {
	businessAPI, clock := setupBusinessAPI(t, services.DefaultRules())
	ctx := context.Background()

	clock.Set(localTime(14, 18, 0))
	_, err := businessAPI.StartWork(ctx, localTime(14, 8, 0))
	require.NoError(t, err)
	_, err = businessAPI.StopWork(ctx, localTime(14, 18, 0))
	require.NoError(t, err)

	clock.Set(localTime(15, 12, 0))
	_, err = businessAPI.StartWork(ctx, localTime(15, 8, 0))
	require.NoError(t, err)
	_, err = businessAPI.StopWork(ctx, localTime(15, 12, 0))
	require.NoError(t, err)

	summary, err := businessAPI.ListDays(ctx, "1w")
	require.NoError(t, err)
	require.Len(t, summary.Days, 2)
	assert.Equal(t, "2024-01-14", summary.Days[0].Day.Date().ToISOString())
	assert.Equal(t, 1, summary.CompleteDays)
	assert.Equal(t, int64(14), summary.TotalWorkTime.ToHours())

	summary, err = businessAPI.ListDays(ctx, "yesterday")
	require.NoError(t, err)
	assert.Len(t, summary.Days, 1)

	_, err = businessAPI.ListDays(ctx, " ")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	_, err = businessAPI.ListDays(ctx, "fortnight")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestBusinessAPI_Timeout(t *testing.T) {
	businessAPI, _ := setupBusinessAPI(t, services.DefaultRules())
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := businessAPI.StartWork(ctx, time.Time{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
}

func TestWithTimeout(t *testing.T) {
	b := &businessAPIImpl{timeout: DefaultTimeout}

	WithTimeout(0)(b)
	assert.Equal(t, DefaultTimeout, b.timeout)

	WithTimeout(time.Second)(b)
	assert.Equal(t, time.Second, b.timeout)
}
