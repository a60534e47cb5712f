package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"work-timer/internal/api"
	"work-timer/internal/config"
	"work-timer/internal/domain"
	"work-timer/internal/repository/sqlite"
	"work-timer/internal/services"

	"github.com/stretchr/testify/require"
)

func localTime(day, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, time.Local)
}

// setupApp wires an App to a real API on a temporary database. The clock
// starts at 2024-01-15 09:00 local time.
func setupApp(t *testing.T) (*App, *bytes.Buffer, *domain.FixedClock) {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "wt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := domain.NewFixedClock(localTime(15, 9, 0))
	businessAPI := api.NewBusinessAPI(repo, services.DefaultRules(), clock)

	out := &bytes.Buffer{}
	return NewApp(businessAPI, config.NewConfig(), clock, out), out, clock
}

// workDay records 09:00-12:00 and 12:10-15:10 on the app's day, leaving the
// clock at 15:10 and the output buffer empty.
func workDay(t *testing.T, app *App, out *bytes.Buffer, clock *domain.FixedClock) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewStartCommand(app).Execute(ctx, nil))
	clock.Advance(3 * time.Hour)
	require.NoError(t, NewPauseCommand(app).Execute(ctx, nil))
	clock.Advance(10 * time.Minute)
	require.NoError(t, NewResumeCommand(app).Execute(ctx, nil))
	clock.Advance(3 * time.Hour)
	require.NoError(t, NewStopCommand(app).Execute(ctx, nil))
	out.Reset()
}
