package services

import (
	"testing"
	"time"

	"work-timer/internal/domain"

	"github.com/stretchr/testify/require"
)

func clockAt(hour, min, sec int) time.Time {
	return time.Date(2024, 1, 15, hour, min, sec, 0, time.Local)
}

type span struct {
	start, end time.Time
}

// buildDay plays spans through StartWork/StopWork. A zero end leaves the last
// session running.
func buildDay(t *testing.T, spans ...span) domain.WorkDay {
	t.Helper()
	date, err := domain.ParseWorkDayDate("2024-01-15")
	require.NoError(t, err)

	day := domain.NewWorkDay(date)
	for _, s := range spans {
		day, err = day.StartWork(s.start)
		require.NoError(t, err)
		if s.end.IsZero() {
			continue
		}
		day, err = day.StopWork(s.end)
		require.NoError(t, err)
	}
	return day
}

func minutes(m int64) domain.Duration { return domain.MustFromMinutes(m) }
