package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "work-timer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "data", "wt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 15, hour, min, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func sampleDay() (*WorkDay, []*WorkSession) {
	day := &WorkDay{
		Date:      "2024-01-15",
		Status:    "RUNNING",
		UpdatedAt: at(13, 0),
	}
	sessions := []*WorkSession{
		{ID: "s-1", WorkDate: "2024-01-15", StartTime: at(9, 0), EndTime: ptr(at(12, 0)), DurationMs: 3 * 3600 * 1000, Position: 0},
		{ID: "s-2", WorkDate: "2024-01-15", StartTime: at(12, 30), IsCurrent: true, Position: 1},
	}
	return day, sessions
}

func TestSaveAndGetWorkDay(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()

	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	got, err := repo.GetWorkDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", got.Status)
	assert.False(t, got.PauseDeductionApplied)
	assert.True(t, day.UpdatedAt.Equal(got.UpdatedAt))

	stored, err := repo.ListWorkSessionsByDate(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "s-1", stored[0].ID)
	require.NotNil(t, stored[0].EndTime)
	assert.True(t, at(12, 0).Equal(*stored[0].EndTime))
	assert.Equal(t, int64(3*3600*1000), stored[0].DurationMs)
	assert.Equal(t, "s-2", stored[1].ID)
	assert.True(t, stored[1].IsCurrent)
	assert.Nil(t, stored[1].EndTime)
}

func TestSaveWorkDay_ReplacesSessions(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	// Stop the running session and record the deduction.
	day.Status = "PAUSED"
	day.PauseDeductionApplied = true
	day.UpdatedAt = at(17, 0)
	sessions[1].EndTime = ptr(at(17, 0))
	sessions[1].DurationMs = int64(4*3600+30*60) * 1000
	sessions[1].IsCurrent = false
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	got, err := repo.GetWorkDay(ctx, day.Date)
	require.NoError(t, err)
	assert.Equal(t, "PAUSED", got.Status)
	assert.True(t, got.PauseDeductionApplied)

	stored, err := repo.ListWorkSessionsByDate(ctx, day.Date)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.False(t, stored[1].IsCurrent)
	assert.Equal(t, sessions[1].DurationMs, stored[1].DurationMs)

	// Reset leaves the day row but no sessions.
	day.Status = "STOPPED"
	day.PauseDeductionApplied = false
	require.NoError(t, repo.SaveWorkDay(ctx, day, nil))
	stored, err = repo.ListWorkSessionsByDate(ctx, day.Date)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSaveWorkDay_RejectsForeignSession(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()
	sessions[0].WorkDate = "2024-01-14"

	err := repo.SaveWorkDay(ctx, day, sessions)
	assert.ErrorIs(t, err, apperrors.ErrInvalidWorkDay)

	exists, err := repo.WorkDayExists(ctx, day.Date)
	require.NoError(t, err)
	assert.False(t, exists, "failed save must not leave a partial day behind")
}

func TestSaveWorkDay_SecondCurrentSessionRejected(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()
	sessions[0].IsCurrent = true

	err := repo.SaveWorkDay(ctx, day, sessions)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestGetWorkDay_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetWorkDay(context.Background(), "1999-12-31")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "1999-12-31")
}

func TestListWorkDays(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-17", "2024-01-15", "2024-01-16"} {
		require.NoError(t, repo.SaveWorkDay(ctx, &WorkDay{Date: date, Status: "STOPPED", UpdatedAt: at(8, 0)}, nil))
	}

	tests := []struct {
		name     string
		dates    DateRange
		expected []string
	}{
		{"open range", DateRange{}, []string{"2024-01-15", "2024-01-16", "2024-01-17"}},
		{"from only", DateRange{From: "2024-01-16"}, []string{"2024-01-16", "2024-01-17"}},
		{"to only", DateRange{To: "2024-01-15"}, []string{"2024-01-15"}},
		{"closed range", DateRange{From: "2024-01-16", To: "2024-01-16"}, []string{"2024-01-16"}},
		{"empty range", DateRange{From: "2024-02-01"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := repo.ListWorkDays(ctx, tt.dates)
			require.NoError(t, err)
			var got []string
			for _, d := range days {
				got = append(got, d.Date)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetWorkSession(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	got, err := repo.GetWorkSession(ctx, "s-2")
	require.NoError(t, err)
	assert.True(t, at(12, 30).Equal(got.StartTime))
	assert.Equal(t, 1, got.Position)

	_, err = repo.GetWorkSession(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteWorkSession(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	require.NoError(t, repo.DeleteWorkSession(ctx, "s-1"))
	assert.ErrorIs(t, repo.DeleteWorkSession(ctx, "s-1"), apperrors.ErrNotFound)

	stored, err := repo.ListWorkSessionsByDate(ctx, day.Date)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "s-2", stored[0].ID)
}

func TestDeleteWorkDay(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day, sessions := sampleDay()
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	require.NoError(t, repo.DeleteWorkDay(ctx, day.Date))

	exists, err := repo.WorkDayExists(ctx, day.Date)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetWorkSession(ctx, "s-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteWorkDay(ctx, day.Date), apperrors.ErrNotFound)
}

func TestNew_InMemory(t *testing.T) {
	repo, err := New(MemoryPath)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	day, sessions := sampleDay()
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))

	exists, err := repo.WorkDayExists(ctx, day.Date)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wt.db")
	ctx := context.Background()

	repo, err := New(path)
	require.NoError(t, err)
	day, sessions := sampleDay()
	require.NoError(t, repo.SaveWorkDay(ctx, day, sessions))
	require.NoError(t, repo.Close())

	reopened, err := NewWithConfig(path, DefaultOptions())
	require.NoError(t, err)
	defer reopened.Close()

	stored, err := reopened.ListWorkSessionsByDate(ctx, day.Date)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRepository_CanceledContext(t *testing.T) {
	repo := setupTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	day, sessions := sampleDay()
	err := repo.SaveWorkDay(ctx, day, sessions)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}
