package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"work-timer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand(t *testing.T) {
	t.Run("json to output", func(t *testing.T) {
		app, out, clock := setupApp(t)
		workDay(t, app, out, clock)

		require.NoError(t, NewExportCommand(app).Execute(context.Background(), nil))

		var data domain.WorkDayData
		require.NoError(t, json.Unmarshal(out.Bytes(), &data))
		assert.Equal(t, "2024-01-15", data.Date)
		assert.Equal(t, "PAUSED", data.Status)
		assert.Len(t, data.Sessions, 2)
		assert.Nil(t, data.CurrentSession)
	})

	t.Run("yaml to file", func(t *testing.T) {
		app, out, clock := setupApp(t)
		workDay(t, app, out, clock)
		path := filepath.Join(t.TempDir(), "day.yaml")

		c := NewExportCommand(app)
		c.Format = "yml"
		c.Output = path
		require.NoError(t, c.Execute(context.Background(), nil))
		assert.Empty(t, out.String())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var data domain.WorkDayData
		require.NoError(t, yaml.Unmarshal(raw, &data))
		assert.Equal(t, "2024-01-15", data.Date)
		assert.Len(t, data.Sessions, 2)
	})

	t.Run("unknown day", func(t *testing.T) {
		app, _, _ := setupApp(t)
		err := NewExportCommand(app).Execute(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to export day: work day not found: 2024-01-15")
	})

	t.Run("unsupported format", func(t *testing.T) {
		app, _, _ := setupApp(t)
		c := NewExportCommand(app)
		c.Format = "csv"
		err := c.Execute(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to export day")
	})
}

func TestImportCommand(t *testing.T) {
	exportTo := func(t *testing.T, app *App, format string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "day."+format)
		c := NewExportCommand(app)
		c.Format = format
		c.Output = path
		require.NoError(t, c.Execute(context.Background(), nil))
		return path
	}

	for _, format := range []string{"json", "yaml"} {
		t.Run(format+" round trip", func(t *testing.T) {
			app, out, clock := setupApp(t)
			workDay(t, app, out, clock)
			path := exportTo(t, app, format)

			del := NewDeleteCommand(app)
			del.Date = "2024-01-15"
			require.NoError(t, del.Execute(context.Background(), nil))
			out.Reset()

			require.NoError(t, NewImportCommand(app).Execute(context.Background(), []string{path}))
			assert.Equal(t, "Imported 2024-01-15\n", out.String())

			out.Reset()
			require.NoError(t, NewStatusCommand(app).Execute(context.Background(), nil))
			assert.Contains(t, out.String(), "Worked:    06:00:00")
		})
	}

	t.Run("existing day needs replace", func(t *testing.T) {
		app, out, clock := setupApp(t)
		workDay(t, app, out, clock)
		path := exportTo(t, app, "json")

		err := NewImportCommand(app).Execute(context.Background(), []string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		c := NewImportCommand(app)
		c.Replace = true
		require.NoError(t, c.Execute(context.Background(), []string{path}))
	})

	t.Run("format flag overrides extension", func(t *testing.T) {
		app, out, clock := setupApp(t)
		workDay(t, app, out, clock)
		yamlPath := exportTo(t, app, "yaml")
		path := filepath.Join(t.TempDir(), "day.txt")
		raw, err := os.ReadFile(yamlPath)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0644))

		c := NewImportCommand(app)
		c.Format = "yaml"
		c.Replace = true
		require.NoError(t, c.Execute(context.Background(), []string{path}))
	})

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown json field", "day.json", `{"date":"2024-01-15","sessions":[],"status":"STOPPED","extra":1}`, "malformed json"},
		{"unknown yaml field", "day.yaml", "date: 2024-01-15\nsessions: []\nstatus: STOPPED\nextra: 1\n", "malformed yaml"},
		{"broken day", "day.json", `{"date":"2024-01-15","sessions":[],"status":"RUNNING"}`, "failed to import day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := setupApp(t)
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := NewImportCommand(app).Execute(context.Background(), []string{path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		app, _, _ := setupApp(t)
		err := NewImportCommand(app).Execute(context.Background(), []string{filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot open")
	})

	t.Run("no file argument", func(t *testing.T) {
		app, _, _ := setupApp(t)
		err := NewImportCommand(app).Execute(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: wt import")
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"day.json": "json",
		"day.yaml": "yaml",
		"DAY.YML":  "yaml",
		"day":      "json",
		"day.toml": "json",
	}
	for path, want := range tests {
		assert.Equal(t, want, formatFromPath(path), path)
	}
}
