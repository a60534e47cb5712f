package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"work-timer/internal/api"
	"work-timer/internal/domain"
	"work-timer/internal/errors"
	"work-timer/internal/validation"
)

// ExportCommand writes a stored day as JSON or YAML
type ExportCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Date   string
	Format string
	// Output is a file path; empty writes to the app's output.
	Output string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		Format:       validation.FormatJSON,
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format, err := c.app.validator.ValidateFormat("format", c.Format)
	if err != nil {
		return c.errorHandler.Handle("export day", err)
	}
	date, err := c.app.resolveDate(c.Date)
	if err != nil {
		return c.errorHandler.Handle("export day", err)
	}

	data, err := c.businessAPI.ExportDay(ctx, date)
	if err != nil {
		return c.errorHandler.Handle("export day", err)
	}

	out := c.app.out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return c.errorHandler.Handle("export day", errors.WrapError(err, errors.ErrorTypeInvalidInput, "cannot create "+c.Output))
		}
		defer f.Close()
		out = f
	}

	if err := encodeDay(out, format, data); err != nil {
		return c.errorHandler.Handle("export day", err)
	}
	return nil
}

func encodeDay(w io.Writer, format string, data domain.WorkDayData) error {
	if format == validation.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
