package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"work-timer/internal/api"
	"work-timer/internal/domain"
	"work-timer/internal/errors"
	"work-timer/internal/validation"
)

// ImportCommand stores a day read from a JSON or YAML file
type ImportCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	// Format defaults to the file extension, JSON otherwise.
	Format  string
	Replace bool
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.errorHandler.Handle("import day", errors.NewInvalidInputError("file", "", "usage: wt import FILE [--format json|yaml] [--replace]"))
	}
	path := args[0]

	format := c.Format
	if format == "" {
		format = formatFromPath(path)
	}
	format, err := c.app.validator.ValidateFormat("format", format)
	if err != nil {
		return c.errorHandler.Handle("import day", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return c.errorHandler.Handle("import day", errors.WrapError(err, errors.ErrorTypeInvalidInput, "cannot open "+path))
	}
	defer f.Close()

	data, err := decodeDay(f, format)
	if err != nil {
		return c.errorHandler.Handle("import day", errors.NewValidationError("malformed "+format+" in "+path, err))
	}

	status, err := c.businessAPI.ImportDay(ctx, data, c.Replace)
	if err != nil {
		return c.errorHandler.Handle("import day", err)
	}
	c.app.renderer.Printf("Imported %s\n", status.Day.Date())
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return validation.FormatYAML
	default:
		return validation.FormatJSON
	}
}

func decodeDay(r io.Reader, format string) (domain.WorkDayData, error) {
	var data domain.WorkDayData
	if format == validation.FormatYAML {
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err := dec.Decode(&data)
		return data, err
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	err := dec.Decode(&data)
	return data, err
}
