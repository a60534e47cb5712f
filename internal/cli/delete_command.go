package cli

import (
	"context"

	"work-timer/internal/api"
	"work-timer/internal/errors"
)

// DeleteCommand removes a stored day
type DeleteCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Date string
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command. The date is required so a bare
// "wt delete" never removes today by accident.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if c.Date == "" {
		return c.errorHandler.Handle("delete day", errors.NewInvalidInputError("date", "", "usage: wt delete --date YYYY-MM-DD"))
	}
	date, err := c.app.resolveDate(c.Date)
	if err != nil {
		return c.errorHandler.Handle("delete day", err)
	}

	if err := c.businessAPI.DeleteDay(ctx, date); err != nil {
		return c.errorHandler.Handle("delete day", err)
	}
	c.app.renderer.Printf("Deleted %s\n", date)
	return nil
}
