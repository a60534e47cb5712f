package cli

import (
	"context"

	"work-timer/internal/api"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Date string
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute shows the status of one day, today by default
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	date, err := c.app.resolveDate(c.Date)
	if err != nil {
		return c.errorHandler.Handle("show status", err)
	}

	status, err := c.businessAPI.GetDayStatus(ctx, date)
	if err != nil {
		return c.errorHandler.Handle("show status", err)
	}
	c.app.renderer.Status(status)
	return nil
}
