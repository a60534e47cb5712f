package cli

import (
	"context"

	"work-timer/internal/api"
)

// ResetCommand clears the sessions of a day
type ResetCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Date string
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(app *App) *ResetCommand {
	return &ResetCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context, args []string) error {
	date, err := c.app.resolveDate(c.Date)
	if err != nil {
		return c.errorHandler.Handle("reset day", err)
	}

	if _, err := c.businessAPI.ResetDay(ctx, date); err != nil {
		return c.errorHandler.Handle("reset day", err)
	}
	c.app.renderer.Printf("Reset %s\n", date)
	return nil
}
