package cli

import (
	"context"

	"work-timer/internal/api"
)

// DeductCommand applies the pause deduction to a day
type DeductCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Date string
}

// NewDeductCommand creates a new deduct command handler
func NewDeductCommand(app *App) *DeductCommand {
	return &DeductCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the deduct command
func (c *DeductCommand) Execute(ctx context.Context, args []string) error {
	date, err := c.app.resolveDate(c.Date)
	if err != nil {
		return c.errorHandler.Handle("apply pause deduction", err)
	}

	status, err := c.businessAPI.ApplyPauseDeduction(ctx, date)
	if err != nil {
		return c.errorHandler.Handle("apply pause deduction", err)
	}
	c.app.renderer.Printf("Deducted %s from %s\n", status.Metrics.PauseDeduction, date)
	c.app.renderer.Status(status)
	return nil
}
