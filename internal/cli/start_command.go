package cli

import (
	"context"

	"work-timer/internal/api"
	"work-timer/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	// At is an optional HH:MM[:SS] clock time on today's date.
	At string
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.errorHandler.Handle("start work", errors.NewInvalidInputError("command", "start", "usage: wt start [--at HH:MM[:SS]]"))
	}
	at, err := c.app.resolveAt(c.At)
	if err != nil {
		return c.errorHandler.Handle("start work", err)
	}

	status, err := c.businessAPI.StartWork(ctx, at)
	if err != nil {
		return c.errorHandler.Handle("start work", err)
	}
	c.app.renderer.Transition("Work started", at, status)
	return nil
}
