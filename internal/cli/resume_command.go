package cli

import (
	"context"

	"work-timer/internal/api"
	"work-timer/internal/errors"
)

// ResumeCommand handles the resume command
type ResumeCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	At string
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the resume command
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.errorHandler.Handle("resume work", errors.NewInvalidInputError("command", "resume", "usage: wt resume [--at HH:MM[:SS]]"))
	}
	at, err := c.app.resolveAt(c.At)
	if err != nil {
		return c.errorHandler.Handle("resume work", err)
	}

	status, err := c.businessAPI.ResumeWork(ctx, at)
	if err != nil {
		return c.errorHandler.Handle("resume work", err)
	}
	c.app.renderer.Transition("Work resumed", at, status)
	return nil
}
