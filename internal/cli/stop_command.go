package cli

import (
	"context"

	"work-timer/internal/api"
	"work-timer/internal/errors"
)

// StopCommand handles the stop and pause commands, which share a transition
type StopCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	pause        bool

	// At is an optional HH:MM[:SS] clock time on today's date.
	At string
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// NewPauseCommand creates a stop handler that reports a pause
func NewPauseCommand(app *App) *StopCommand {
	c := NewStopCommand(app)
	c.pause = true
	return c
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	name, operation, message := "stop", "stop work", "Work stopped"
	call := c.businessAPI.StopWork
	if c.pause {
		name, operation, message = "pause", "pause work", "Work paused"
		call = c.businessAPI.PauseWork
	}

	if len(args) > 0 {
		return c.errorHandler.Handle(operation, errors.NewInvalidInputError("command", name, "usage: wt "+name+" [--at HH:MM[:SS]]"))
	}
	at, err := c.app.resolveEndAt(c.At)
	if err != nil {
		return c.errorHandler.Handle(operation, err)
	}

	status, err := call(ctx, at)
	if err != nil {
		return c.errorHandler.Handle(operation, err)
	}
	c.app.renderer.Transition(message, at, status)
	return nil
}
