package cli

import (
	"context"
	"strings"

	"work-timer/internal/api"
)

// DefaultListPeriod is used when list gets no period.
const DefaultListPeriod = "1w"

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Period string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		Period:       DefaultListPeriod,
	}
}

// Execute lists the stored days of a period. A positional argument wins over --period.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	period := c.Period
	if len(args) > 0 {
		period = strings.Join(args, " ")
	}

	summary, err := c.businessAPI.ListDays(ctx, period)
	if err != nil {
		return c.errorHandler.Handle("list days", err)
	}
	c.app.renderer.Summary(summary)
	return nil
}
