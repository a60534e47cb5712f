package cli

import (
	"io"
	"time"

	"work-timer/internal/api"
	"work-timer/internal/config"
	"work-timer/internal/domain"
	"work-timer/internal/validation"
)

// App holds what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	clock       domain.Clock
	validator   *validation.Validator
	renderer    *Renderer
	out         io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, clock domain.Clock, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		clock:       clock,
		validator:   validation.NewValidator(clock),
		renderer:    NewRenderer(out, cfg.Display),
		out:         out,
	}
}

// resolveAt parses an --at value on today's date. Empty means now, which is
// passed on as the zero time.
func (a *App) resolveAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return a.validator.ParseClockTime("at", value, domain.Today(a.clock))
}

// resolveEndAt parses an --at value that closes a session. A time still ahead
// today refers to yesterday, so a session can be stopped after midnight.
func (a *App) resolveEndAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return a.validator.ParseRecentClockTime("at", value)
}

// resolveDate parses a --date value. Empty means today.
func (a *App) resolveDate(value string) (domain.WorkDayDate, error) {
	return a.validator.ParseDate("date", value)
}
