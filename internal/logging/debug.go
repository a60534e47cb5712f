package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DebugEnvVar enables debug output when set to a non-empty value.
const DebugEnvVar = "WT_DEBUG"

// Setup installs a console logger on w as the global zerolog logger.
// Debug level is used when verbose is true or WT_DEBUG is set, warn otherwise.
func Setup(w io.Writer, verbose bool) {
	log.Logger = newLogger(w, verbose)
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose || DebugEnabled() {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().
		Logger()
}

// Logger returns a child of the global logger tagged with component.
func Logger(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// DebugEnabled returns true if debug mode is enabled via WT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		log.Debug().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		log.Debug().Msg(strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
}

func init() {
	log.Logger = newLogger(os.Stderr, false)
}
