package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"work-timer/internal/api"
	"work-timer/internal/config"
	"work-timer/internal/domain"
	"work-timer/internal/logging"
)

// BusinessAPIFactory opens a BusinessAPI for a loaded configuration. The
// returned func releases whatever the API holds open.
type BusinessAPIFactory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// DefaultFactory opens the SQLite-backed API described by the configuration.
func DefaultFactory(clock domain.Clock) BusinessAPIFactory {
	return func(cfg *config.Config) (api.BusinessAPI, func() error, error) {
		return api.NewFromConfig(cfg, clock)
	}
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory BusinessAPIFactory
	clock   domain.Clock
	out     io.Writer
	errOut  io.Writer
	config  *config.Config
	flags   globalFlags
}

type globalFlags struct {
	configFile      string
	dbDir           string
	dbFilename      string
	dailyLimit      time.Duration
	pauseThreshold  time.Duration
	deductionAmount time.Duration
	autoDeduct      bool
	appTimeout      time.Duration
	verbose         bool
	noColor         bool
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory BusinessAPIFactory, clock domain.Clock, out, errOut io.Writer) *RootCommand {
	root := &RootCommand{
		factory: factory,
		clock:   clock,
		out:     out,
		errOut:  errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "wt",
		Short: "Track working hours against a daily limit",
		Long: `Work Timer (wt) records work sessions for each day, subtracts a pause
deduction when the breaks taken were too short, and reports the time left
until the daily limit.

EXAMPLES:
  wt start                                 # Start working now
  wt pause                                 # Take a break
  wt resume                                # Back to work
  wt stop --at 17:30                       # Finish the day at 17:30
  wt status                                # Show today's progress
  wt list 1mo                              # Summarize the last month
  wt export --date 2024-01-15 -f yaml      # Export one day

CONFIGURATION:
  Priority: command-line flags > environment variables > config file > defaults

  Config file: ~/.wt/config.toml, or the path in WT_CONFIG / --config

  Environment:
    WT_DB_DIR                              Database directory (default: ~/.wt)
    WT_DB_FILENAME                         Database filename (default: wt.db)
    WT_RULES_DAILY_LIMIT                   Daily limit (default: 10h)
    WT_RULES_PAUSE_THRESHOLD               Pause threshold (default: 30m)
    WT_RULES_DEDUCTION_AMOUNT              Pause deduction (default: 30m)
    WT_RULES_AUTO_DEDUCT                   Deduct automatically on stop (default: false)
    WT_DISPLAY_TIME_FORMAT                 Clock format (default: 15:04:05)
    WT_DISPLAY_COLOR                       Colored output on terminals (default: true)
    WT_APP_TIMEOUT                         Per-command timeout (default: 30s)
    WT_APP_VERBOSE                         Verbose logging (default: false)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: root.loadConfig,
	}
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with a parent context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mainly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration loaded for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.flags.configFile, "config", "", "Config file path (env: WT_CONFIG)")
	flags.StringVar(&r.flags.dbDir, "db-dir", "", "Database directory (env: WT_DB_DIR)")
	flags.StringVar(&r.flags.dbFilename, "db-filename", "", "Database filename (env: WT_DB_FILENAME)")
	flags.DurationVar(&r.flags.dailyLimit, "daily-limit", 0, "Daily working-time limit (env: WT_RULES_DAILY_LIMIT)")
	flags.DurationVar(&r.flags.pauseThreshold, "pause-threshold", 0, "Pause needed to avoid the deduction (env: WT_RULES_PAUSE_THRESHOLD)")
	flags.DurationVar(&r.flags.deductionAmount, "deduction", 0, "Pause deduction amount (env: WT_RULES_DEDUCTION_AMOUNT)")
	flags.BoolVar(&r.flags.autoDeduct, "auto-deduct", false, "Apply the pause deduction on stop (env: WT_RULES_AUTO_DEDUCT)")
	flags.DurationVar(&r.flags.appTimeout, "app-timeout", 0, "Per-command timeout (env: WT_APP_TIMEOUT)")
	flags.BoolVarP(&r.flags.verbose, "verbose", "v", false, "Verbose logging (env: WT_APP_VERBOSE)")
	flags.BoolVar(&r.flags.noColor, "no-color", false, "Disable colored output")
}

// overrides collects the flags that were set explicitly. Unset flags leave
// the file and environment values alone.
func (r *RootCommand) overrides(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	if flags.Changed("config") {
		o.ConfigFile = &r.flags.configFile
	}
	if flags.Changed("db-dir") {
		o.DBDir = &r.flags.dbDir
	}
	if flags.Changed("db-filename") {
		o.DBFilename = &r.flags.dbFilename
	}
	if flags.Changed("daily-limit") {
		o.DailyLimit = &r.flags.dailyLimit
	}
	if flags.Changed("pause-threshold") {
		o.PauseThreshold = &r.flags.pauseThreshold
	}
	if flags.Changed("deduction") {
		o.DeductionAmount = &r.flags.deductionAmount
	}
	if flags.Changed("auto-deduct") {
		o.AutoDeduct = &r.flags.autoDeduct
	}
	if flags.Changed("app-timeout") {
		o.Timeout = &r.flags.appTimeout
	}
	if flags.Changed("verbose") {
		o.Verbose = &r.flags.verbose
	}
	if flags.Changed("no-color") {
		o.NoColor = &r.flags.noColor
	}
	return o
}

func (r *RootCommand) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overrides(cmd))
	if err != nil {
		return err
	}
	logging.Setup(r.errOut, cfg.Application.Verbose)
	r.config = cfg
	return nil
}

// run opens the API for one command invocation and closes it afterwards.
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	businessAPI, closeFn, err := r.factory(r.config)
	if err != nil {
		return NewErrorHandler().Handle("open database", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
	defer cancel()

	return fn(ctx, NewApp(businessAPI, r.config, r.clock, r.out))
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.startCommand(),
		r.stopCommand("stop", "Stop the running session", NewStopCommand),
		r.stopCommand("pause", "Pause the running session", NewPauseCommand),
		r.resumeCommand(),
		r.statusCommand(),
		r.deductCommand(),
		r.resetCommand(),
		r.deleteCommand(),
		r.listCommand(),
		r.exportCommand(),
		r.importCommand(),
	)
}

func (r *RootCommand) startCommand() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewStartCommand(app)
				h.At = at
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Clock time (HH:MM[:SS]) today instead of now")
	return cmd
}

func (r *RootCommand) stopCommand(name, short string, build func(*App) *StopCommand) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := build(app)
				h.At = at
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Clock time (HH:MM[:SS]) today instead of now")
	return cmd
}

func (r *RootCommand) resumeCommand() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume work after a pause",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewResumeCommand(app)
				h.At = at
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Clock time (HH:MM[:SS]) today instead of now")
	return cmd
}

func (r *RootCommand) statusCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"current"},
		Short:   "Show the status of a day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewStatusCommand(app)
				h.Date = date
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to show (YYYY-MM-DD, today, yesterday)")
	return cmd
}

func (r *RootCommand) deductCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "deduct",
		Short: "Apply the pause deduction to a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewDeductCommand(app)
				h.Date = date
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to update (YYYY-MM-DD, today, yesterday)")
	return cmd
}

func (r *RootCommand) resetCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all sessions of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewResetCommand(app)
				h.Date = date
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to reset (YYYY-MM-DD, today, yesterday)")
	return cmd
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewDeleteCommand(app)
				h.Date = date
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to delete (required)")
	return cmd
}

func (r *RootCommand) listCommand() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "list [PERIOD]",
		Short: "Summarize the stored days of a period",
		Long: `Summarize the stored days of a period.

PERIOD is a span ending today (today, 1d, 1w, 1mo, 1y), "yesterday",
a single date (2024-01-15) or a range (2024-01-01..2024-01-31).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewListCommand(app)
				h.Period = period
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", DefaultListPeriod, "Period to summarize")
	return cmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	var date, format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored day as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewExportCommand(app)
				h.Date = date
				h.Format = format
				h.Output = output
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to export (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func (r *RootCommand) importCommand() *cobra.Command {
	var format string
	var replace bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a day exported by wt export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				h := NewImportCommand(app)
				h.Format = format
				h.Replace = replace
				return h.Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format (json, yaml); defaults to the file extension")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the day if it is already stored")
	return cmd
}
