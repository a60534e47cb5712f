package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"work-timer/internal/domain"
	"work-timer/internal/services"
)

// ConfigFileEnvVar names the TOML file to read.
const ConfigFileEnvVar = "WT_CONFIG"

// Config holds all configuration options for the work timer
type Config struct {
	Database    DatabaseConfig
	Rules       RulesConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"WT_DB_DIR"`
	Filename       string        `env:"WT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"WT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"WT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"WT_DB_DIR_PERMISSIONS"`
}

// RulesConfig holds the working-time rules
type RulesConfig struct {
	DailyLimit      time.Duration `env:"WT_RULES_DAILY_LIMIT"`
	PauseThreshold  time.Duration `env:"WT_RULES_PAUSE_THRESHOLD"`
	DeductionAmount time.Duration `env:"WT_RULES_DEDUCTION_AMOUNT"`
	AutoDeduct      bool          `env:"WT_RULES_AUTO_DEDUCT"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `env:"WT_DISPLAY_TIME_FORMAT"`
	Color      bool   `env:"WT_DISPLAY_COLOR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"WT_APP_TIMEOUT"`
	Verbose bool          `env:"WT_APP_VERBOSE"`
}

// DefaultDir is ~/.wt, falling back to the working directory when the home
// directory cannot be determined.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wt"
	}
	return filepath.Join(homeDir, ".wt")
}

// DefaultConfigFile is the TOML file read when WT_CONFIG is not set.
func DefaultConfigFile() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            DefaultDir(),
			Filename:       "wt.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Rules: RulesConfig{
			DailyLimit:      services.DefaultDailyLimit.Std(),
			PauseThreshold:  services.DefaultPauseThreshold.Std(),
			DeductionAmount: services.DefaultDeductionAmount.Std(),
			AutoDeduct:      false,
		},
		Display: DisplayConfig{
			TimeFormat: "15:04:05",
			Color:      true,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// BusinessRules converts the rules section into the services' representation.
func (c *Config) BusinessRules() (services.Rules, error) {
	limit, err := domain.FromStd(c.Rules.DailyLimit)
	if err != nil {
		return services.Rules{}, err
	}
	threshold, err := domain.FromStd(c.Rules.PauseThreshold)
	if err != nil {
		return services.Rules{}, err
	}
	deduction, err := domain.FromStd(c.Rules.DeductionAmount)
	if err != nil {
		return services.Rules{}, err
	}
	return services.Rules{
		DailyLimit:      limit,
		PauseThreshold:  threshold,
		DeductionAmount: deduction,
		AutoDeduct:      c.Rules.AutoDeduct,
	}, nil
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparsable values are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("WT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("WT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("WT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("WT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Rules configuration
	if limit := os.Getenv("WT_RULES_DAILY_LIMIT"); limit != "" {
		c.Rules.DailyLimit = ParseDurationWithFallback(limit, c.Rules.DailyLimit)
	}
	if threshold := os.Getenv("WT_RULES_PAUSE_THRESHOLD"); threshold != "" {
		c.Rules.PauseThreshold = ParseDurationWithFallback(threshold, c.Rules.PauseThreshold)
	}
	if amount := os.Getenv("WT_RULES_DEDUCTION_AMOUNT"); amount != "" {
		c.Rules.DeductionAmount = ParseDurationWithFallback(amount, c.Rules.DeductionAmount)
	}
	if auto := os.Getenv("WT_RULES_AUTO_DEDUCT"); auto != "" {
		c.Rules.AutoDeduct = ParseBoolWithFallback(auto, c.Rules.AutoDeduct)
	}

	// Display configuration
	if format := os.Getenv("WT_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if color := os.Getenv("WT_DISPLAY_COLOR"); color != "" {
		c.Display.Color = ParseBoolWithFallback(color, c.Display.Color)
	}

	// Application configuration
	if timeout := os.Getenv("WT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("WT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate rules configuration
	if c.Rules.DailyLimit <= 0 {
		return &ConfigError{Field: "rules.daily_limit", Message: "daily limit must be positive"}
	}
	if c.Rules.DailyLimit > 24*time.Hour {
		return &ConfigError{Field: "rules.daily_limit", Message: "daily limit cannot exceed 24h"}
	}
	if c.Rules.PauseThreshold <= 0 {
		return &ConfigError{Field: "rules.pause_threshold", Message: "pause threshold must be positive"}
	}
	if c.Rules.DeductionAmount < 0 {
		return &ConfigError{Field: "rules.deduction_amount", Message: "deduction amount cannot be negative"}
	}

	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
