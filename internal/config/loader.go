package config

import (
	"os"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML file (WT_CONFIG or ~/.wt/config.toml)
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	return l.load("")
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	configFile := ""
	if overrides != nil && overrides.ConfigFile != nil {
		configFile = *overrides.ConfigFile
	}

	config, err := l.load(configFile)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = os.Getenv(ConfigFileEnvVar)
	}
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	file, err := LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	if err := file.ApplyTo(l.config); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Database overrides
	DBDir      *string
	DBFilename *string

	// Rules overrides
	DailyLimit      *time.Duration
	PauseThreshold  *time.Duration
	DeductionAmount *time.Duration
	AutoDeduct      *bool

	// Display overrides
	NoColor *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}

	// Rules overrides
	if overrides.DailyLimit != nil {
		config.Rules.DailyLimit = *overrides.DailyLimit
	}
	if overrides.PauseThreshold != nil {
		config.Rules.PauseThreshold = *overrides.PauseThreshold
	}
	if overrides.DeductionAmount != nil {
		config.Rules.DeductionAmount = *overrides.DeductionAmount
	}
	if overrides.AutoDeduct != nil {
		config.Rules.AutoDeduct = *overrides.AutoDeduct
	}

	// Display overrides
	if overrides.NoColor != nil && *overrides.NoColor {
		config.Display.Color = false
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
