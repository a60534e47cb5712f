package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Every key is optional;
// durations use time.ParseDuration syntax ("10h", "30m").
type FileConfig struct {
	Database    DatabaseFileConfig    `toml:"database"`
	Rules       RulesFileConfig       `toml:"rules"`
	Display     DisplayFileConfig     `toml:"display"`
	Application ApplicationFileConfig `toml:"application"`
}

// DatabaseFileConfig maps the [database] table.
type DatabaseFileConfig struct {
	Dir          *string `toml:"dir"`
	Filename     *string `toml:"filename"`
	QueryTimeout *string `toml:"query-timeout"`
	WriteTimeout *string `toml:"write-timeout"`
}

// RulesFileConfig maps the [rules] table.
type RulesFileConfig struct {
	DailyLimit      *string `toml:"daily-limit"`
	PauseThreshold  *string `toml:"pause-threshold"`
	DeductionAmount *string `toml:"deduction-amount"`
	AutoDeduct      *bool   `toml:"auto-deduct"`
}

// DisplayFileConfig maps the [display] table.
type DisplayFileConfig struct {
	TimeFormat *string `toml:"time-format"`
	Color      *bool   `toml:"color"`
}

// ApplicationFileConfig maps the [application] table.
type ApplicationFileConfig struct {
	Timeout *string `toml:"timeout"`
	Verbose *bool   `toml:"verbose"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, &ConfigError{Field: undecoded[0].String(), Message: "unknown configuration key"}
	}
	return cfg, nil
}

// ApplyTo copies every key present in the file onto c.
func (f FileConfig) ApplyTo(c *Config) error {
	durations := []struct {
		field  string
		value  *string
		target *time.Duration
	}{
		{"database.query-timeout", f.Database.QueryTimeout, &c.Database.QueryTimeout},
		{"database.write-timeout", f.Database.WriteTimeout, &c.Database.WriteTimeout},
		{"rules.daily-limit", f.Rules.DailyLimit, &c.Rules.DailyLimit},
		{"rules.pause-threshold", f.Rules.PauseThreshold, &c.Rules.PauseThreshold},
		{"rules.deduction-amount", f.Rules.DeductionAmount, &c.Rules.DeductionAmount},
		{"application.timeout", f.Application.Timeout, &c.Application.Timeout},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			return &ConfigError{Field: d.field, Message: fmt.Sprintf("invalid duration %q", *d.value)}
		}
		*d.target = parsed
	}

	if f.Database.Dir != nil {
		c.Database.Dir = *f.Database.Dir
	}
	if f.Database.Filename != nil {
		c.Database.Filename = *f.Database.Filename
	}
	if f.Rules.AutoDeduct != nil {
		c.Rules.AutoDeduct = *f.Rules.AutoDeduct
	}
	if f.Display.TimeFormat != nil {
		c.Display.TimeFormat = *f.Display.TimeFormat
	}
	if f.Display.Color != nil {
		c.Display.Color = *f.Display.Color
	}
	if f.Application.Verbose != nil {
		c.Application.Verbose = *f.Application.Verbose
	}
	return nil
}
