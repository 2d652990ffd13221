// Package config provides Viper-based configuration loading for the roll CLI.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/dicebag/internal/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json", "console" or "none".
	Format string `mapstructure:"format"`
}

// OutputConfig controls how roll results are rendered.
type OutputConfig struct {
	// Format is one of "text", "json", "yaml".
	Format string `mapstructure:"format"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit caps the opcodes a script may execute; 0 selects the
	// sandbox default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig     `mapstructure:"logging"`
	Output    OutputConfig      `mapstructure:"output"`
	Scripting ScriptingConfig   `mapstructure:"scripting"`
	Presets   map[string]string `mapstructure:"presets"`
}

// Preset returns the formula registered under name. Viper lowercases keys,
// so lookups are case-insensitive.
func (c Config) Preset(name string) (string, bool) {
	f, ok := c.Presets[strings.ToLower(name)]
	return f, ok
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}
	if err := validatePresets(c.Presets); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true, "none": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console, none], got %q", l.Format)
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[o.Format] {
		return fmt.Errorf("output.format must be one of [text, json, yaml], got %q", o.Format)
	}
	return nil
}

func validatePresets(presets map[string]string) error {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "presets must not have an empty name")
			continue
		}
		if !dice.IsValidFormula(presets[name]) {
			errs = append(errs, fmt.Sprintf("presets.%s is not a valid dice formula: %q", name, presets[name]))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DICEBAG_ prefix
	v.SetEnvPrefix("DICEBAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("output.format", "text")

	v.SetDefault("scripting.instruction_limit", 100_000)
}
