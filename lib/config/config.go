// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/console/lib/pattern"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "BUREAU_CONSOLE_CONFIG"

// Config is the console configuration.
type Config struct {
	// Rate is the UI refresh rate in ticks per second.
	// Default: 10
	Rate float64 `yaml:"rate" json:"rate"`

	// MaxSamples bounds the plot history of the selected channel.
	// Default: 256
	MaxSamples int `yaml:"max_samples" json:"max_samples"`

	// StopAfter quits the console after this duration ("30s", "5m").
	// Empty means run until the operator quits.
	StopAfter string `yaml:"stop_after" json:"stop_after"`

	// LogOutput is an optional file receiving every log record as JSON
	// lines, in addition to the log pane. ${VAR} patterns are expanded.
	LogOutput string `yaml:"log_output" json:"log_output"`

	// Sample configures the built-in demonstration task.
	Sample SampleConfig `yaml:"sample" json:"sample"`

	// Environments maps an environment name to its channel filter. Each
	// value is a map with include/exclude keys holding a pattern string
	// or a list of patterns.
	Environments map[string]map[string]any `yaml:"environments" json:"environments"`

	// DefaultFilter is the quick-filter text applied at startup.
	DefaultFilter string `yaml:"default_filter" json:"default_filter"`
}

// SampleConfig configures the demonstration task.
type SampleConfig struct {
	// Enabled registers and runs the task.
	// Default: true
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Period between dispatches.
	// Default: 1s
	Period string `yaml:"period" json:"period"`

	// Prefixes are the top-level channel name segments.
	// Default: a, b, c
	Prefixes []string `yaml:"prefixes" json:"prefixes"`

	// Count is the number of indices under each prefix.
	// Default: 10
	Count int `yaml:"count" json:"count"`

	// Seed fixes the random sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed" json:"seed"`
}

// Default returns the configuration used when no file is given, and
// the base that a loaded file is merged into.
func Default() *Config {
	return &Config{
		Rate:       10,
		MaxSamples: 256,
		Sample: SampleConfig{
			Enabled:  true,
			Period:   "1s",
			Prefixes: []string{"a", "b", "c"},
			Count:    10,
		},
	}
}

// Load loads configuration from the file named by BUREAU_CONSOLE_CONFIG.
// It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a console config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Resolve picks the configuration source for a command: the explicit
// path if non-empty, otherwise BUREAU_CONSOLE_CONFIG if set, otherwise
// [Default].
func Resolve(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path. Files ending
// in .json or .jsonc are parsed as JSON with comments and trailing
// commas allowed; anything else is parsed as YAML. Values in the file
// override [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.LogOutput = expandVars(c.LogOutput, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// StopAfterDuration parses StopAfter. Zero means no limit.
func (c *Config) StopAfterDuration() (time.Duration, error) {
	if c.StopAfter == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(c.StopAfter)
	if err != nil {
		return 0, fmt.Errorf("stop_after: %w", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("stop_after must not be negative, got %s", c.StopAfter)
	}
	return duration, nil
}

// SamplePeriod parses Sample.Period.
func (c *Config) SamplePeriod() (time.Duration, error) {
	period, err := time.ParseDuration(c.Sample.Period)
	if err != nil {
		return 0, fmt.Errorf("sample.period: %w", err)
	}
	if period <= 0 {
		return 0, fmt.Errorf("sample.period must be positive, got %s", c.Sample.Period)
	}
	return period, nil
}

// TickInterval is the period of one UI refresh.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Rate)
}

// EnvironmentNames returns the configured environment names, sorted.
func (c *Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filter compiles the channel filter for an environment. Environments
// without an entry get the match-everything filter.
func (c *Config) Filter(environment string) (pattern.PatternPair, error) {
	section, ok := c.Environments[environment]
	if !ok {
		return pattern.PatternPair{}, nil
	}
	pair, err := pattern.FromConfig(section)
	if err != nil {
		return pattern.PatternPair{}, fmt.Errorf("environments.%s: %w", environment, err)
	}
	return pair, nil
}

// Validate checks the configuration for errors. Every problem is
// reported, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Rate <= 0 || c.Rate > 1000 {
		errs = append(errs, fmt.Errorf("rate must be in (0, 1000], got %g", c.Rate))
	}

	if c.MaxSamples < 1 {
		errs = append(errs, fmt.Errorf("max_samples must be at least 1, got %d", c.MaxSamples))
	}

	if _, err := c.StopAfterDuration(); err != nil {
		errs = append(errs, err)
	}

	if c.Sample.Enabled {
		if _, err := c.SamplePeriod(); err != nil {
			errs = append(errs, err)
		}
		if c.Sample.Count < 1 {
			errs = append(errs, fmt.Errorf("sample.count must be at least 1, got %d", c.Sample.Count))
		}
		if len(c.Sample.Prefixes) == 0 {
			errs = append(errs, fmt.Errorf("sample.prefixes must not be empty"))
		}
	}

	for _, name := range c.EnvironmentNames() {
		if _, err := c.Filter(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
