package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pygacity/sandlersteam/pkg/log"
)

// Output formats for resolved states.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultListenAddr is the default HTTP listen address of steam serve.
const DefaultListenAddr = ":8080"

// Config holds CLI configuration for steam.
type Config struct {
	// TablesDir holds satd_T.txt, satd_P.txt, suph.txt and subc.txt.
	// Empty selects the embedded tables.
	TablesDir string

	LogLevel  string
	LogFormat string

	ListenAddr      string
	ShutdownTimeout time.Duration

	Watch         bool
	WatchDebounce time.Duration

	Precision           int
	Output              string
	LiquidApproximation bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       log.FormatConsole,
		ListenAddr:      DefaultListenAddr,
		ShutdownTimeout: 10 * time.Second,
		WatchDebounce:   200 * time.Millisecond,
		Precision:       6,
		Output:          OutputText,
	}
}

// Validate checks the configuration for errors and normalizes enum values.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != log.FormatConsole && c.LogFormat != log.FormatJSON {
		return fmt.Errorf("log-format must be %q or %q, got %q", log.FormatConsole, log.FormatJSON, c.LogFormat)
	}

	c.Output = strings.ToLower(c.Output)
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}

	if c.Precision < 1 || c.Precision > 17 {
		return fmt.Errorf("precision must be between 1 and 17, got %d", c.Precision)
	}

	if c.Watch && c.TablesDir == "" {
		return fmt.Errorf("watch requires tables-dir")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an environment value and sets dst when positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
