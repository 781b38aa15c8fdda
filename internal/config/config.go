package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDelay    = "PROMPTCANVAS_DELAY"
	EnvSteps    = "PROMPTCANVAS_STEPS"
	EnvOutDir   = "PROMPTCANVAS_OUT"
	EnvDisplay  = "PROMPTCANVAS_DISPLAY"
	EnvStdioLog = "PROMPTCANVAS_STDIO_LOG"
)

const (
	DisplayNone        = "none"
	DisplayFramebuffer = "fb"
)

// Config holds the driver settings. Flags override values read from the
// environment, which override the defaults passed in.
type Config struct {
	Delay    time.Duration
	Steps    int
	OutDir   string
	Display  string
	StdioLog string
}

// FromEnv overlays environment variables onto defaults.
func FromEnv(defaults Config) (Config, error) {
	return fromLookup(defaults, os.LookupEnv)
}

func fromLookup(defaults Config, lookup func(string) (string, bool)) (Config, error) {
	cfg := defaults

	if raw, ok := lookup(EnvDelay); ok && raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a duration (got %q): %w", EnvDelay, raw, err)
		}
		cfg.Delay = delay
	}
	if raw, ok := lookup(EnvSteps); ok && raw != "" {
		steps, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvSteps, raw, err)
		}
		cfg.Steps = steps
	}
	if raw, ok := lookup(EnvOutDir); ok && raw != "" {
		cfg.OutDir = raw
	}
	if raw, ok := lookup(EnvDisplay); ok && raw != "" {
		cfg.Display = raw
	}
	if raw, ok := lookup(EnvStdioLog); ok && raw != "" {
		cfg.StdioLog = raw
	}
	return cfg, nil
}

// Validate checks the settings after flags have been applied.
func (c Config) Validate() error {
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative (got %s)", c.Delay)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1 (got %d)", c.Steps)
	}
	switch strings.ToLower(c.Display) {
	case DisplayNone, DisplayFramebuffer:
	default:
		return fmt.Errorf("display must be %q or %q (got %q)", DisplayNone, DisplayFramebuffer, c.Display)
	}
	return nil
}
