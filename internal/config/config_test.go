package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

var defaults = Config{Delay: 5 * time.Second, Steps: 10, OutDir: ".", Display: DisplayNone}

func TestFromEnvKeepsDefaults(t *testing.T) {
	cfg, err := fromLookup(defaults, lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromLookup(defaults, lookupFrom(map[string]string{
		EnvDelay:    "250ms",
		EnvSteps:    "50",
		EnvOutDir:   "/tmp/pictures",
		EnvDisplay:  "fb",
		EnvStdioLog: "/tmp/out.log",
	}))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Delay:    250 * time.Millisecond,
		Steps:    50,
		OutDir:   "/tmp/pictures",
		Display:  DisplayFramebuffer,
		StdioLog: "/tmp/out.log",
	}, cfg)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	_, err := fromLookup(defaults, lookupFrom(map[string]string{EnvDelay: "soon"}))
	assert.ErrorContains(t, err, EnvDelay)

	_, err = fromLookup(defaults, lookupFrom(map[string]string{EnvSteps: "many"}))
	assert.ErrorContains(t, err, EnvSteps)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero delay", func(c *Config) { c.Delay = 0 }, false},
		{"framebuffer upper case", func(c *Config) { c.Display = "FB" }, false},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }, true},
		{"zero steps", func(c *Config) { c.Steps = 0 }, true},
		{"unknown display", func(c *Config) { c.Display = "hdmi" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
