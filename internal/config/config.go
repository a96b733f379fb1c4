// Package config resolves command-line settings from flags, environment
// variables and an optional YAML config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/broken-time/brokentime"
	"github.com/jparise/broken-time/internal/output"
	"github.com/jparise/broken-time/internal/timeparse"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BROKENTIME"

// ColorMode represents when to use colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *ColorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *ColorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = ColorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *ColorMode) Type() string {
	return "colorMode"
}

// Config holds the resolved command-line settings.
type Config struct {
	Color  ColorMode
	Output output.Format
	Limit  int                 // Maximum values printed for unbounded ranges
	Step   brokentime.Duration // Default range step
}

// Colorize reports whether output should be colored. In auto mode this
// follows the terminal and the NO_COLOR / CLICOLOR conventions.
func (c Config) Colorize() bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.FromEnv().IsColorEnabled()
	}
}

// flagNames maps config keys to the command-line flags that override them.
var flagNames = map[string]string{
	"color":  "color",
	"output": "output",
	"limit":  "limit",
	"step":   "by",
}

// DefaultPath returns the config file read when --config is not given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "broken-time", "config.yaml")
}

// Load resolves settings in increasing order of precedence: built-in
// defaults, the config file, BROKENTIME_* environment variables, and flags
// that were explicitly set. A missing default config file is ignored; a
// missing file named by --config is an error.
func Load(fs afero.Fs, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault("color", string(ColorAuto))
	v.SetDefault("output", string(output.FormatText))
	v.SetDefault("limit", 24)
	v.SetDefault("step", brokentime.DefaultStep.String())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, name := range flagNames {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}

	path, explicit := DefaultPath(), false
	if f := flags.Lookup("config"); f != nil && f.Changed {
		path, explicit = f.Value.String(), true
	}
	if path != "" {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to check config file %s: %w", path, err)
		}
		if !exists && explicit {
			return Config{}, fmt.Errorf("config file %s does not exist", path)
		}
		if exists {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := cfg.Color.Set(v.GetString("color")); err != nil {
		return Config{}, fmt.Errorf("invalid color %q: %w", v.GetString("color"), err)
	}
	if err := cfg.Output.Set(v.GetString("output")); err != nil {
		return Config{}, fmt.Errorf("invalid output %q: %w", v.GetString("output"), err)
	}

	cfg.Limit = v.GetInt("limit")
	if cfg.Limit < 1 {
		return Config{}, fmt.Errorf("limit must be at least 1, got %d", cfg.Limit)
	}

	step, err := timeparse.ParseStep(v.GetString("step"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid step: %w", err)
	}
	if step.Sign() <= 0 {
		return Config{}, fmt.Errorf("step must be positive, got %s", step)
	}
	cfg.Step = step

	return cfg, nil
}
