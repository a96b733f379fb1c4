package config

import (
	"strings"
	"testing"

	"github.com/jparise/broken-time/brokentime"
	"github.com/jparise/broken-time/internal/output"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// newFlags mirrors the flags the commands register.
func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	color := ColorAuto
	format := output.FormatText
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Var(&color, "color", "")
	flags.Var(&format, "output", "")
	flags.Int("limit", 24, "")
	flags.String("by", "", "")
	flags.String("config", "", "")
	if err := flags.Parse(args); err != nil {
		t.Fatalf("flags.Parse(%v) unexpected error: %v", args, err)
	}
	return flags
}

// isolate points the default config path into the test filesystem and
// clears any settings inherited from the environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	for _, key := range []string{"COLOR", "OUTPUT", "LIMIT", "STEP"} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) unexpected error: %v", path, err)
	}
}

func TestColorMode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		want    ColorMode
	}{
		{name: "auto", value: "auto", want: ColorAuto},
		{name: "always", value: "always", want: ColorAlways},
		{name: "never", value: "never", want: ColorNever},
		{name: "invalid value", value: "invalid", wantErr: true},
		{name: "empty string", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ColorMode
			err := c.Set(tt.value)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ColorMode.Set(%q) expected error, got nil", tt.value)
				}
				return
			}

			if err != nil {
				t.Errorf("ColorMode.Set(%q) unexpected error: %v", tt.value, err)
				return
			}

			if c != tt.want {
				t.Errorf("ColorMode.Set(%q) = %v, want %v", tt.value, c, tt.want)
			}
			if c.String() != tt.value {
				t.Errorf("ColorMode.String() = %q, want %q", c.String(), tt.value)
			}
			if c.Type() != "colorMode" {
				t.Errorf("ColorMode.Type() = %q, want %q", c.Type(), "colorMode")
			}
		})
	}
}

func TestColorize(t *testing.T) {
	if !(Config{Color: ColorAlways}).Colorize() {
		t.Error("Colorize() = false for always, want true")
	}
	if (Config{Color: ColorNever}).Colorize() {
		t.Error("Colorize() = true for never, want false")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(afero.NewMemMapFs(), newFlags(t))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
	}
	if cfg.Output != output.FormatText {
		t.Errorf("Output = %q, want %q", cfg.Output, output.FormatText)
	}
	if cfg.Limit != 24 {
		t.Errorf("Limit = %d, want 24", cfg.Limit)
	}
	if !cfg.Step.Equal(brokentime.DefaultStep) {
		t.Errorf("Step = %v, want %v", cfg.Step, brokentime.DefaultStep)
	}
}

func TestLoadPrecedence(t *testing.T) {
	const file = "color: never\noutput: yaml\nlimit: 5\nstep: \"00:30:00\"\n"

	tests := []struct {
		name       string
		env        map[string]string
		args       []string
		wantColor  ColorMode
		wantOutput output.Format
		wantLimit  int
		wantStep   brokentime.Duration
	}{
		{
			name:       "file only",
			wantColor:  ColorNever,
			wantOutput: output.FormatYAML,
			wantLimit:  5,
			wantStep:   brokentime.New(0, 30, 0),
		},
		{
			name:       "env beats file",
			env:        map[string]string{"BROKENTIME_OUTPUT": "json", "BROKENTIME_STEP": "15m"},
			wantColor:  ColorNever,
			wantOutput: output.FormatJSON,
			wantLimit:  5,
			wantStep:   brokentime.New(0, 15, 0),
		},
		{
			name:       "flags beat env",
			env:        map[string]string{"BROKENTIME_LIMIT": "7", "BROKENTIME_COLOR": "auto"},
			args:       []string{"--limit", "3", "--color", "always", "--by", "2h"},
			wantColor:  ColorAlways,
			wantOutput: output.FormatYAML,
			wantLimit:  3,
			wantStep:   brokentime.New(2, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			fs := afero.NewMemMapFs()
			writeFile(t, fs, "/cfg/broken-time/config.yaml", file)

			cfg, err := Load(fs, newFlags(t, tt.args...))
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}

			if cfg.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", cfg.Color, tt.wantColor)
			}
			if cfg.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", cfg.Output, tt.wantOutput)
			}
			if cfg.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", cfg.Limit, tt.wantLimit)
			}
			if !cfg.Step.Equal(tt.wantStep) {
				t.Errorf("Step = %v, want %v", cfg.Step, tt.wantStep)
			}
		})
	}
}

func TestLoadExplicitConfig(t *testing.T) {
	isolate(t)

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/etc/bt.yaml", "limit: 2\n")

	cfg, err := Load(fs, newFlags(t, "--config", "/etc/bt.yaml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Limit != 2 {
		t.Errorf("Limit = %d, want 2", cfg.Limit)
	}

	if _, err := Load(fs, newFlags(t, "--config", "/etc/missing.yaml")); err == nil {
		t.Error("Load() with missing --config file expected error, got nil")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantErr string
	}{
		{
			name:    "bad color",
			env:     map[string]string{"BROKENTIME_COLOR": "rainbow"},
			wantErr: "invalid color",
		},
		{
			name:    "bad output",
			file:    "output: xml\n",
			wantErr: "invalid output",
		},
		{
			name:    "zero limit",
			env:     map[string]string{"BROKENTIME_LIMIT": "0"},
			wantErr: "limit must be at least 1",
		},
		{
			name:    "bad step",
			env:     map[string]string{"BROKENTIME_STEP": "soon"},
			wantErr: "invalid step",
		},
		{
			name:    "zero step",
			env:     map[string]string{"BROKENTIME_STEP": "00:00:00"},
			wantErr: "step must be positive",
		},
		{
			name:    "malformed file",
			file:    "limit: [\n",
			wantErr: "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			fs := afero.NewMemMapFs()
			if tt.file != "" {
				writeFile(t, fs, "/cfg/broken-time/config.yaml", tt.file)
			}

			_, err := Load(fs, newFlags(t))
			if err == nil {
				t.Fatalf("Load() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}
