// Package output renders command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jparise/broken-time/brokentime"
	"github.com/mgutz/ansi"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written to stdout.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// String is used both by fmt.Print and by Cobra in help text.
func (f *Format) String() string {
	return string(*f)
}

// Set must have pointer receiver to validate and set the value.
func (f *Format) Set(v string) error {
	switch v {
	case "text", "json", "yaml":
		*f = Format(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"text\", \"json\", or \"yaml\"")
	}
}

// Type is only used in help text.
func (f *Format) Type() string {
	return "format"
}

// Output handles all output formatting with optional color support.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	format Format

	red    func(string) string
	yellow func(string) string
}

// New creates a new Output writing results in the given format.
func New(stdout, stderr io.Writer, colorize bool, format Format) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	if format == "" {
		format = FormatText
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		format: format,
		red:    color("red+b"),
		yellow: color("yellow"),
	}
}

func (o *Output) text(s string) string {
	if strings.HasPrefix(s, "-") {
		return o.red(s)
	}
	return s
}

// Value writes a single result. JSON and YAML encode v itself, so types
// with their own marshalers control their encoded form.
func (o *Output) Value(v fmt.Stringer) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.write(v, func() string { return o.text(v.String()) })
}

// Durations writes a finite sequence of durations as a list.
func (o *Output) Durations(values []brokentime.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if values == nil {
		values = []brokentime.Duration{}
	}

	return o.write(values, func() string {
		var buf strings.Builder
		for _, d := range values {
			buf.WriteString(o.text(d.String()))
			buf.WriteByte('\n')
		}
		return strings.TrimSuffix(buf.String(), "\n")
	})
}

// write encodes v in the configured format, falling back to text() for
// plain text output. Callers hold o.mu.
func (o *Output) write(v any, text func() string) error {
	switch o.format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintf(o.stdout, "%s\n", data)
		return err

	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = o.stdout.Write(data)
		return err

	default:
		s := text()
		if s == "" {
			return nil
		}
		_, err := fmt.Fprintf(o.stdout, "%s\n", s)
		return err
	}
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}
