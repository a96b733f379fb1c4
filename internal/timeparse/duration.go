// Package timeparse parses the step and offset arguments accepted on the
// command line.
package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jparise/broken-time/brokentime"
)

var units = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 60 * 60,
	"d": 24 * 60 * 60,
	"w": 7 * 24 * 60 * 60,
	// Aliases
	"day":   24 * 60 * 60,
	"days":  24 * 60 * 60,
	"week":  7 * 24 * 60 * 60,
	"weeks": 7 * 24 * 60 * 60,
}

// ParseStep parses either a clock duration ("01:30:00") or a single
// number with a unit suffix.
// Supports: s (seconds), m (minutes), h (hours), d/day/days, w/week/weeks.
// Examples: "90s", "15m", "36h", "2days".
func ParseStep(s string) (brokentime.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return brokentime.Duration{}, fmt.Errorf("empty step string")
	}

	if strings.Contains(s, ":") {
		return brokentime.Parse(s)
	}

	// Find where the unit starts (first non-digit)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}

	if i == 0 {
		return brokentime.Duration{}, fmt.Errorf("invalid step %q: missing number", s)
	}
	if i == len(s) {
		return brokentime.Duration{}, fmt.Errorf("invalid step %q: missing unit", s)
	}

	num, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return brokentime.Duration{}, fmt.Errorf("invalid step %q: %w", s, err)
	}

	unitStr := strings.TrimSpace(s[i:])
	unit, ok := units[unitStr]
	if !ok {
		return brokentime.Duration{}, fmt.Errorf("invalid step %q: unknown unit %q", s, unitStr)
	}

	if num > math.MaxInt64/unit {
		return brokentime.Duration{}, fmt.Errorf("invalid step %q: value too large", s)
	}

	return brokentime.FromSeconds(num * unit), nil
}
