package brokentime

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Errors returned by the conversion and range constructors.
var (
	ErrParse          = errors.New("invalid duration")
	ErrInvalidArity   = errors.New("invalid number of range arguments")
	ErrTypeConversion = errors.New("cannot convert to duration")
)

// clockPattern is the only accepted input grammar: hours:minutes:seconds,
// each group one or more decimal digits.
var clockPattern = regexp.MustCompile(`^(\d+):(\d+):(\d+)$`)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
)

// Duration is a signed whole-second quantity. The zero value is 00:00:00.
type Duration struct {
	total int64
}

// New returns the Duration hours*3600 + minutes*60 + seconds. Components are
// not range checked: any of them may be negative or larger than its clock
// bound.
func New(hours, minutes, seconds int64) Duration {
	return Duration{total: hours*secondsPerHour + minutes*secondsPerMinute + seconds}
}

// FromSeconds returns a Duration of n seconds.
func FromSeconds(n int64) Duration {
	return Duration{total: n}
}

// FromStd converts a time.Duration, truncating toward zero to whole seconds.
func FromStd(d time.Duration) Duration {
	return Duration{total: int64(d / time.Second)}
}

// Parse parses text of the form H:MM:SS. Each field is one or more digits
// and may exceed its clock bound ("1:90:00" is 02:30:00).
func Parse(s string) (Duration, error) {
	if strings.HasPrefix(s, "-") {
		return Duration{}, fmt.Errorf("%w %q: negative durations are not supported", ErrParse, s)
	}

	matches := clockPattern.FindStringSubmatch(s)
	if matches == nil {
		return Duration{}, fmt.Errorf("%w %q: expected H:MM:SS", ErrParse, s)
	}

	var fields [3]int64
	for i, group := range matches[1:] {
		n, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return Duration{}, fmt.Errorf("%w %q: %w", ErrParse, s, err)
		}
		fields[i] = n
	}

	return New(fields[0], fields[1], fields[2]), nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// From converts a Duration-like operand into a Duration. It accepts
// Duration, *Duration, time.Duration and text in the Parse grammar.
//
// The comparison and arithmetic methods, To and By take a Duration only.
// Callers holding text or another operand convert it with From first;
// NewRange is the one constructor that calls From itself.
func From(v any) (Duration, error) {
	switch v := v.(type) {
	case Duration:
		return v, nil
	case *Duration:
		if v == nil {
			return Duration{}, fmt.Errorf("%w: nil *Duration", ErrTypeConversion)
		}
		return *v, nil
	case string:
		return Parse(v)
	case time.Duration:
		return FromStd(v), nil
	default:
		return Duration{}, fmt.Errorf("%w: unsupported type %T", ErrTypeConversion, v)
	}
}

// Hours returns the hour field of |d|. It is not bounded by 24.
func (d Duration) Hours() int64 {
	return int64(d.magnitude() / secondsPerHour)
}

// Minutes returns the minute field of |d|, in [0, 59].
func (d Duration) Minutes() int64 {
	return int64(d.magnitude() / secondsPerMinute % 60)
}

// Seconds returns the second field of |d|, in [0, 59].
func (d Duration) Seconds() int64 {
	return int64(d.magnitude() % secondsPerMinute)
}

// TotalSeconds returns the signed number of seconds in d.
func (d Duration) TotalSeconds() int64 {
	return d.total
}

// Sign returns -1, 0 or +1.
func (d Duration) Sign() int {
	switch {
	case d.total < 0:
		return -1
	case d.total > 0:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether d is 00:00:00.
func (d Duration) IsZero() bool {
	return d.total == 0
}

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.total) * time.Second
}

// magnitude is |total| as a uint64, which also holds |math.MinInt64|.
func (d Duration) magnitude() uint64 {
	if d.total < 0 {
		return uint64(-d.total)
	}
	return uint64(d.total)
}

// String formats d as [-]HH:MM:SS.
func (d Duration) String() string {
	sign := ""
	if d.total < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, d.Hours(), d.Minutes(), d.Seconds())
}

// MarshalText encodes d in its String form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes text in the Parse grammar.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Compare returns -1, 0 or +1 depending on whether d is shorter than, equal
// to or longer than o.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.total < o.total:
		return -1
	case d.total > o.total:
		return 1
	default:
		return 0
	}
}

// Equal reports whether d and o hold the same number of seconds.
func (d Duration) Equal(o Duration) bool { return d.total == o.total }

// NotEqual reports whether d and o differ.
func (d Duration) NotEqual(o Duration) bool { return d.total != o.total }

// Less reports whether d < o.
func (d Duration) Less(o Duration) bool { return d.total < o.total }

// LessOrEqual reports whether d <= o.
func (d Duration) LessOrEqual(o Duration) bool { return d.total <= o.total }

// Greater reports whether d > o.
func (d Duration) Greater(o Duration) bool { return d.total > o.total }

// GreaterOrEqual reports whether d >= o.
func (d Duration) GreaterOrEqual(o Duration) bool { return d.total >= o.total }

// Add returns d+o.
func (d Duration) Add(o Duration) Duration {
	return Duration{total: d.total + o.total}
}

// Sub returns d-o.
func (d Duration) Sub(o Duration) Duration {
	return Duration{total: d.total - o.total}
}

// Neg returns -d.
func (d Duration) Neg() Duration {
	return Duration{total: -d.total}
}

// Abs returns |d|. Like Neg, it wraps for the most negative Duration.
func (d Duration) Abs() Duration {
	if d.total < 0 {
		return d.Neg()
	}
	return d
}

// Scale returns d multiplied by factor, rounded to the nearest second.
// Halves round to even: 00:00:01 * 2.5 is 00:00:02. Results beyond the
// int64 range saturate at the nearest bound; a NaN result panics.
func (d Duration) Scale(factor float64) Duration {
	return fromFloat(math.RoundToEven(float64(d.total) * factor))
}

// Div returns how many times o fits into d as a real number. Dividing by a
// zero Duration yields ±Inf or NaN.
func (d Duration) Div(o Duration) float64 {
	return float64(d.total) / float64(o.total)
}

// DivBy returns d divided by n, rounded to the nearest second with halves
// rounding to even. It panics if n is zero or NaN, and saturates like Scale.
func (d Duration) DivBy(n float64) Duration {
	if n == 0 {
		panic("brokentime: division by zero")
	}
	return fromFloat(math.RoundToEven(float64(d.total) / n))
}

// FloorDiv returns floor(d/o). It panics if o is zero.
func (d Duration) FloorDiv(o Duration) int64 {
	return floorDiv(d.total, o.total)
}

// FloorDivBy returns d divided by n, rounded toward negative infinity. It
// panics if n is zero or NaN, and saturates like Scale.
func (d Duration) FloorDivBy(n float64) Duration {
	if n == 0 {
		panic("brokentime: division by zero")
	}
	return fromFloat(math.Floor(float64(d.total) / n))
}

// Mod returns d modulo o. The result has the sign of o, so that
// d == o*d.FloorDiv(o) + d.Mod(o). It panics if o is zero.
func (d Duration) Mod(o Duration) Duration {
	return Duration{total: floorMod(d.total, o.total)}
}

// Representable reports whether f seconds, once rounded, fits in a Duration
// without saturating. It is false for NaN and the infinities.
func Representable(f float64) bool {
	return f >= -maxSeconds && f < maxSeconds
}

// maxSeconds is 2^63, the first float64 past math.MaxInt64.
const maxSeconds = 1 << 63

// fromFloat converts an integral number of seconds, saturating at the
// int64 bounds.
func fromFloat(f float64) Duration {
	switch {
	case math.IsNaN(f):
		panic("brokentime: NaN duration")
	case f >= maxSeconds:
		return Duration{total: math.MaxInt64}
	case f < -maxSeconds:
		return Duration{total: math.MinInt64}
	default:
		return Duration{total: int64(f)}
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Since returns an unbounded Range starting at d.
func (d Duration) Since() Range {
	return Range{start: d, step: DefaultStep}
}

// To returns the Range from d to end, both inclusive.
func (d Duration) To(end Duration) Range {
	return d.Since().To(end)
}
