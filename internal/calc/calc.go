// Package calc evaluates one-operator expressions over broken-time durations.
//
// An expression is a single operand, a negated operand ("- 01:00:00"), or
// two operands joined by an operator, separated by whitespace:
//
//	01:30:00 + 00:45:00
//	01:01:01 * 1.5
//	26:00:00 // 08:00:00
//	25:00:00 > 24:59:59
//
// Each operator is a thin binding onto the matching brokentime.Duration
// method.
package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jparise/broken-time/brokentime"
)

// Expression errors.
var (
	ErrSyntax         = errors.New("invalid expression")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOutOfRange     = errors.New("result out of range")
)

// Kind identifies which field of a Result is set.
type Kind int

const (
	KindDuration Kind = iota
	KindNumber
	KindBool
)

// Result is the value of an evaluated expression.
type Result struct {
	Kind     Kind
	Duration brokentime.Duration
	Number   float64
	Bool     bool
}

// value is r as a plain Go value: Durations stay Durations so that they
// encode as clock text, numbers and bools encode natively.
func (r Result) value() any {
	switch r.Kind {
	case KindNumber:
		return r.Number
	case KindBool:
		return r.Bool
	default:
		return r.Duration
	}
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value())
}

func (r Result) MarshalYAML() (any, error) {
	return r.value(), nil
}

func (r Result) String() string {
	switch r.Kind {
	case KindNumber:
		return strconv.FormatFloat(r.Number, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(r.Bool)
	default:
		return r.Duration.String()
	}
}

type operand struct {
	duration brokentime.Duration
	number   float64
	isNumber bool
}

func (o operand) kind() string {
	if o.isNumber {
		return "number"
	}
	return "duration"
}

// parseOperand reads clock text or a number. Unlike brokentime.Parse, a
// leading "-" on clock text is accepted and negates the value, so that
// negative results can be fed back in.
func parseOperand(tok string) (operand, error) {
	if strings.Contains(tok, ":") {
		neg := strings.HasPrefix(tok, "-")
		d, err := brokentime.Parse(strings.TrimPrefix(tok, "-"))
		if err != nil {
			return operand{}, err
		}
		if neg {
			d = d.Neg()
		}
		return operand{duration: d}, nil
	}

	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return operand{}, fmt.Errorf("%w: %q is neither a duration nor a number", ErrSyntax, tok)
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return operand{}, fmt.Errorf("%w: %q is not a finite number", ErrSyntax, tok)
	}
	return operand{number: n, isNumber: true}, nil
}

func durationResult(d brokentime.Duration) Result { return Result{Kind: KindDuration, Duration: d} }
func numberResult(n float64) Result { return Result{Kind: KindNumber, Number: n} }
func boolResult(b bool) Result { return Result{Kind: KindBool, Bool: b} }

type binaryFunc func(a, b operand) (Result, error)

// durations adapts a Duration-only operator.
func durations(fn func(a, b brokentime.Duration) Result) binaryFunc {
	return func(a, b operand) (Result, error) {
		if a.isNumber || b.isNumber {
			return Result{}, fmt.Errorf("%w: expected two durations, got %s and %s",
				brokentime.ErrTypeConversion, a.kind(), b.kind())
		}
		return fn(a.duration, b.duration), nil
	}
}

var operators = map[string]binaryFunc{
	"+":  durations(func(a, b brokentime.Duration) Result { return durationResult(a.Add(b)) }),
	"-":  durations(func(a, b brokentime.Duration) Result { return durationResult(a.Sub(b)) }),
	"*":  scale,
	"/":  divide,
	"//": floorDivide,
	"%":  modulo,

	"==": durations(func(a, b brokentime.Duration) Result { return boolResult(a.Equal(b)) }),
	"!=": durations(func(a, b brokentime.Duration) Result { return boolResult(a.NotEqual(b)) }),
	"<":  durations(func(a, b brokentime.Duration) Result { return boolResult(a.Less(b)) }),
	"<=": durations(func(a, b brokentime.Duration) Result { return boolResult(a.LessOrEqual(b)) }),
	">":  durations(func(a, b brokentime.Duration) Result { return boolResult(a.Greater(b)) }),
	">=": durations(func(a, b brokentime.Duration) Result { return boolResult(a.GreaterOrEqual(b)) }),
}

// checkRange rejects a float result that Duration would saturate.
func checkRange(d brokentime.Duration, op string, n, f float64) error {
	if !brokentime.Representable(f) {
		return fmt.Errorf("%w: %s %s %v", ErrOutOfRange, d, op, n)
	}
	return nil
}

func scale(a, b operand) (Result, error) {
	if a.isNumber && !b.isNumber {
		a, b = b, a
	}
	if a.isNumber || !b.isNumber {
		return Result{}, fmt.Errorf("%w: expected a duration and a number, got %s and %s",
			brokentime.ErrTypeConversion, a.kind(), b.kind())
	}
	if err := checkRange(a.duration, "*", b.number, float64(a.duration.TotalSeconds())*b.number); err != nil {
		return Result{}, err
	}
	return durationResult(a.duration.Scale(b.number)), nil
}

func divide(a, b operand) (Result, error) {
	if a.isNumber {
		return Result{}, fmt.Errorf("%w: cannot divide a number by a %s", brokentime.ErrTypeConversion, b.kind())
	}
	if b.isNumber {
		if b.number == 0 {
			return Result{}, ErrDivisionByZero
		}
		if err := checkRange(a.duration, "/", b.number, float64(a.duration.TotalSeconds())/b.number); err != nil {
			return Result{}, err
		}
		return durationResult(a.duration.DivBy(b.number)), nil
	}
	if b.duration.IsZero() {
		return Result{}, ErrDivisionByZero
	}
	return numberResult(a.duration.Div(b.duration)), nil
}

func floorDivide(a, b operand) (Result, error) {
	if a.isNumber {
		return Result{}, fmt.Errorf("%w: cannot divide a number by a %s", brokentime.ErrTypeConversion, b.kind())
	}
	if b.isNumber {
		if b.number == 0 {
			return Result{}, ErrDivisionByZero
		}
		if err := checkRange(a.duration, "//", b.number, float64(a.duration.TotalSeconds())/b.number); err != nil {
			return Result{}, err
		}
		return durationResult(a.duration.FloorDivBy(b.number)), nil
	}
	if b.duration.IsZero() {
		return Result{}, ErrDivisionByZero
	}
	return numberResult(float64(a.duration.FloorDiv(b.duration))), nil
}

func modulo(a, b operand) (Result, error) {
	if a.isNumber || b.isNumber {
		return Result{}, fmt.Errorf("%w: expected two durations, got %s and %s",
			brokentime.ErrTypeConversion, a.kind(), b.kind())
	}
	if b.duration.IsZero() {
		return Result{}, ErrDivisionByZero
	}
	return durationResult(a.duration.Mod(b.duration)), nil
}

// Eval evaluates expr and returns its value.
func Eval(expr string) (Result, error) {
	tokens := strings.Fields(expr)

	switch len(tokens) {
	case 1:
		return evalOperand(tokens[0])

	case 2:
		if tokens[0] != "-" {
			return Result{}, fmt.Errorf("%w: %q: expected \"- <operand>\"", ErrSyntax, expr)
		}
		r, err := evalOperand(tokens[1])
		if err != nil {
			return Result{}, err
		}
		if r.Kind == KindNumber {
			return numberResult(-r.Number), nil
		}
		return durationResult(r.Duration.Neg()), nil

	case 3:
		fn, ok := operators[tokens[1]]
		if !ok {
			return Result{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, tokens[1])
		}
		a, err := parseOperand(tokens[0])
		if err != nil {
			return Result{}, err
		}
		b, err := parseOperand(tokens[2])
		if err != nil {
			return Result{}, err
		}
		return fn(a, b)

	case 0:
		return Result{}, fmt.Errorf("%w: empty expression", ErrSyntax)

	default:
		return Result{}, fmt.Errorf("%w: %q: expected at most one operator", ErrSyntax, expr)
	}
}

func evalOperand(tok string) (Result, error) {
	o, err := parseOperand(tok)
	if err != nil {
		return Result{}, err
	}
	if o.isNumber {
		return numberResult(o.number), nil
	}
	return durationResult(o.duration), nil
}
