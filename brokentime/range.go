package brokentime

import (
	"fmt"
	"iter"
)

// DefaultStep is the step of a Range that was not given one.
var DefaultStep = New(1, 0, 0)

// Range describes the sequence start, start+step, start+2*step, ... up to
// and including end. A Range without an end is unbounded.
type Range struct {
	start   Duration
	end     Duration
	step    Duration
	bounded bool
}

// NewRange builds a Range from one to three Duration-like arguments, each
// converted with From:
//
//	NewRange(end)              // 00:00:00 .. end
//	NewRange(start, end)       // start .. end
//	NewRange(start, end, step) // start .. end by step
func NewRange(args ...any) (Range, error) {
	bounds := make([]Duration, len(args))
	for i, arg := range args {
		d, err := From(arg)
		if err != nil {
			return Range{}, fmt.Errorf("range argument %d: %w", i+1, err)
		}
		bounds[i] = d
	}

	switch len(bounds) {
	case 1:
		return Duration{}.To(bounds[0]), nil
	case 2:
		return bounds[0].To(bounds[1]), nil
	case 3:
		return bounds[0].To(bounds[1]).By(bounds[2]), nil
	default:
		return Range{}, fmt.Errorf("%w: expects 1 to 3, got %d", ErrInvalidArity, len(bounds))
	}
}

// Start returns the first value of the Range.
func (r Range) Start() Duration { return r.start }

// End returns the inclusive upper bound and whether one is set.
func (r Range) End() (Duration, bool) { return r.end, r.bounded }

// Step returns the increment between values.
func (r Range) Step() Duration { return r.step }

// To returns a copy of r ending at end.
func (r Range) To(end Duration) Range {
	r.end = end
	r.bounded = true
	return r
}

// By returns a copy of r advancing by step.
//
// A zero step never reaches a bound, and a negative step never passes one
// that is ahead of start; iterating such a Range does not terminate.
// Iteration also stops once the next value would wrap past the int64
// bounds, so a Range never yields values out of order.
func (r Range) By(step Duration) Range {
	r.step = step
	return r
}

// Iterate returns a new Iterator positioned at the start of r.
func (r Range) Iterate() *Iterator {
	return &Iterator{r: r, current: r.start}
}

// All returns r as a range-over-func sequence. Each call walks r afresh.
func (r Range) All() iter.Seq[Duration] {
	return func(yield func(Duration) bool) {
		it := r.Iterate()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (r Range) String() string {
	end := ""
	if r.bounded {
		end = r.end.String()
	}
	return fmt.Sprintf("['%s':'%s':'%s']", r.start, end, r.step)
}

// Iterator walks a Range. It is not safe for concurrent use; call
// Range.Iterate once per goroutine instead.
type Iterator struct {
	r       Range
	current Duration
	value   Duration
	done    bool
}

// Next advances the iterator and reports whether a value is available.
// Once Next returns false it keeps returning false.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if it.r.bounded && it.current.Greater(it.r.end) {
		it.done = true
		return false
	}

	it.value = it.current
	it.current = it.current.Add(it.r.step)
	if wrapped(it.value, it.current, it.r.step) {
		it.done = true
	}
	return true
}

// Value returns the value produced by the last call to Next.
func (it *Iterator) Value() Duration {
	return it.value
}

// wrapped reports whether next = prev + step overflowed.
func wrapped(prev, next, step Duration) bool {
	switch step.Sign() {
	case 1:
		return next.Less(prev)
	case -1:
		return next.Greater(prev)
	default:
		return false
	}
}
