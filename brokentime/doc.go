// Package brokentime implements a clock-style duration whose hour field is
// allowed to run past 24 and whose value may be negative.
//
// A Duration stores a single signed count of whole seconds. Hours, minutes
// and seconds are always derived from that count, so out-of-range inputs
// such as 25h90m90s are folded rather than rejected:
//
//	d := brokentime.New(25, 90, 90)
//	fmt.Println(d) // 26:31:30
//
// # Text Format
//
// Durations format as [-]HH:MM:SS. The hour field is at least two digits
// wide and grows as needed ("100:01:01"). Parse accepts three groups of
// decimal digits separated by colons. A leading sign is not part of the
// input grammar, so negative Durations do not round-trip through text.
//
// # Ranges
//
// Since, To and NewRange describe lazy sequences of Durations. A Range is
// an immutable value; each call to Range.Iterate returns an independent
// Iterator, so the same Range may be walked any number of times.
package brokentime
