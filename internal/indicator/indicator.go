// Package indicator provides stateless transforms over a price column.
// Every transform returns a series aligned to its input; positions where the
// value is not yet defined (warmup windows, zero denominators) carry NaN so
// downstream signal logic can distinguish "no value" from zero.
package indicator

import "math"

// Undefined is the sentinel for positions where an indicator has no value.
func Undefined() float64 {
	return math.NaN()
}

// Defined reports whether v carries an actual indicator value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}
