package types

import "time"

// EquityPoint is one mark-to-market sample of total account value.
type EquityPoint struct {
	Date   time.Time `csv:"date"`
	Equity float64   `csv:"equity"`
}

// EquityCurve is the per-bar equity series of a run. It always has exactly
// one point per input bar, appended together with trade processing so the
// two can never desynchronize.
type EquityCurve []EquityPoint

// Equities returns the equity column of the curve.
func (c EquityCurve) Equities() []float64 {
	values := make([]float64, len(c))
	for i, point := range c {
		values[i] = point.Equity
	}

	return values
}

// Final returns the last equity value, or 0 for an empty curve.
func (c EquityCurve) Final() float64 {
	if len(c) == 0 {
		return 0
	}

	return c[len(c)-1].Equity
}
