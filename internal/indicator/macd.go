package indicator

// MACDResult holds the three MACD series, aligned to the input.
type MACDResult struct {
	// Line is EMA(fast) - EMA(slow).
	Line []float64
	// Signal is the EMA of the MACD line over the signal period.
	Signal []float64
	// Histogram is Line - Signal.
	Histogram []float64
}

// MACD computes the Moving Average Convergence Divergence series. The
// underlying EMAs recurse from the first value, so all three series are
// defined from bar zero.
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	fast := ewmSpan(values, fastPeriod)
	slow := ewmSpan(values, slowPeriod)

	line := make([]float64, len(values))
	for i := range values {
		line[i] = fast[i] - slow[i]
	}

	signal := ewmSpan(line, signalPeriod)

	histogram := make([]float64, len(values))
	for i := range values {
		histogram[i] = line[i] - signal[i]
	}

	return MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: histogram,
	}
}
