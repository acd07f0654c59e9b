package indicator

// EMA computes the exponential moving average with smoothing factor
// 2/(period+1). The recursion is seeded at the first value; the first
// period-1 positions are reported as undefined warmup.
func EMA(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	full := ewmSpan(values, period)
	for i := period - 1; i < len(values); i++ {
		out[i] = full[i]
	}

	return out
}

// ewmSpan is the raw recursive exponential weighted mean with span-based
// smoothing, defined from the first value. MACD uses it directly so its
// lines exist from bar zero.
func ewmSpan(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}
