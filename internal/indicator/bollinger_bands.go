package indicator

// BollingerResult holds the Bollinger band series, aligned to the input.
type BollingerResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
	// PercentB is (price - lower) / (upper - lower); undefined while the
	// bands are undefined and when the band width is zero.
	PercentB []float64
}

// Bollinger computes rolling mean bands at k rolling standard deviations.
// The first period-1 positions are undefined.
func Bollinger(values []float64, period int, k float64) BollingerResult {
	middle := SMA(values, period)
	std := RollingStd(values, period)

	n := len(values)
	upper := undefinedSeries(n)
	lower := undefinedSeries(n)
	percentB := undefinedSeries(n)

	for i := 0; i < n; i++ {
		if !Defined(middle[i]) || !Defined(std[i]) {
			continue
		}

		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]

		width := upper[i] - lower[i]
		if width != 0 {
			percentB[i] = (values[i] - lower[i]) / width
		}
	}

	return BollingerResult{
		Middle:   middle,
		Upper:    upper,
		Lower:    lower,
		PercentB: percentB,
	}
}
