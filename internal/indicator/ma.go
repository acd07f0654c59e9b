package indicator

import "math"

// SMA computes the simple moving average over the given window.
// The first period-1 positions are undefined.
func SMA(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0

	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// RollingStd computes the rolling sample standard deviation (n-1 denominator)
// over the given window. The first period-1 positions are undefined, as is
// every position when period < 2.
func RollingStd(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period < 2 || len(values) < period {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]

		mean := 0.0
		for _, v := range window {
			mean += v
		}

		mean /= float64(period)

		sumSq := 0.0

		for _, v := range window {
			d := v - mean
			sumSq += d * d
		}

		out[i] = math.Sqrt(sumSq / float64(period-1))
	}

	return out
}
