package indicator

// ZScore computes how many rolling standard deviations each value sits from
// its rolling mean over the lookback window. Positions with an undefined
// window or zero standard deviation are undefined.
func ZScore(values []float64, lookback int) []float64 {
	mean := SMA(values, lookback)
	std := RollingStd(values, lookback)

	out := undefinedSeries(len(values))

	for i := range values {
		if !Defined(mean[i]) || !Defined(std[i]) || std[i] == 0 {
			continue
		}

		out[i] = (values[i] - mean[i]) / std[i]
	}

	return out
}
