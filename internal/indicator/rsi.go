package indicator

// RSI computes the Relative Strength Index over the given period.
//
// Average gain and loss use the adjusted exponential weighted mean with
// center of mass period-1 (smoothing factor 1/period). Positions are
// undefined until period price changes have been observed. A zero average
// loss maps to the RSI=100 sentinel rather than an error.
func RSI(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period <= 0 || len(values) < 2 {
		return out
	}

	alpha := 1.0 / float64(period)
	decay := 1.0 - alpha

	var gainNum, lossNum, denom float64

	for i := 1; i < len(values); i++ {
		change := values[i] - values[i-1]

		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		gainNum = gain + decay*gainNum
		lossNum = loss + decay*lossNum
		denom = 1 + decay*denom

		// i price changes observed so far; the smoothing window needs period of them
		if i < period {
			continue
		}

		avgGain := gainNum / denom
		avgLoss := lossNum / denom

		if avgLoss == 0 {
			out[i] = 100

			continue
		}

		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}

	return out
}
