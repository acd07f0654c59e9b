// Package metrics derives performance statistics from a finished run's
// equity curve and trade log. All functions are pure: they never mutate
// their inputs and carry no state between calls.
package metrics

import (
	"math"

	"github.com/stratbench/stratbench/internal/types"
)

const (
	// tradingDaysPerYear is the annualization base for volatility and Sharpe.
	tradingDaysPerYear = 252
	// calendarDaysPerYear converts the run's calendar span into years for
	// the compound annual growth rate.
	calendarDaysPerYear = 365.25
)

// Calculate computes the full performance summary for one run. A curve with
// fewer than two points carries no return information, so every derived
// statistic is reported as zero.
func Calculate(curve types.EquityCurve, trades []types.Trade, initialCapital, riskFreeRate float64) types.PerformanceSummary {
	summary := types.PerformanceSummary{
		InitialCapital: initialCapital,
		FinalEquity:    curve.Final(),
	}

	if len(curve) < 2 {
		return summary
	}

	equities := curve.Equities()

	summary.TotalReturn = (summary.FinalEquity/initialCapital - 1) * 100
	summary.AnnualizedReturn = annualizedReturn(curve, initialCapital)

	returns := dailyReturns(equities)
	summary.Volatility = sampleStd(returns) * math.Sqrt(tradingDaysPerYear) * 100
	summary.SharpeRatio = sharpeRatio(returns, riskFreeRate)
	summary.MaxDrawdown, summary.MaxDrawdownDuration = maxDrawdown(equities)

	summary.NumTrades = len(trades)
	summary.WinRate = winRate(trades)
	summary.ProfitFactor = profitFactor(trades)
	summary.AvgTradeReturn = avgTradeReturn(trades)

	return summary
}

// annualizedReturn is the compound annual growth rate over the run's
// calendar span, in percent. A zero-day span or non-positive initial
// capital annualizes to nothing; a run that ends at or below zero equity
// reports the -100 total-loss floor.
func annualizedReturn(curve types.EquityCurve, initialCapital float64) float64 {
	days := curve[len(curve)-1].Date.Sub(curve[0].Date).Hours() / 24
	if days <= 0 || initialCapital <= 0 {
		return 0
	}

	growth := curve.Final() / initialCapital
	if growth <= 0 {
		return -100
	}

	return (math.Pow(growth, calendarDaysPerYear/days) - 1) * 100
}

// dailyReturns is the simple return series of consecutive equity samples.
// Samples with a non-positive base have no meaningful return and are
// skipped, keeping downstream statistics finite.
func dailyReturns(equities []float64) []float64 {
	returns := make([]float64, 0, len(equities)-1)
	for i := 1; i < len(equities); i++ {
		if equities[i-1] <= 0 {
			continue
		}

		returns = append(returns, equities[i]/equities[i-1]-1)
	}

	return returns
}

// sharpeRatio annualizes the mean excess daily return over its standard
// deviation. The annual risk-free rate is compounded down to a daily rate
// first. Zero volatility yields a zero ratio.
func sharpeRatio(returns []float64, riskFreeRate float64) float64 {
	std := sampleStd(returns)
	if std == 0 {
		return 0
	}

	dailyRiskFree := math.Pow(1+riskFreeRate, 1.0/tradingDaysPerYear) - 1

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - dailyRiskFree
	}

	return mean(excess) / std * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdown returns the worst peak-to-trough decline in percent
// (non-positive) and the longest streak of samples spent below a prior
// equity peak.
func maxDrawdown(equities []float64) (float64, int) {
	var (
		worst   float64
		longest int
		current int
		peak    = equities[0]
	)

	for _, equity := range equities {
		if equity > peak {
			peak = equity
		}

		if equity < peak {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}

		if peak > 0 {
			if dd := (equity - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}

	return worst * 100, longest
}

// winRate is the share of trades that closed with positive PnL, in percent.
func winRate(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	wins := 0
	for _, trade := range trades {
		if trade.PnL > 0 {
			wins++
		}
	}

	return float64(wins) / float64(len(trades)) * 100
}

// profitFactor is gross profit over gross loss. With winners and no losers
// it is +Inf; with no trades at all it is 0.
func profitFactor(trades []types.Trade) float64 {
	var grossProfit, grossLoss float64

	for _, trade := range trades {
		if trade.PnL > 0 {
			grossProfit += trade.PnL
		} else {
			grossLoss -= trade.PnL
		}
	}

	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}

		return 0
	}

	return grossProfit / grossLoss
}

// avgTradeReturn is the mean per-trade return in percent.
func avgTradeReturn(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	total := 0.0
	for _, trade := range trades {
		total += trade.ReturnPct
	}

	return total / float64(len(trades))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	total := 0.0
	for _, v := range values {
		total += v
	}

	return total / float64(len(values))
}

// sampleStd is the n-1 standard deviation. Fewer than two samples have no
// spread to measure.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)

	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}

	return math.Sqrt(total / float64(len(values)-1))
}
