package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stratbench/stratbench/internal/types"
	"github.com/stretchr/testify/suite"
)

func curveOf(equities ...float64) types.EquityCurve {
	curve := make(types.EquityCurve, len(equities))
	for i, equity := range equities {
		curve[i] = types.EquityPoint{
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Equity: equity,
		}
	}

	return curve
}

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) TestDegenerateCurve() {
	for _, curve := range []types.EquityCurve{nil, curveOf(10000)} {
		summary := Calculate(curve, nil, 10000, 0.04)

		suite.Equal(10000.0, summary.InitialCapital)
		suite.Zero(summary.TotalReturn)
		suite.Zero(summary.AnnualizedReturn)
		suite.Zero(summary.Volatility)
		suite.Zero(summary.SharpeRatio)
		suite.Zero(summary.MaxDrawdown)
		suite.Zero(summary.MaxDrawdownDuration)
		suite.Zero(summary.NumTrades)
	}
}

func (suite *MetricsTestSuite) TestFlatCurve() {
	summary := Calculate(curveOf(10000, 10000, 10000, 10000), nil, 10000, 0.04)

	suite.Zero(summary.TotalReturn)
	suite.Zero(summary.AnnualizedReturn)
	suite.Zero(summary.Volatility)
	suite.Zero(summary.SharpeRatio)
	suite.Zero(summary.MaxDrawdown)
	suite.Zero(summary.MaxDrawdownDuration)
	suite.Equal(10000.0, summary.FinalEquity)
}

func (suite *MetricsTestSuite) TestReturnAndVolatility() {
	summary := Calculate(curveOf(100, 110, 99), nil, 100, 0)

	suite.InDelta(-1.0, summary.TotalReturn, 1e-9)

	// daily returns are +10% and -10%: sample std 0.1414, annualized ~224.5%
	suite.InDelta(math.Sqrt(0.02)*math.Sqrt(252)*100, summary.Volatility, 1e-9)

	// mean daily return is zero, so the zero-rate Sharpe is zero
	suite.InDelta(0, summary.SharpeRatio, 1e-9)

	// 0.99^(365.25/2) - 1
	suite.InDelta(-84.047, summary.AnnualizedReturn, 0.01)
}

func (suite *MetricsTestSuite) TestZeroEquitySampleStaysFinite() {
	summary := Calculate(curveOf(100, 0, 0, 50), nil, 100, 0.04)

	// the returns off the zero base are dropped, not divided through
	suite.False(math.IsNaN(summary.Volatility))
	suite.False(math.IsInf(summary.Volatility, 0))
	suite.False(math.IsNaN(summary.SharpeRatio))
	suite.False(math.IsInf(summary.SharpeRatio, 0))
	suite.InDelta(-100.0, summary.MaxDrawdown, 1e-9)
}

func (suite *MetricsTestSuite) TestAnnualizedReturnSentinels() {
	// run ending at zero equity is a total loss
	summary := Calculate(curveOf(100, 50, 0), nil, 100, 0)
	suite.InDelta(-100.0, summary.AnnualizedReturn, 1e-9)

	// non-positive initial capital has no growth rate to annualize
	suite.Zero(annualizedReturn(curveOf(100, 110), 0))
}

func (suite *MetricsTestSuite) TestMaxDrawdown() {
	summary := Calculate(curveOf(100, 110, 99, 104.5, 110, 121), nil, 100, 0)

	// trough 99 against peak 110
	suite.InDelta(-10.0, summary.MaxDrawdown, 1e-9)
	// bars 99 and 104.5 sit below the 110 peak
	suite.Equal(2, summary.MaxDrawdownDuration)
}

func (suite *MetricsTestSuite) TestDrawdownDurationEndsAtRecovery() {
	summary := Calculate(curveOf(100, 90, 95, 99, 100, 99, 101), nil, 100, 0)

	// first streak below the 100 peak lasts three bars, the second only one
	suite.Equal(3, summary.MaxDrawdownDuration)
}

func (suite *MetricsTestSuite) TestTradeStatistics() {
	trades := []types.Trade{
		{PnL: 100, ReturnPct: 10},
		{PnL: -50, ReturnPct: -5},
		{PnL: 30, ReturnPct: 3},
	}

	summary := Calculate(curveOf(1000, 1080), trades, 1000, 0)

	suite.Equal(3, summary.NumTrades)
	suite.InDelta(66.666, summary.WinRate, 0.01)
	suite.InDelta(2.6, summary.ProfitFactor, 1e-9)
	suite.InDelta(8.0/3, summary.AvgTradeReturn, 1e-9)
}

func (suite *MetricsTestSuite) TestProfitFactorAllWinners() {
	trades := []types.Trade{{PnL: 10}, {PnL: 20}}

	summary := Calculate(curveOf(1000, 1030), trades, 1000, 0)
	suite.True(math.IsInf(summary.ProfitFactor, 1))
}

func (suite *MetricsTestSuite) TestProfitFactorNoTrades() {
	summary := Calculate(curveOf(1000, 1000), nil, 1000, 0)
	suite.Zero(summary.ProfitFactor)
	suite.Zero(summary.WinRate)
	suite.Zero(summary.AvgTradeReturn)
}
