package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/strategy"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// stubSource serves a fixed bar series regardless of the requested window.
type stubSource struct {
	bars types.BarSeries
	err  error
}

func (s *stubSource) GetBars(_ context.Context, _ string, _, _ time.Time) (types.BarSeries, error) {
	return s.bars, s.err
}

func (s *stubSource) Close() error {
	return nil
}

func testBars(closes ...float64) types.BarSeries {
	bars := make(types.BarSeries, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{Date: day(i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}

	return bars
}

type RunnerTestSuite struct {
	suite.Suite
	logger *logger.Logger
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (suite *RunnerTestSuite) SetupTest() {
	suite.logger = logger.NewNopLogger()
}

func (suite *RunnerTestSuite) config(name string) RunConfig {
	cfg := DefaultRunConfig()
	cfg.Symbol = "TEST"
	cfg.Strategy = strategy.Config{Name: name}
	cfg.SlippageRate = 0

	return cfg
}

func (suite *RunnerTestSuite) TestBuyAndHoldRun() {
	runner := NewRunner(&stubSource{bars: testBars(100, 105, 103, 110)}, suite.logger)

	result, err := runner.Run(context.Background(), suite.config(strategy.NameBuyAndHold), nil)
	suite.Require().NoError(err)

	// one point per bar, one forced-close round trip
	suite.Len(result.Curve, 4)
	suite.Require().Len(result.Trades, 1)
	suite.Equal("TEST", result.Summary.Symbol)
	suite.Equal(strategy.NameBuyAndHold, result.Summary.Strategy)
	suite.NotEmpty(result.Summary.ID)
	suite.Equal(1, result.Summary.NumTrades)

	// conservation: final equity is initial capital plus total trade pnl
	suite.InDelta(10000+result.Trades[0].PnL, result.Summary.FinalEquity, 1e-9)
}

func (suite *RunnerTestSuite) TestProgressCallback() {
	runner := NewRunner(&stubSource{bars: testBars(100, 101, 102)}, suite.logger)

	var calls []int

	_, err := runner.Run(context.Background(), suite.config(strategy.NameBuyAndHold), func(done, total int) {
		suite.Equal(3, total)
		calls = append(calls, done)
	})
	suite.Require().NoError(err)
	suite.Equal([]int{1, 2, 3}, calls)
}

func (suite *RunnerTestSuite) TestEmptySeries() {
	runner := NewRunner(&stubSource{}, suite.logger)

	_, err := runner.Run(context.Background(), suite.config(strategy.NameBuyAndHold), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

func (suite *RunnerTestSuite) TestUnsortedSeries() {
	bars := testBars(100, 101, 102)
	bars[1].Date = bars[2].Date.AddDate(0, 0, 5)

	runner := NewRunner(&stubSource{bars: bars}, suite.logger)

	_, err := runner.Run(context.Background(), suite.config(strategy.NameBuyAndHold), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsortedSeries))
}

func (suite *RunnerTestSuite) TestSourceFailure() {
	runner := NewRunner(&stubSource{err: errors.New(errors.ErrCodeQueryFailed, "boom")}, suite.logger)

	_, err := runner.Run(context.Background(), suite.config(strategy.NameBuyAndHold), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

func (suite *RunnerTestSuite) TestInvalidStrategyName() {
	runner := NewRunner(&stubSource{bars: testBars(100)}, suite.logger)

	_, err := runner.Run(context.Background(), suite.config("not_a_strategy"), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownStrategy))
}

func (suite *RunnerTestSuite) TestCancelledContext() {
	runner := NewRunner(&stubSource{bars: testBars(100, 101)}, suite.logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, suite.config(strategy.NameBuyAndHold), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeRunCancelled))
}
