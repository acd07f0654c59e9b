package backtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stratbench/stratbench/internal/datasource"
	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/metrics"
	"github.com/stratbench/stratbench/internal/strategy"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// Result is everything one finished run produced.
type Result struct {
	Config  RunConfig
	Summary types.PerformanceSummary
	Curve   types.EquityCurve
	Trades  []types.Trade
}

// Runner wires a data source, a strategy and a fresh ledger into one
// backtest run. A single Runner can execute many runs; each run gets its
// own ledger so runs never share state.
type Runner struct {
	source datasource.DataSource
	logger *logger.Logger
}

// NewRunner creates a runner reading bars from source.
func NewRunner(source datasource.DataSource, l *logger.Logger) *Runner {
	return &Runner{
		source: source,
		logger: l,
	}
}

// Run executes one backtest. onBar, when non-nil, is invoked after every
// processed bar with the number of bars done and the total. Any open
// position is liquidated at the last bar's close before the summary is
// computed.
func (r *Runner) Run(ctx context.Context, cfg RunConfig, onBar func(done, total int)) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strat, err := strategy.New(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	start := cfg.StartTime.TakeOr(time.Time{})
	end := cfg.EndTime.TakeOr(time.Time{})

	bars, err := r.source.GetBars(ctx, cfg.Symbol, start, end)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load bars for %s", cfg.Symbol)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptySeries, "no bars for %s in the requested window", cfg.Symbol)
	}

	if err := bars.Validate(); err != nil {
		return nil, err
	}

	signals := strat.GenerateSignals(bars)
	if len(signals) != len(bars) {
		return nil, errors.Newf(errors.ErrCodeSignalLengthMismatch,
			"strategy %s produced %d signals for %d bars", strat.Name(), len(signals), len(bars))
	}

	r.logger.Info("starting backtest",
		zap.String("symbol", cfg.Symbol),
		zap.String("strategy", strat.Name()),
		zap.Int("bars", len(bars)),
	)

	ledger := NewLedger(cfg.InitialCapital, cfg.CommissionRate, cfg.SlippageRate)

	for i, bar := range bars {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRunCancelled, "backtest cancelled", err)
		}

		ledger.ProcessBar(bar.Date, bar.Close, signals[i])

		if onBar != nil {
			onBar(i+1, len(bars))
		}
	}

	last := bars[len(bars)-1]
	ledger.ForceClose(last.Date, last.Close)

	summary := metrics.Calculate(ledger.Curve(), ledger.Trades(), cfg.InitialCapital, cfg.RiskFreeRate)
	summary.ID = uuid.NewString()
	summary.Timestamp = time.Now().UTC()
	summary.Symbol = cfg.Symbol
	summary.Strategy = strat.Name()

	r.logger.Info("backtest complete",
		zap.String("run_id", summary.ID),
		zap.Float64("final_equity", summary.FinalEquity),
		zap.Float64("total_return", summary.TotalReturn),
		zap.Int("trades", summary.NumTrades),
	)

	return &Result{
		Config:  cfg,
		Summary: summary,
		Curve:   ledger.Curve(),
		Trades:  ledger.Trades(),
	}, nil
}
