package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PerformanceSummary holds the derived statistics of one finished run.
// Computed once from the final equity curve and trade log, never mutated.
type PerformanceSummary struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// Symbol of the instrument backtested.
	Symbol string `yaml:"symbol"`
	// Strategy is the human-readable name of the strategy.
	Strategy string `yaml:"strategy"`
	// TotalReturn is the overall equity change, in percent.
	TotalReturn float64 `yaml:"total_return"`
	// AnnualizedReturn is the compound annual growth rate, in percent.
	AnnualizedReturn float64 `yaml:"annualized_return"`
	// Volatility is the annualized standard deviation of daily returns, in percent.
	Volatility float64 `yaml:"volatility"`
	// SharpeRatio is the annualized excess return over return volatility.
	SharpeRatio float64 `yaml:"sharpe_ratio"`
	// MaxDrawdown is the worst peak-to-trough equity decline, in percent (non-positive).
	MaxDrawdown float64 `yaml:"max_drawdown"`
	// MaxDrawdownDuration is the longest run of bars spent below a prior equity peak.
	MaxDrawdownDuration int `yaml:"max_drawdown_duration"`
	// NumTrades is the count of completed round trips.
	NumTrades int `yaml:"num_trades"`
	// WinRate is the share of trades with positive PnL, in percent.
	WinRate float64 `yaml:"win_rate"`
	// ProfitFactor is gross profit over gross loss (+Inf when there are
	// winners and no losers, 0 when there are no trades).
	ProfitFactor float64 `yaml:"profit_factor"`
	// AvgTradeReturn is the mean per-trade return, in percent.
	AvgTradeReturn float64 `yaml:"avg_trade_return"`
	// FinalEquity is the last equity-curve value.
	FinalEquity float64 `yaml:"final_equity"`
	// InitialCapital is the starting cash of the run.
	InitialCapital float64 `yaml:"initial_capital"`
}

// WriteSummary writes the performance summary of a run as YAML.
func WriteSummary(path string, summary PerformanceSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal performance summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write performance summary to file: %w", err)
	}

	return nil
}
