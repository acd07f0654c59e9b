package strategy

import (
	"fmt"

	"github.com/stratbench/stratbench/internal/indicator"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// RSIParams configures the RSI strategy. Thresholds live in (0, 100) with
// oversold strictly below overbought.
type RSIParams struct {
	Period     int     `yaml:"period" validate:"required,min=1"`
	Oversold   float64 `yaml:"oversold" validate:"required,gt=0,ltfield=Overbought"`
	Overbought float64 `yaml:"overbought" validate:"required,lt=100"`
}

// DefaultRSIParams returns the standard 14-day 30/70 configuration.
func DefaultRSIParams() RSIParams {
	return RSIParams{
		Period:     14,
		Oversold:   30,
		Overbought: 70,
	}
}

// RSI emits a buy on every bar the index sits below the oversold threshold
// and a sell on every bar it sits above the overbought threshold. The
// signals are level-triggered, not edge-triggered: repeated identical
// signals inside a zone are intentional and absorbed by the ledger's
// same-state rule.
type RSI struct {
	params RSIParams
}

// NewRSI validates the parameters and builds the strategy.
func NewRSI(params RSIParams) (*RSI, error) {
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid rsi parameters", err)
	}

	return &RSI{params: params}, nil
}

// Name returns the name of the strategy.
func (s *RSI) Name() string {
	return fmt.Sprintf("%s_%d_%g_%g", NameRSI, s.params.Period, s.params.Oversold, s.params.Overbought)
}

// GenerateSignals implements Strategy.
func (s *RSI) GenerateSignals(bars types.BarSeries) types.SignalSeries {
	rsi := indicator.RSI(bars.Closes(), s.params.Period)
	signals := make(types.SignalSeries, len(bars))

	for i, value := range rsi {
		if !indicator.Defined(value) {
			continue
		}

		switch {
		case value < s.params.Oversold:
			signals[i] = types.SignalBuy
		case value > s.params.Overbought:
			signals[i] = types.SignalSell
		}
	}

	return signals
}
