package strategy

import (
	"fmt"

	"github.com/stratbench/stratbench/internal/indicator"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// MACDParams configures the MACD strategy.
type MACDParams struct {
	FastPeriod   int `yaml:"fast_period" validate:"required,min=1,ltfield=SlowPeriod"`
	SlowPeriod   int `yaml:"slow_period" validate:"required,min=1"`
	SignalPeriod int `yaml:"signal_period" validate:"required,min=1"`
}

// DefaultMACDParams returns the standard 12/26/9 configuration.
func DefaultMACDParams() MACDParams {
	return MACDParams{
		FastPeriod:   12,
		SlowPeriod:   26,
		SignalPeriod: 9,
	}
}

// MACD buys on the bar where the MACD line crosses above its signal line
// and sells on the reverse crossing.
type MACD struct {
	params MACDParams
}

// NewMACD validates the parameters and builds the strategy.
func NewMACD(params MACDParams) (*MACD, error) {
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid macd parameters", err)
	}

	return &MACD{params: params}, nil
}

// Name returns the name of the strategy.
func (s *MACD) Name() string {
	return fmt.Sprintf("%s_%d_%d_%d", NameMACD, s.params.FastPeriod, s.params.SlowPeriod, s.params.SignalPeriod)
}

// GenerateSignals implements Strategy. Signals are the first difference of
// the boolean "line above signal" state.
func (s *MACD) GenerateSignals(bars types.BarSeries) types.SignalSeries {
	result := indicator.MACD(bars.Closes(), s.params.FastPeriod, s.params.SlowPeriod, s.params.SignalPeriod)

	signals := make(types.SignalSeries, len(bars))
	prev := 0

	for i := range result.Line {
		pos := 0
		if result.Line[i] > result.Signal[i] {
			pos = 1
		}

		if i > 0 {
			switch pos - prev {
			case 1:
				signals[i] = types.SignalBuy
			case -1:
				signals[i] = types.SignalSell
			}
		}

		prev = pos
	}

	return signals
}
