package strategy

import (
	"fmt"

	"github.com/stratbench/stratbench/internal/indicator"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// MACrossoverParams configures the moving average crossover strategy.
type MACrossoverParams struct {
	ShortWindow int `yaml:"short_window" validate:"required,min=1,ltfield=LongWindow"`
	LongWindow  int `yaml:"long_window" validate:"required,min=1"`
}

// DefaultMACrossoverParams returns the standard 50/200 day configuration.
func DefaultMACrossoverParams() MACrossoverParams {
	return MACrossoverParams{
		ShortWindow: 50,
		LongWindow:  200,
	}
}

// MACrossover buys on the bar where the short moving average crosses above
// the long one (golden cross) and sells on the reverse transition.
type MACrossover struct {
	params MACrossoverParams
}

// NewMACrossover validates the parameters and builds the strategy.
func NewMACrossover(params MACrossoverParams) (*MACrossover, error) {
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid ma_crossover parameters", err)
	}

	return &MACrossover{params: params}, nil
}

// Name returns the name of the strategy.
func (s *MACrossover) Name() string {
	return fmt.Sprintf("%s_%d_%d", NameMACrossover, s.params.ShortWindow, s.params.LongWindow)
}

// GenerateSignals implements Strategy. Signals are the first difference of
// the boolean "short above long" state, restricted to bars where both
// averages are defined.
func (s *MACrossover) GenerateSignals(bars types.BarSeries) types.SignalSeries {
	closes := bars.Closes()
	short := indicator.SMA(closes, s.params.ShortWindow)
	long := indicator.SMA(closes, s.params.LongWindow)

	signals := make(types.SignalSeries, len(bars))
	prev := 0

	for i := range closes {
		pos := 0
		if indicator.Defined(short[i]) && indicator.Defined(long[i]) && short[i] > long[i] {
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
