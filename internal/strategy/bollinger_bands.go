package strategy

import (
	"fmt"

	"github.com/stratbench/stratbench/internal/indicator"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// BollingerParams configures the Bollinger band strategy.
type BollingerParams struct {
	Period int     `yaml:"period" validate:"required,min=1"`
	NumStd float64 `yaml:"num_std" validate:"required,gt=0"`
}

// DefaultBollingerParams returns the standard 20-day two-sigma configuration.
func DefaultBollingerParams() BollingerParams {
	return BollingerParams{
		Period: 20,
		NumStd: 2.0,
	}
}

// Bollinger buys on every bar the close sits below the lower band and sells
// on every bar it sits above the upper band. Level-triggered like RSI; the
// ledger absorbs the repeats.
type Bollinger struct {
	params BollingerParams
}

// NewBollinger validates the parameters and builds the strategy.
func NewBollinger(params BollingerParams) (*Bollinger, error) {
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid bollinger_bands parameters", err)
	}

	return &Bollinger{params: params}, nil
}

// Name returns the name of the strategy.
func (s *Bollinger) Name() string {
	return fmt.Sprintf("%s_%d_%g", NameBollinger, s.params.Period, s.params.NumStd)
}

// GenerateSignals implements Strategy.
func (s *Bollinger) GenerateSignals(bars types.BarSeries) types.SignalSeries {
	closes := bars.Closes()
	result := indicator.Bollinger(closes, s.params.Period, s.params.NumStd)

	signals := make(types.SignalSeries, len(bars))

	for i := range closes {
		if !indicator.Defined(result.Lower[i]) || !indicator.Defined(result.Upper[i]) {
			continue
		}

		switch {
		case closes[i] < result.Lower[i]:
			signals[i] = types.SignalBuy
		case closes[i] > result.Upper[i]:
			signals[i] = types.SignalSell
		}
	}

	return signals
}
