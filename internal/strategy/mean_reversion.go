package strategy

import (
	"fmt"

	"github.com/stratbench/stratbench/internal/indicator"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// MeanReversionParams configures the z-score mean reversion strategy.
type MeanReversionParams struct {
	Lookback       int     `yaml:"lookback" validate:"required,min=1"`
	EntryThreshold float64 `yaml:"entry_threshold" validate:"required,gt=0"`
}

// DefaultMeanReversionParams returns the standard 20-day two-sigma configuration.
func DefaultMeanReversionParams() MeanReversionParams {
	return MeanReversionParams{
		Lookback:       20,
		EntryThreshold: 2.0,
	}
}

// MeanReversion buys when price sits far below its rolling mean and sells
// when it sits far above, measured in rolling standard deviations.
type MeanReversion struct {
	params MeanReversionParams
}

// NewMeanReversion validates the parameters and builds the strategy.
func NewMeanReversion(params MeanReversionParams) (*MeanReversion, error) {
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid mean_reversion parameters", err)
	}

	return &MeanReversion{params: params}, nil
}

// Name returns the name of the strategy.
func (s *MeanReversion) Name() string {
	return fmt.Sprintf("%s_%d_%g", NameMeanReversion, s.params.Lookback, s.params.EntryThreshold)
}

// GenerateSignals implements Strategy.
func (s *MeanReversion) GenerateSignals(bars types.BarSeries) types.SignalSeries {
	zscore := indicator.ZScore(bars.Closes(), s.params.Lookback)
	signals := make(types.SignalSeries, len(bars))

	for i, z := range zscore {
		if !indicator.Defined(z) {
			continue
		}

		switch {
		case z < -s.params.EntryThreshold:
			signals[i] = types.SignalBuy
		case z > s.params.EntryThreshold:
			signals[i] = types.SignalSell
		}
	}

	return signals
}
