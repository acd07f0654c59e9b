package strategy

import "github.com/stratbench/stratbench/internal/types"

// BuyAndHold is the benchmark strategy: buy on the first bar, hold forever.
type BuyAndHold struct{}

// NewBuyAndHold builds the benchmark strategy. It has no parameters.
func NewBuyAndHold() *BuyAndHold {
	return &BuyAndHold{}
}

// Name returns the name of the strategy.
func (s *BuyAndHold) Name() string {
	return NameBuyAndHold
}

// GenerateSignals implements Strategy.
func (s *BuyAndHold) GenerateSignals(bars types.BarSeries) types.SignalSeries {
	signals := make(types.SignalSeries, len(bars))
	if len(signals) > 0 {
		signals[0] = types.SignalBuy
	}

	return signals
}
