package types

// Signal is a discrete trading instruction attached to a single bar.
type Signal int8

const (
	// SignalSell tells the ledger to close an open long position.
	SignalSell Signal = -1
	// SignalHold tells the ledger to do nothing.
	SignalHold Signal = 0
	// SignalBuy tells the ledger to open a long position.
	SignalBuy Signal = 1
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "buy"
	case SignalSell:
		return "sell"
	default:
		return "hold"
	}
}

// SignalSeries holds exactly one signal per bar, in the same order as the
// bar series it was generated from.
type SignalSeries []Signal
