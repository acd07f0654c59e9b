package backtest

import (
	"time"

	"github.com/stratbench/stratbench/internal/types"
)

type positionState int

const (
	stateFlat positionState = iota
	stateLong
)

// Ledger is the single-position cash and share account of one run. It holds
// either cash (flat) or shares (long), never both, and marks total value to
// the close of every processed bar. Signals that do not change the state
// are ignored without error.
type Ledger struct {
	commissionRate float64
	slippageRate   float64

	state  positionState
	cash   float64
	shares float64

	entryDate       time.Time
	entryFill       float64
	entryCommission float64

	trades []types.Trade
	curve  types.EquityCurve
}

// NewLedger opens a flat ledger holding the initial capital in cash.
func NewLedger(initialCapital, commissionRate, slippageRate float64) *Ledger {
	return &Ledger{
		commissionRate: commissionRate,
		slippageRate:   slippageRate,
		cash:           initialCapital,
	}
}

// ProcessBar applies one bar's signal and appends the mark-to-market equity
// for that bar. Exactly one equity point is recorded per call, whether or
// not a fill happened.
func (l *Ledger) ProcessBar(date time.Time, price float64, signal types.Signal) {
	switch {
	case signal == types.SignalBuy && l.state == stateFlat:
		l.open(date, price)
	case signal == types.SignalSell && l.state == stateLong:
		l.close(date, price, l.slippageRate)
	}

	l.curve = append(l.curve, types.EquityPoint{
		Date:   date,
		Equity: l.cash + l.shares*price,
	})
}

// ForceClose liquidates an open position at the raw price, without
// slippage, and re-marks the final equity point to the resulting cash.
// Flat ledgers are left untouched.
func (l *Ledger) ForceClose(date time.Time, price float64) {
	if l.state != stateLong {
		return
	}

	l.close(date, price, 0)

	if n := len(l.curve); n > 0 {
		l.curve[n-1] = types.EquityPoint{Date: date, Equity: l.cash}
	}
}

// open converts all cash into shares. Slippage lifts the fill price and
// commission is charged on the cash committed. A Buy that cannot fund any
// shares leaves the ledger flat.
func (l *Ledger) open(date time.Time, price float64) {
	if l.cash <= 0 {
		return
	}

	fill := price * (1 + l.slippageRate)
	commission := l.cash * l.commissionRate

	if l.cash-commission <= 0 {
		return
	}

	l.entryDate = date
	l.entryFill = fill
	l.entryCommission = commission
	l.shares = (l.cash - commission) / fill
	l.cash = 0
	l.state = stateLong
}

// close converts all shares back into cash. Slippage depresses the fill
// price and commission is charged on the gross proceeds. The completed
// round trip is appended to the trade log with both fills' commissions.
func (l *Ledger) close(date time.Time, price, slippageRate float64) {
	fill := price * (1 - slippageRate)
	proceeds := l.shares * fill
	commission := proceeds * l.commissionRate

	trade := types.NewTrade(l.entryDate, date, l.entryFill, fill, l.shares, l.entryCommission+commission)
	l.trades = append(l.trades, trade)

	l.cash = proceeds - commission
	l.shares = 0
	l.state = stateFlat
}

// Trades returns the completed round trips in execution order.
func (l *Ledger) Trades() []types.Trade {
	return l.trades
}

// Curve returns the per-bar equity series recorded so far.
func (l *Ledger) Curve() types.EquityCurve {
	return l.curve
}
