package types

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a trade. Only long round trips exist today; the
// field is recorded so exported trade logs stay stable if shorts are added.
type Direction string

const DirectionLong Direction = "long"

// Trade is a completed round trip. Immutable once recorded.
type Trade struct {
	EntryDate  time.Time `csv:"entry_date"`
	ExitDate   time.Time `csv:"exit_date"`
	EntryPrice float64   `csv:"entry_price"`
	ExitPrice  float64   `csv:"exit_price"`
	Shares     float64   `csv:"shares"`
	Direction  Direction `csv:"direction"`
	// PnL is net of all commission paid on the round trip, so that
	// final equity equals initial capital plus the sum of trade PnLs
	// for a fully closed run.
	PnL float64 `csv:"pnl"`
	// ReturnPct is PnL over the entry cost basis, in percent.
	ReturnPct float64 `csv:"return_pct"`
	// Commission is the total commission paid on entry and exit.
	Commission float64 `csv:"commission"`
}

// NewTrade records a completed long round trip. commission is the total
// commission paid across entry and exit fills.
func NewTrade(entryDate, exitDate time.Time, entryPrice, exitPrice, shares, commission float64) Trade {
	entryDec := decimal.NewFromFloat(entryPrice)
	exitDec := decimal.NewFromFloat(exitPrice)
	sharesDec := decimal.NewFromFloat(shares)

	grossDec := exitDec.Sub(entryDec).Mul(sharesDec)
	pnl, _ := grossDec.Sub(decimal.NewFromFloat(commission)).Float64()

	returnPct := 0.0

	costBasis := entryPrice * shares
	if costBasis > 0 {
		returnPct = pnl / costBasis * 100
	}

	return Trade{
		EntryDate:  entryDate,
		ExitDate:   exitDate,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		Shares:     shares,
		Direction:  DirectionLong,
		PnL:        pnl,
		ReturnPct:  returnPct,
		Commission: commission,
	}
}

// TradeCSVHeader is the fixed column order of exported trade logs.
var TradeCSVHeader = []string{
	"entry_date", "exit_date", "entry_price", "exit_price",
	"shares", "direction", "pnl", "return_pct", "commission",
}

// CSVRecord renders the trade as one row in TradeCSVHeader order.
func (t Trade) CSVRecord() []string {
	return []string{
		t.EntryDate.Format("2006-01-02"),
		t.ExitDate.Format("2006-01-02"),
		formatFloat(t.EntryPrice),
		formatFloat(t.ExitPrice),
		formatFloat(t.Shares),
		string(t.Direction),
		formatFloat(t.PnL),
		formatFloat(t.ReturnPct),
		formatFloat(t.Commission),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
