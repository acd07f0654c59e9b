// Package datasource provides historical daily bars to the backtest engine.
// Implementations share one contract: bars come back sorted by date,
// strictly ascending, restricted to the requested window.
package datasource

import (
	"context"
	"time"

	"github.com/stratbench/stratbench/internal/types"
)

// DataSource is the read side of the engine. A zero start or end time leaves
// that side of the window unbounded.
type DataSource interface {
	// GetBars returns the daily bars for symbol inside [start, end].
	GetBars(ctx context.Context, symbol string, start, end time.Time) (types.BarSeries, error)
	// Close releases the underlying storage handle.
	Close() error
}
