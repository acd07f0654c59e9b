// Package writer persists downloaded bars. Implementations receive whole
// series per symbol so they can batch their writes.
package writer

import (
	"context"

	"github.com/stratbench/stratbench/internal/types"
)

// BarWriter defines the interface for persisting downloaded daily bars.
type BarWriter interface {
	// WriteBars persists a bar series for one symbol. Calling it again with
	// overlapping dates replaces the existing rows.
	WriteBars(ctx context.Context, symbol string, bars types.BarSeries) error
	// Close releases any resources held by the writer.
	Close() error
}
