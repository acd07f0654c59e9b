package writer

import (
	"context"

	"github.com/stratbench/stratbench/internal/datasource"
	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/types"
)

// DuckDBWriter implements BarWriter on the same DuckDB database the
// backtest engine reads from, so a download is immediately runnable.
type DuckDBWriter struct {
	source *datasource.DuckDBSource
}

// NewDuckDBWriter opens (or creates) the DuckDB database at path.
func NewDuckDBWriter(path string, l *logger.Logger) (*DuckDBWriter, error) {
	source, err := datasource.NewDuckDBSource(path, l)
	if err != nil {
		return nil, err
	}

	return &DuckDBWriter{source: source}, nil
}

// WriteBars implements BarWriter.
func (w *DuckDBWriter) WriteBars(ctx context.Context, symbol string, bars types.BarSeries) error {
	return w.source.InsertBars(ctx, symbol, bars)
}

// Close implements BarWriter.
func (w *DuckDBWriter) Close() error {
	return w.source.Close()
}
