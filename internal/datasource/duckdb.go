package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// DuckDBSource reads daily bars from a DuckDB database file. The same
// database is the target of the download command, so one file serves both
// ingestion and backtesting.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSource opens (or creates) the DuckDB database at path and
// ensures the bars table exists. Use ":memory:" for an ephemeral database.
func NewDuckDBSource(path string, l *logger.Logger) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb database", err)
	}

	source := &DuckDBSource{
		db:     db,
		logger: l,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	if err := source.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return source, nil
}

func (d *DuckDBSource) initialize() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS bars (
			symbol VARCHAR NOT NULL,
			date TIMESTAMP NOT NULL,
			open DOUBLE NOT NULL,
			high DOUBLE NOT NULL,
			low DOUBLE NOT NULL,
			close DOUBLE NOT NULL,
			volume DOUBLE NOT NULL,
			PRIMARY KEY (symbol, date)
		);
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to create bars table", err)
	}

	return nil
}

// GetBars implements DataSource.
func (d *DuckDBSource) GetBars(ctx context.Context, symbol string, start, end time.Time) (types.BarSeries, error) {
	builder := d.sq.
		Select("date", "open", "high", "low", "close", "volume").
		From("bars").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("date ASC")

	if !start.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"date": start})
	}

	if !end.IsZero() {
		builder = builder.Where(squirrel.LtOrEq{"date": end})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bars query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	var bars types.BarSeries

	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar row", err)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate bar rows", err)
	}

	d.logger.Debug("loaded bars from duckdb",
		zap.String("symbol", symbol),
		zap.Int("count", len(bars)),
	)

	return bars, nil
}

// InsertBars upserts a bar series for symbol. Existing rows on the same
// date are replaced, so repeated downloads of an overlapping window stay
// idempotent.
func (d *DuckDBSource) InsertBars(ctx context.Context, symbol string, bars types.BarSeries) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to begin bar insert", err)
	}
	defer tx.Rollback()

	builder := d.sq.
		Insert("bars").
		Columns("symbol", "date", "open", "high", "low", "close", "volume").
		Suffix("ON CONFLICT (symbol, date) DO UPDATE SET open = excluded.open, high = excluded.high, low = excluded.low, close = excluded.close, volume = excluded.volume")

	for _, bar := range bars {
		builder = builder.Values(symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bar insert", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert bars", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to commit bar insert", err)
	}

	return nil
}

// ImportCSV bulk-loads a CSV file of date,open,high,low,close,volume rows
// for one symbol through DuckDB's native reader.
func (d *DuckDBSource) ImportCSV(ctx context.Context, symbol, path string) error {
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO bars
		SELECT '%s' AS symbol, date, open, high, low, close, volume
		FROM read_csv_auto('%s');
	`, symbol, path)

	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to import csv %s", path)
	}

	return nil
}

// ImportParquet bulk-loads a parquet file of date,open,high,low,close,volume
// rows for one symbol through DuckDB's native reader.
func (d *DuckDBSource) ImportParquet(ctx context.Context, symbol, path string) error {
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO bars
		SELECT '%s' AS symbol, date, open, high, low, close, volume
		FROM read_parquet('%s');
	`, symbol, path)

	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to import parquet %s", path)
	}

	return nil
}

// Count returns the number of stored bars for symbol.
func (d *DuckDBSource) Count(ctx context.Context, symbol string) (int, error) {
	query, args, err := d.sq.
		Select("COUNT(*)").
		From("bars").
		Where(squirrel.Eq{"symbol": symbol}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBSource) Close() error {
	return d.db.Close()
}
