package datasource

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stratbench/stratbench/pkg/errors"
)

// DefaultCacheTTL is how long cached bars stay fresh before the upstream
// source is consulted again.
const DefaultCacheTTL = 7 * 24 * time.Hour

// CachedSource wraps an upstream DataSource with an on-disk SQLite cache.
// A cache hit requires the stored window for the symbol to cover the
// requested one and to be younger than the TTL. Cache failures fall back to
// the upstream source rather than failing the run.
type CachedSource struct {
	upstream DataSource
	db       *sql.DB
	logger   *logger.Logger
	sq       squirrel.StatementBuilderType
	ttl      time.Duration
	now      func() time.Time
}

// NewCachedSource opens (or creates) the cache database at path in front of
// upstream.
func NewCachedSource(upstream DataSource, path string, l *logger.Logger) (*CachedSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheFailed, "failed to open cache database", err)
	}

	source := &CachedSource{
		upstream: upstream,
		db:       db,
		logger:   l,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		ttl:      DefaultCacheTTL,
		now:      time.Now,
	}

	if err := source.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return source, nil
}

// SetTTL overrides the freshness window for cached bars.
func (c *CachedSource) SetTTL(ttl time.Duration) {
	c.ttl = ttl
}

func (c *CachedSource) initialize() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS cached_bars (
			symbol TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			open REAL NOT NULL,
			high REAL NOT NULL,
			low REAL NOT NULL,
			close REAL NOT NULL,
			volume REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		);
		CREATE TABLE IF NOT EXISTS cache_meta (
			symbol TEXT PRIMARY KEY,
			window_start TIMESTAMP NOT NULL,
			window_end TIMESTAMP NOT NULL,
			fetched_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to create cache tables", err)
	}

	return nil
}

// GetBars implements DataSource.
func (c *CachedSource) GetBars(ctx context.Context, symbol string, start, end time.Time) (types.BarSeries, error) {
	if bars, ok := c.lookup(ctx, symbol, start, end); ok {
		c.logger.Debug("cache hit", zap.String("symbol", symbol), zap.Int("count", len(bars)))

		return bars, nil
	}

	bars, err := c.upstream.GetBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if err := c.store(ctx, symbol, start, end, bars); err != nil {
		// The upstream answer is still good; losing the cache is not fatal.
		c.logger.Warn("failed to store bars in cache", zap.String("symbol", symbol), zap.Error(err))
	}

	return bars, nil
}

// lookup serves the requested window from the cache when the stored window
// covers it and has not expired.
func (c *CachedSource) lookup(ctx context.Context, symbol string, start, end time.Time) (types.BarSeries, bool) {
	query, args, err := c.sq.
		Select("window_start", "window_end", "fetched_at").
		From("cache_meta").
		Where(squirrel.Eq{"symbol": symbol}).
		ToSql()
	if err != nil {
		return nil, false
	}

	var windowStart, windowEnd, fetchedAt time.Time
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&windowStart, &windowEnd, &fetchedAt); err != nil {
		return nil, false
	}

	if c.now().Sub(fetchedAt) > c.ttl {
		return nil, false
	}

	if !start.IsZero() && start.Before(windowStart) {
		return nil, false
	}

	if end.IsZero() || end.After(windowEnd) {
		return nil, false
	}

	builder := c.sq.
		Select("date", "open", "high", "low", "close", "volume").
		From("cached_bars").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("date ASC")

	if !start.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"date": start})
	}

	builder = builder.Where(squirrel.LtOrEq{"date": end})

	query, args, err = builder.ToSql()
	if err != nil {
		return nil, false
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var bars types.BarSeries

	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, false
		}

		bars = append(bars, bar)
	}

	if rows.Err() != nil || len(bars) == 0 {
		return nil, false
	}

	return bars, true
}

// store replaces the cached window for symbol with a fresh one.
func (c *CachedSource) store(ctx context.Context, symbol string, start, end time.Time, bars types.BarSeries) error {
	if len(bars) == 0 {
		return nil
	}

	if start.IsZero() {
		start = bars[0].Date
	}

	if end.IsZero() {
		end = bars[len(bars)-1].Date
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to begin cache write", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cached_bars WHERE symbol = ?", symbol); err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to clear stale cache rows", err)
	}

	builder := c.sq.
		Insert("cached_bars").
		Columns("symbol", "date", "open", "high", "low", "close", "volume")

	for _, bar := range bars {
		builder = builder.Values(symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to build cache insert", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to insert cache rows", err)
	}

	metaQuery, metaArgs, err := c.sq.
		Insert("cache_meta").
		Columns("symbol", "window_start", "window_end", "fetched_at").
		Values(symbol, start, end, c.now()).
		Suffix("ON CONFLICT (symbol) DO UPDATE SET window_start = excluded.window_start, window_end = excluded.window_end, fetched_at = excluded.fetched_at").
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to build cache meta upsert", err)
	}

	if _, err := tx.ExecContext(ctx, metaQuery, metaArgs...); err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to upsert cache meta", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeCacheFailed, "failed to commit cache write", err)
	}

	return nil
}

// Close closes both the cache database and the upstream source.
func (c *CachedSource) Close() error {
	if err := c.db.Close(); err != nil {
		c.upstream.Close()

		return err
	}

	return c.upstream.Close()
}
