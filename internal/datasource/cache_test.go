package datasource

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stratbench/stratbench/internal/logger"
	"github.com/stratbench/stratbench/internal/types"
	"github.com/stretchr/testify/suite"
)

// countingSource tracks how often the upstream is actually consulted.
type countingSource struct {
	bars  types.BarSeries
	calls int
}

func (s *countingSource) GetBars(_ context.Context, _ string, _, _ time.Time) (types.BarSeries, error) {
	s.calls++

	return s.bars, nil
}

func (s *countingSource) Close() error {
	return nil
}

type CachedSourceTestSuite struct {
	suite.Suite
	upstream *countingSource
	source   *CachedSource
	start    time.Time
	end      time.Time
}

func TestCachedSourceSuite(t *testing.T) {
	suite.Run(t, new(CachedSourceTestSuite))
}

func (suite *CachedSourceTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	bars := make(types.BarSeries, 5)
	for i := range bars {
		price := 100.0 + float64(i)
		bars[i] = types.Bar{
			Date:   suite.start.AddDate(0, 0, i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}

	suite.upstream = &countingSource{bars: bars}

	source, err := NewCachedSource(suite.upstream, filepath.Join(suite.T().TempDir(), "cache.db"), logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.source = source
}

func (suite *CachedSourceTestSuite) TearDownTest() {
	suite.NoError(suite.source.Close())
}

func (suite *CachedSourceTestSuite) TestSecondReadHitsCache() {
	first, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)
	suite.Len(first, 5)
	suite.Equal(1, suite.upstream.calls)

	second, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)
	suite.Equal(1, suite.upstream.calls)

	suite.Require().Equal(len(first), len(second))

	for i := range first {
		suite.True(first[i].Date.Equal(second[i].Date))
		suite.InDelta(first[i].Close, second[i].Close, 1e-9)
	}
}

func (suite *CachedSourceTestSuite) TestNarrowerWindowHitsCache() {
	_, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)

	narrow, err := suite.source.GetBars(context.Background(), "AAPL",
		suite.start.AddDate(0, 0, 1), suite.end.AddDate(0, 0, -1))
	suite.Require().NoError(err)
	suite.Equal(1, suite.upstream.calls)
	suite.Len(narrow, 3)
}

func (suite *CachedSourceTestSuite) TestWiderWindowMisses() {
	_, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)

	_, err = suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end.AddDate(0, 0, 10))
	suite.Require().NoError(err)
	suite.Equal(2, suite.upstream.calls)
}

func (suite *CachedSourceTestSuite) TestSymbolsAreCachedSeparately() {
	_, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)

	_, err = suite.source.GetBars(context.Background(), "MSFT", suite.start, suite.end)
	suite.Require().NoError(err)
	suite.Equal(2, suite.upstream.calls)
}

func (suite *CachedSourceTestSuite) TestExpiredEntryRefetches() {
	_, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)

	// jump past the TTL
	suite.source.now = func() time.Time {
		return time.Now().Add(DefaultCacheTTL + time.Hour)
	}

	_, err = suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)
	suite.Equal(2, suite.upstream.calls)
}

func (suite *CachedSourceTestSuite) TestShortTTLBypassesCache() {
	suite.source.SetTTL(time.Nanosecond)

	_, err := suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)

	_, err = suite.source.GetBars(context.Background(), "AAPL", suite.start, suite.end)
	suite.Require().NoError(err)
	suite.Equal(2, suite.upstream.calls)
}
