package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestNewTradePnL() {
	entry := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	// 99.9 shares bought at 100, sold at 110, 20.989 total commission
	trade := NewTrade(entry, exit, 100, 110, 99.9, 20.989)

	suite.InDelta(978.011, trade.PnL, 1e-9)
	suite.InDelta(9.79, trade.ReturnPct, 0.005)
	suite.Equal(DirectionLong, trade.Direction)
	suite.Equal(20.989, trade.Commission)
}

func (suite *TradeTestSuite) TestNewTradeLoss() {
	entry := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	trade := NewTrade(entry, exit, 100, 95, 10, 2)
	suite.InDelta(-52, trade.PnL, 1e-9)
	suite.InDelta(-5.2, trade.ReturnPct, 1e-9)
}

func (suite *TradeTestSuite) TestNewTradeZeroCostBasis() {
	entry := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	// Zero shares: return percentage must stay at the zero sentinel
	trade := NewTrade(entry, exit, 100, 110, 0, 0)
	suite.Equal(0.0, trade.ReturnPct)
	suite.Equal(0.0, trade.PnL)
}

func (suite *TradeTestSuite) TestCSVRecordOrder() {
	entry := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	trade := NewTrade(entry, exit, 100, 110, 10, 1)
	record := trade.CSVRecord()

	suite.Len(record, len(TradeCSVHeader))
	suite.Equal("2024-01-02", record[0])
	suite.Equal("2024-01-05", record[1])
	suite.Equal("100", record[2])
	suite.Equal("110", record[3])
	suite.Equal("10", record[4])
	suite.Equal("long", record[5])
	suite.Equal("99", record[6])
}
