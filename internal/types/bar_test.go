package types

import (
	"testing"
	"time"

	"github.com/stratbench/stratbench/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarTestSuite struct {
	suite.Suite
}

func TestBarSuite(t *testing.T) {
	suite.Run(t, new(BarTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func (suite *BarTestSuite) TestValidateAscending() {
	series := BarSeries{
		{Date: day(1), Close: 100},
		{Date: day(2), Close: 101},
		{Date: day(5), Close: 99},
	}
	suite.NoError(series.Validate())
}

func (suite *BarTestSuite) TestValidateEmpty() {
	suite.NoError(BarSeries{}.Validate())
	suite.NoError(BarSeries(nil).Validate())
}

func (suite *BarTestSuite) TestValidateDuplicateDate() {
	series := BarSeries{
		{Date: day(1), Close: 100},
		{Date: day(1), Close: 101},
	}
	err := series.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateDate))
}

func (suite *BarTestSuite) TestValidateUnsorted() {
	series := BarSeries{
		{Date: day(3), Close: 100},
		{Date: day(2), Close: 101},
	}
	err := series.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsortedSeries))
}

func (suite *BarTestSuite) TestCloses() {
	series := BarSeries{
		{Date: day(1), Close: 100},
		{Date: day(2), Close: 105},
	}
	suite.Equal([]float64{100, 105}, series.Closes())
}

func (suite *BarTestSuite) TestEquityCurveHelpers() {
	curve := EquityCurve{
		{Date: day(1), Equity: 10000},
		{Date: day(2), Equity: 10100},
	}
	suite.Equal([]float64{10000, 10100}, curve.Equities())
	suite.Equal(10100.0, curve.Final())
	suite.Equal(0.0, EquityCurve{}.Final())
}
