package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestRSIWarmup() {
	out := RSI([]float64{1, 2, 3, 2}, 2)

	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
	suite.True(Defined(out[2]))
	suite.True(Defined(out[3]))
}

func (suite *RSITestSuite) TestRSIZeroLossSentinel() {
	// Strictly rising prices: average loss is zero, RSI pegs at 100
	out := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)

	for i := 3; i < len(out); i++ {
		suite.InDelta(100, out[i], 1e-12)
	}
}

func (suite *RSITestSuite) TestRSIAllLosses() {
	out := RSI([]float64{6, 5, 4, 3, 2, 1}, 3)

	for i := 3; i < len(out); i++ {
		suite.InDelta(0, out[i], 1e-12)
	}
}

func (suite *RSITestSuite) TestRSIAdjustedSmoothing() {
	// period 2 over deltas +1, +1, -1:
	// bar 2: avgLoss 0 -> sentinel 100
	// bar 3: avgGain 0.75/1.75, avgLoss 1/1.75 -> RSI = 100 - 100/1.75
	out := RSI([]float64{1, 2, 3, 2}, 2)

	suite.InDelta(100, out[2], 1e-12)
	suite.InDelta(100-100.0/1.75, out[3], 1e-9)
}

func (suite *RSITestSuite) TestRSITooShort() {
	out := RSI([]float64{1}, 14)
	suite.Len(out, 1)
	suite.False(Defined(out[0]))
}
