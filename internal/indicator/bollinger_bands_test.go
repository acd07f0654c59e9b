package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BollingerTestSuite struct {
	suite.Suite
}

func TestBollingerSuite(t *testing.T) {
	suite.Run(t, new(BollingerTestSuite))
}

func (suite *BollingerTestSuite) TestBollingerBands() {
	result := Bollinger([]float64{1, 2, 3}, 3, 2)

	suite.False(Defined(result.Middle[1]))
	suite.False(Defined(result.Upper[1]))

	// window [1,2,3]: mean 2, sample std 1
	suite.InDelta(2, result.Middle[2], 1e-12)
	suite.InDelta(4, result.Upper[2], 1e-12)
	suite.InDelta(0, result.Lower[2], 1e-12)
	suite.InDelta(0.75, result.PercentB[2], 1e-12)
}

func (suite *BollingerTestSuite) TestBollingerZeroWidth() {
	result := Bollinger([]float64{5, 5, 5, 5}, 3, 2)

	// Bands collapse onto the mean; percent-B has no value
	suite.InDelta(5, result.Upper[3], 1e-12)
	suite.InDelta(5, result.Lower[3], 1e-12)
	suite.False(Defined(result.PercentB[3]))
}

type ZScoreTestSuite struct {
	suite.Suite
}

func TestZScoreSuite(t *testing.T) {
	suite.Run(t, new(ZScoreTestSuite))
}

func (suite *ZScoreTestSuite) TestZScore() {
	out := ZScore([]float64{1, 2, 3}, 3)

	suite.False(Defined(out[1]))
	suite.InDelta(1, out[2], 1e-12)
}

func (suite *ZScoreTestSuite) TestZScoreZeroStd() {
	out := ZScore([]float64{4, 4, 4, 4}, 3)
	for _, v := range out {
		suite.False(Defined(v))
	}
}
