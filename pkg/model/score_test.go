package model_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"brewnote.dev/BrewNote/pkg/model"
)

type ScoreTestSuite struct {
	suite.Suite
}

func TestScoreTestSuite(t *testing.T) {
	suite.Run(t, new(ScoreTestSuite))
}

func (suite *ScoreTestSuite) TestCoffeeWaterRatio() {
	suite.InDelta(16.0, model.CoffeeWaterRatio(400, 25), 0.001)
	suite.InDelta(16.67, model.CoffeeWaterRatio(250, 15), 0.001)
	suite.Zero(model.CoffeeWaterRatio(400, 0))
}

func (suite *ScoreTestSuite) TestExtractionYield() {
	suite.InDelta(17.28, model.ExtractionYield(320, 1.35, 25), 0.001)
	suite.Zero(model.ExtractionYield(320, 1.35, 0))
}

func (suite *ScoreTestSuite) TestRoundQuarter() {
	suite.InDelta(86.25, model.RoundQuarter(86.3), 0.001)
	suite.InDelta(86.5, model.RoundQuarter(86.4), 0.001)
	suite.InDelta(86.0, model.RoundQuarter(86.1), 0.001)
}

func (suite *ScoreTestSuite) TestTraditionalFinalScore() {
	sca := model.TraditionalSCA{
		Fragrance: 8, Flavor: 8, Aftertaste: 8, Acidity: 8, Body: 8, Balance: 8, Overall: 8,
		Uniformity: 10, CleanCup: 10, Sweetness: 10,
	}
	suite.InDelta(86.0, sca.ComputeFinalScore(), 0.001)

	sca.TaintCups = 1
	suite.InDelta(84.0, sca.ComputeFinalScore(), 0.001)

	sca.FaultCups = 2
	suite.InDelta(76.0, sca.ComputeFinalScore(), 0.001)
}

func (suite *ScoreTestSuite) TestAffectiveScore_SpansRange() {
	low := model.CVAAffective{Fragrance: 1, Aroma: 1, Flavor: 1, Aftertaste: 1, Acidity: 1, Sweetness: 1, Mouthfeel: 1, Balance: 1, Overall: 1}
	suite.InDelta(58.0, low.ComputeScore(), 0.001)

	high := model.CVAAffective{Fragrance: 9, Aroma: 9, Flavor: 9, Aftertaste: 9, Acidity: 9, Sweetness: 9, Mouthfeel: 9, Balance: 9, Overall: 9}
	suite.InDelta(100.0, high.ComputeScore(), 0.001)

	mid := model.CVAAffective{Fragrance: 5, Aroma: 5, Flavor: 5, Aftertaste: 5, Acidity: 5, Sweetness: 5, Mouthfeel: 5, Balance: 5, Overall: 5}
	suite.InDelta(79.0, mid.ComputeScore(), 0.001)
}

func (suite *ScoreTestSuite) TestAffectiveScore_DefectPenaltiesAndClamp() {
	cva := model.CVAAffective{Fragrance: 5, Aroma: 5, Flavor: 5, Aftertaste: 5, Acidity: 5, Sweetness: 5, Mouthfeel: 5, Balance: 5, Overall: 5, NonUniformCups: 1, DefectiveCups: 1}
	suite.InDelta(73.0, cva.ComputeScore(), 0.001)

	floor := model.CVAAffective{Fragrance: 1, Aroma: 1, Flavor: 1, Aftertaste: 1, Acidity: 1, Sweetness: 1, Mouthfeel: 1, Balance: 1, Overall: 1, NonUniformCups: 5, DefectiveCups: 5}
	suite.InDelta(58.0, floor.ComputeScore(), 0.001)
}

func (suite *ScoreTestSuite) TestAffectiveScore_OnQuarterGrid() {
	cva := model.CVAAffective{Fragrance: 7, Aroma: 6, Flavor: 8, Aftertaste: 7, Acidity: 5, Sweetness: 6, Mouthfeel: 7, Balance: 7, Overall: 8}
	score := cva.ComputeScore()
	suite.InDelta(score, model.RoundQuarter(score), 0.0001)
	suite.GreaterOrEqual(score, 58.0)
	suite.LessOrEqual(score, 100.0)
}
