package model

import "math"

const (
	cvaMinScore = 58.0
	cvaMaxScore = 100.0

	cvaSections   = 9
	cvaSectionMin = 1
	cvaSectionMax = 9

	taintPenalty = 2.0
	faultPenalty = 4.0
)

// Round2 rounds to two decimal places, the precision used for all stored
// derived measurements.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// RoundQuarter rounds to the nearest 0.25, the grid both cupping protocols
// score on.
func RoundQuarter(value float64) float64 {
	return math.Round(value*4) / 4
}

// CoffeeWaterRatio returns water-to-coffee by mass, e.g. 25 g in 400 g of
// water gives 16.0.
func CoffeeWaterRatio(waterG, coffeeBeansG float64) float64 {
	if coffeeBeansG <= 0 {
		return 0
	}

	return Round2(waterG / coffeeBeansG)
}

// ExtractionYield returns the percentage of coffee mass dissolved into the
// cup: brewed weight times TDS over dose.
func ExtractionYield(brewedWeightG, tds, coffeeBeansG float64) float64 {
	if coffeeBeansG <= 0 {
		return 0
	}

	return Round2(brewedWeightG * tds / coffeeBeansG)
}

// ComputeFinalScore sums the ten sections and subtracts the defect
// penalties. Validation rejects inputs scoring below 36.
func (s TraditionalSCA) ComputeFinalScore() float64 {
	sum := s.Fragrance + s.Flavor + s.Aftertaste + s.Acidity + s.Body + s.Balance + s.Overall +
		s.Uniformity + s.CleanCup + s.Sweetness

	return RoundQuarter(sum - taintPenalty*float64(s.TaintCups) - faultPenalty*float64(s.FaultCups))
}

// ComputeScore maps the nine-section sum linearly onto the 58-100 affective
// range, subtracts the cup penalties and snaps to the 0.25 grid.
func (a CVAAffective) ComputeScore() float64 {
	sum := a.Fragrance + a.Aroma + a.Flavor + a.Aftertaste + a.Acidity + a.Sweetness +
		a.Mouthfeel + a.Balance + a.Overall

	span := float64(cvaSections * (cvaSectionMax - cvaSectionMin))
	score := cvaMinScore + float64(sum-cvaSections*cvaSectionMin)*(cvaMaxScore-cvaMinScore)/span
	score -= taintPenalty*float64(a.NonUniformCups) + faultPenalty*float64(a.DefectiveCups)

	return math.Min(cvaMaxScore, math.Max(cvaMinScore, RoundQuarter(score)))
}
