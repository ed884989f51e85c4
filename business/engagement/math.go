package engagement

import "math"

// roundTo rounds half to even at the given number of decimals, matching
// the dataframe rounding the dashboard figures were first computed with.
func roundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}

// ScoreOutOf10 converts an engagement score in [0,1] to the 0-10 display scale.
// Out of range input is passed through.
func ScoreOutOf10(scoreEngagement float64) float64 {
	return roundTo(scoreEngagement*10, 1)
}
