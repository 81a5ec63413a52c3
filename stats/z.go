package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.UnitNormal
	return dist.Quantile((1 + confidenceInterval/100) / 2)
}

// Interval returns mean ± z*stderr for the given confidence level.
func Interval(s *Statistic, confidenceInterval float64) (float64, float64) {
	margin := ZVal(confidenceInterval) * s.StandardError()
	return s.Mean() - margin, s.Mean() + margin
}
