package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// studentTTwoSided converts a t-statistic into a two-tailed p-value using
// the Student's t-distribution with df degrees of freedom.
func studentTTwoSided(t, df float64) float64 {
	if math.IsNaN(t) || df <= 0 {
		return math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}

// normalTwoSided converts a z-score into a two-tailed p-value under the
// standard normal distribution.
func normalTwoSided(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	p := 2 * distuv.UnitNormal.CDF(-math.Abs(z))
	if p > 1 {
		p = 1
	}
	return p
}
