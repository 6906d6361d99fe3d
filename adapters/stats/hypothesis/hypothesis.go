// Package hypothesis implements the pointwise two-sample tests used by the
// grid significance engine: Student's t (independent and paired),
// Mann-Whitney U, and Wilcoxon signed-rank, all two-tailed.
//
// Every test takes cleaned sample vectors (see OmitNaN and OmitPairwiseNaN)
// and reports a NaN p-value when it cannot be computed for the given data,
// rather than returning an error. Callers decide what a NaN cell means.
package hypothesis

import "math"

// Result carries the outcome of a single pointwise test.
type Result struct {
	Statistic float64 // test statistic (t, U, or W+)
	PValue    float64 // two-tailed p-value, NaN when undefined
	NX        int     // valid samples used from the first vector
	NY        int     // valid samples used from the second vector
}

// undefined builds a Result with NaN statistic and p-value.
func undefined(nx, ny int) Result {
	return Result{Statistic: math.NaN(), PValue: math.NaN(), NX: nx, NY: ny}
}
