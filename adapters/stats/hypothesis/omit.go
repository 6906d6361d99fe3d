package hypothesis

import "math"

// OmitNaN returns the non-NaN values of xs, preserving order. Used for the
// independent-samples tests, where each vector is cleaned on its own.
func OmitNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// OmitPairwiseNaN drops every pair where either value is NaN, preserving
// order and alignment. Used for the paired tests. Trailing elements of the
// longer slice are discarded.
func OmitPairwiseNaN(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	ox := make([]float64, 0, n)
	oy := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		ox = append(ox, x[i])
		oy = append(oy, y[i])
	}
	return ox, oy
}
