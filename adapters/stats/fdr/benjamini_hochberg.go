// Package fdr applies false-discovery-rate control to a family of
// p-values tested simultaneously.
package fdr

import (
	"math"
	"sort"
)

// Result of a Benjamini-Hochberg step-up pass over one family.
//
// QValues holds monotone adjusted p-values aligned with the input; a NaN
// input stays NaN. Reject holds the step-up rejection decision at the
// family alpha; q <= alpha reproduces it exactly. Tested is m, the number
// of finite p-values that formed the family.
type Result struct {
	QValues []float64
	Reject  []bool
	Tested  int
}

// BenjaminiHochberg runs the Benjamini-Hochberg step-up procedure at the
// given alpha. NaN entries are excluded from the family: they receive a
// NaN q-value, are never rejected, and do not count toward m.
func BenjaminiHochberg(pvals []float64, alpha float64) Result {
	n := len(pvals)
	res := Result{
		QValues: make([]float64, n),
		Reject:  make([]bool, n),
	}
	order := make([]int, 0, n)
	for i, p := range pvals {
		res.QValues[i] = math.NaN()
		if !math.IsNaN(p) {
			order = append(order, i)
		}
	}
	m := len(order)
	res.Tested = m
	if m == 0 {
		return res
	}
	sort.Slice(order, func(a, b int) bool { return pvals[order[a]] < pvals[order[b]] })

	// Adjusted p-values: q at rank i is min over ranks j >= i of p_j*m/j,
	// which keeps the sequence monotone in rank.
	running := 1.0
	for i := m - 1; i >= 0; i-- {
		v := pvals[order[i]] * float64(m) / float64(i+1)
		if v < running {
			running = v
		}
		res.QValues[order[i]] = running
	}

	// Step-up decision: find the largest rank i with p_i <= i/m*alpha and
	// reject every hypothesis at or below it.
	imax := -1
	for i := m - 1; i >= 0; i-- {
		if pvals[order[i]] <= float64(i+1)/float64(m)*alpha {
			imax = i
			break
		}
	}
	for i := 0; i <= imax; i++ {
		res.Reject[order[i]] = true
	}
	return res
}
