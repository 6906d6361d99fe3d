package hypothesis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// midRanks assigns 1-based ranks to v, averaging ranks over tied groups.
// It also returns the tie term sum(t^3 - t) over tied groups, used by the
// variance corrections of both rank tests.
func midRanks(v []float64) ([]float64, float64) {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	ranks := make([]float64, len(v))
	tieTerm := 0.0
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && v[idx[j]] == v[idx[i]] {
			j++
		}
		r := float64(i+j+1) / 2 // average of ranks i+1 .. j
		for k := i; k < j; k++ {
			ranks[idx[k]] = r
		}
		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}
	return ranks, tieTerm
}

// MannWhitneyU runs a two-tailed Mann-Whitney U rank-sum test for
// independent samples, using mid-ranks with the tie-corrected normal
// approximation and a continuity correction.
//
// A fully tied pooled sample carries no ordering information and yields
// p=1. Either side empty is undefined.
func MannWhitneyU(x, y []float64) Result {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return undefined(n1, n2)
	}

	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks, tieTerm := midRanks(pooled)

	f1, f2 := float64(n1), float64(n2)
	n := f1 + f2
	r1 := floats.Sum(ranks[:n1])
	u1 := r1 - f1*(f1+1)/2

	mu := f1 * f2 / 2
	sigma2 := f1 * f2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if sigma2 <= 0 {
		return Result{Statistic: u1, PValue: 1, NX: n1, NY: n2}
	}

	// Continuity correction: shrink the deviation half a step toward zero.
	num := u1 - mu
	if num > 0 {
		num -= 0.5
	} else if num < 0 {
		num += 0.5
	}
	z := num / math.Sqrt(sigma2)
	return Result{Statistic: u1, PValue: normalTwoSided(z), NX: n1, NY: n2}
}

// maxExactWilcoxonN bounds the exact null-distribution computation; beyond
// this the normal approximation is accurate and far cheaper.
const maxExactWilcoxonN = 25

// WilcoxonSignedRank runs a two-tailed Wilcoxon signed-rank test for
// paired samples. The vectors must be pairwise-complete and equal length.
// Zero differences are dropped before ranking. For small untied samples
// the exact null distribution of W+ is used, otherwise the tie-corrected
// normal approximation.
//
// No surviving differences (all pairs identical) is undefined.
func WilcoxonSignedRank(x, y []float64) Result {
	if len(x) != len(y) {
		return undefined(len(x), len(y))
	}

	diffs := make([]float64, 0, len(x))
	for i := range x {
		if d := x[i] - y[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	n := len(diffs)
	if n == 0 {
		return undefined(len(x), len(y))
	}

	abs := make([]float64, n)
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}
	ranks, tieTerm := midRanks(abs)

	wPlus := 0.0
	for i, d := range diffs {
		if d > 0 {
			wPlus += ranks[i]
		}
	}

	if tieTerm == 0 && n <= maxExactWilcoxonN {
		return Result{Statistic: wPlus, PValue: wilcoxonExactTwoSided(int(math.Round(wPlus)), n), NX: len(x), NY: len(y)}
	}

	f := float64(n)
	mu := f * (f + 1) / 4
	sigma2 := f*(f+1)*(2*f+1)/24 - tieTerm/48
	if sigma2 <= 0 {
		return Result{Statistic: wPlus, PValue: 1, NX: len(x), NY: len(y)}
	}
	z := (wPlus - mu) / math.Sqrt(sigma2)
	return Result{Statistic: wPlus, PValue: normalTwoSided(z), NX: len(x), NY: len(y)}
}

// wilcoxonExactTwoSided computes the exact two-sided p-value for the
// signed-rank statistic W+ with n untied nonzero differences, by counting
// sign assignments over the ranks 1..n.
func wilcoxonExactTwoSided(wObs, n int) float64 {
	totalRankSum := n * (n + 1) / 2
	if wObs < 0 {
		wObs = 0
	}
	if wObs > totalRankSum {
		wObs = totalRankSum
	}

	// The null distribution of W+ is symmetric about totalRankSum/2, so the
	// two-sided p doubles the smaller tail.
	w := wObs
	if totalRankSum-wObs < w {
		w = totalRankSum - wObs
	}

	// dp[s] = number of sign assignments producing W+ = s.
	dp := make([]uint64, totalRankSum+1)
	dp[0] = 1
	for r := 1; r <= n; r++ {
		for s := totalRankSum; s >= r; s-- {
			dp[s] += dp[s-r]
		}
	}

	var cum uint64
	for s := 0; s <= w; s++ {
		cum += dp[s]
	}
	p := 2 * float64(cum) / float64(uint64(1)<<uint(n))
	if p > 1 {
		p = 1
	}
	return p
}
