package hypothesis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// TTestInd runs a two-tailed independent two-sample t-test. With
// equalVariance it pools the variances (classic Student form); otherwise it
// uses Welch's form with Welch-Satterthwaite degrees of freedom.
//
// Degenerate inputs follow the usual library conventions: a zero standard
// error with equal means gives p=1, with unequal means p=0. Fewer than two
// samples on either side is undefined.
func TTestInd(x, y []float64, equalVariance bool) Result {
	n1, n2 := len(x), len(y)
	if n1 < 2 || n2 < 2 {
		return undefined(n1, n2)
	}

	m1, err := stats.Mean(x)
	if err != nil {
		return undefined(n1, n2)
	}
	m2, err := stats.Mean(y)
	if err != nil {
		return undefined(n1, n2)
	}
	v1, err := stats.SampleVariance(x)
	if err != nil {
		return undefined(n1, n2)
	}
	v2, err := stats.SampleVariance(y)
	if err != nil {
		return undefined(n1, n2)
	}

	f1, f2 := float64(n1), float64(n2)
	var se, df float64
	if equalVariance {
		pooled := ((f1-1)*v1 + (f2-1)*v2) / (f1 + f2 - 2)
		se = math.Sqrt(pooled * (1/f1 + 1/f2))
		df = f1 + f2 - 2
	} else {
		a, b := v1/f1, v2/f2
		se = math.Sqrt(a + b)
		df = (a + b) * (a + b) / (a*a/(f1-1) + b*b/(f2-1))
	}

	return tResult(m1-m2, se, df, n1, n2)
}

// TTestPaired runs a two-tailed related-samples t-test on the pairwise
// differences. The vectors must be pairwise-complete and equal length.
func TTestPaired(x, y []float64) Result {
	if len(x) != len(y) {
		return undefined(len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return undefined(n, n)
	}

	d := make([]float64, n)
	for i := range x {
		d[i] = x[i] - y[i]
	}
	md, err := stats.Mean(d)
	if err != nil {
		return undefined(n, n)
	}
	vd, err := stats.SampleVariance(d)
	if err != nil {
		return undefined(n, n)
	}

	f := float64(n)
	se := math.Sqrt(vd / f)
	return tResult(md, se, f-1, n, n)
}

func tResult(diff, se, df float64, nx, ny int) Result {
	if se == 0 {
		if diff == 0 {
			return Result{Statistic: 0, PValue: 1, NX: nx, NY: ny}
		}
		return Result{Statistic: math.Inf(sign(diff)), PValue: 0, NX: nx, NY: ny}
	}
	t := diff / se
	return Result{Statistic: t, PValue: studentTTwoSided(t, df), NX: nx, NY: ny}
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
