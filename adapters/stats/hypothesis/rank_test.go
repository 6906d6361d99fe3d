package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidRanks(t *testing.T) {
	ranks, tieTerm := midRanks([]float64{10, 10, 30, 40, 50})
	assert.Equal(t, []float64{1.5, 1.5, 3, 4, 5}, ranks)
	assert.Equal(t, 6.0, tieTerm) // one tied pair: 2^3 - 2

	ranks, tieTerm = midRanks([]float64{10, 20, 30, 40, 50})
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, ranks)
	assert.Zero(t, tieTerm)
}

func TestMannWhitneyU(t *testing.T) {
	for _, tc := range []struct {
		name string
		x, y []float64
		p    float64
		tol  float64
	}{
		{
			name: "single observations",
			x:    []float64{0},
			y:    []float64{1},
			p:    1.0,
		},
		{
			name: "well separated groups",
			x:    []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			y:    []float64{20, 21, 22, 23, 24, 25, 26, 27, 28, 29},
			p:    0.00018267179110955002,
			tol:  1e-7,
		},
		{
			name: "overlapping groups with ties",
			x:    []float64{0, 1, 2, 3, 4},
			y:    []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			p:    0.13986357686781267,
			tol:  1e-7,
		},
		{
			name: "two tied blocks",
			x:    []float64{0, 0, 0, 0, 0},
			y:    []float64{1, 1, 1, 1, 1},
			p:    0.0039767517097886512,
			tol:  1e-7,
		},
		{
			name: "fully tied pooled sample",
			x:    []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			y:    []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			p:    1.0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := MannWhitneyU(tc.x, tc.y)
			if tc.tol > 0 {
				assert.InDelta(t, tc.p, res.PValue, tc.tol)
			} else {
				assert.Equal(t, tc.p, res.PValue)
			}
		})
	}
}

func TestMannWhitneyUSymmetry(t *testing.T) {
	x := []float64{3.1, 4.2, 2.8, 5.0, 3.9, 4.1}
	y := []float64{4.4, 6.1, 5.2, 4.9}
	ab := MannWhitneyU(x, y)
	ba := MannWhitneyU(y, x)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
}

func TestMannWhitneyUEmptySideUndefined(t *testing.T) {
	res := MannWhitneyU(nil, []float64{1, 2, 3})
	assert.True(t, math.IsNaN(res.PValue))
}

func TestWilcoxonSignedRankExact(t *testing.T) {
	// Signed ranks: +2 +3 +4 against -1 -5 -6, so W+ = 9 of 21; the exact
	// two-sided tail is 54/64.
	x := []float64{447, 832, 640, 286, 501, 123}
	y := []float64{241, 608, 130, 951, 604, 690}
	res := WilcoxonSignedRank(x, y)
	require.False(t, math.IsNaN(res.PValue))
	assert.InDelta(t, 0.84375, res.PValue, 1e-12)
	assert.InDelta(t, 9.0, res.Statistic, 1e-12)

	// All differences positive: the most extreme assignment, p = 2/2^6.
	x = []float64{10, 20, 30, 40, 50, 60}
	y = []float64{9, 18, 27, 36, 45, 54}
	res = WilcoxonSignedRank(x, y)
	assert.InDelta(t, 0.03125, res.PValue, 1e-12)
}

func TestWilcoxonSignedRankNormalApproximation(t *testing.T) {
	// Constant shift over 30 pairs: tied |d| forces the approximate path.
	x := make([]float64, 30)
	y := make([]float64, 30)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) + 5
	}
	res := WilcoxonSignedRank(x, y)
	require.False(t, math.IsNaN(res.PValue))
	assert.Less(t, res.PValue, 1e-6)
}

func TestWilcoxonSignedRankSymmetry(t *testing.T) {
	x := []float64{1.2, 3.4, 2.2, 5.6, 4.4, 2.9, 3.3}
	y := []float64{2.0, 2.9, 3.1, 4.8, 5.0, 2.1, 3.9}
	ab := WilcoxonSignedRank(x, y)
	ba := WilcoxonSignedRank(y, x)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
}

func TestWilcoxonSignedRankDegenerate(t *testing.T) {
	// Identical pairs leave no nonzero differences.
	x := []float64{1, 2, 3, 4, 5}
	res := WilcoxonSignedRank(x, x)
	assert.True(t, math.IsNaN(res.PValue))

	res = WilcoxonSignedRank([]float64{1, 2}, []float64{1})
	assert.True(t, math.IsNaN(res.PValue))
}
