// Package engine evaluates two-sample hypothesis tests pointwise across a
// labeled grid, reducing along a named sample dimension, and adjusts the
// resulting p-value field for multiple comparisons with a
// Benjamini-Hochberg step-up correction applied jointly across every
// defined cell of the invocation.
package engine

import (
	"fmt"
	"runtime"

	"gridsig/adapters/stats/fdr"
	"gridsig/adapters/stats/hypothesis"
	"gridsig/domain/core"
	"gridsig/domain/grid"

	"golang.org/x/sync/errgroup"
)

// Options configure one grid test invocation.
type Options struct {
	// Paired selects the related-samples design: the sample dimensions of
	// the two grids must then align element-for-element.
	Paired bool

	// SampleDim names the dimension holding repeated observations.
	// Defaults to "time".
	SampleDim string

	// GlobalAlpha is the family significance budget for the FDR correction
	// across the whole output grid. Defaults to 0.05.
	GlobalAlpha float64

	// EqualVariance pools the variances in the independent t-test (classic
	// Student form) instead of using Welch's form. DefaultOptions enables
	// it; the zero value selects Welch.
	EqualVariance bool

	// Workers bounds the concurrent per-cell test evaluations. Defaults to
	// GOMAXPROCS. Results are identical regardless of the setting.
	Workers int
}

// DefaultOptions returns the conventional configuration: reduce along
// "time", correct at a global alpha of 0.05, pooled-variance t-test.
func DefaultOptions() Options {
	return Options{SampleDim: "time", GlobalAlpha: 0.05, EqualVariance: true}
}

func (o Options) normalized() Options {
	if o.SampleDim == "" {
		o.SampleDim = "time"
	}
	if o.GlobalAlpha <= 0 {
		o.GlobalAlpha = 0.05
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// ParametricTest applies a two-tailed Student's t-test to every index cell
// of the two grids and returns the grid of BH-adjusted p-values (q-values).
// Unpaired it runs the independent two-sample test (pooled or Welch per
// Options.EqualVariance); paired it tests the per-cell differences.
func ParametricTest(a, b *grid.Grid, opts Options) (*grid.Grid, error) {
	opts = opts.normalized()
	pointwise := func(x, y []float64) hypothesis.Result {
		if opts.Paired {
			px, py := hypothesis.OmitPairwiseNaN(x, y)
			return hypothesis.TTestPaired(px, py)
		}
		return hypothesis.TTestInd(hypothesis.OmitNaN(x), hypothesis.OmitNaN(y), opts.EqualVariance)
	}
	return run(a, b, opts, pointwise)
}

// RankTest applies a two-tailed rank test to every index cell of the two
// grids and returns the grid of BH-adjusted p-values (q-values). Unpaired
// it runs the Mann-Whitney U test; paired, the Wilcoxon signed-rank test.
func RankTest(a, b *grid.Grid, opts Options) (*grid.Grid, error) {
	opts = opts.normalized()
	pointwise := func(x, y []float64) hypothesis.Result {
		if opts.Paired {
			px, py := hypothesis.OmitPairwiseNaN(x, y)
			return hypothesis.WilcoxonSignedRank(px, py)
		}
		return hypothesis.MannWhitneyU(hypothesis.OmitNaN(x), hypothesis.OmitNaN(y))
	}
	return run(a, b, opts, pointwise)
}

// run drives the shared skeleton: validate, extract per-cell sample
// vectors in row-major order, test, correct the full family, reshape.
func run(a, b *grid.Grid, opts Options, pointwise func(x, y []float64) hypothesis.Result) (*grid.Grid, error) {
	if err := grid.CompatibleIndexDims(a, b, opts.SampleDim); err != nil {
		return nil, err
	}
	if opts.Paired && a.DimLen(opts.SampleDim) != b.DimLen(opts.SampleDim) {
		return nil, fmt.Errorf("%w: %d vs %d along %q", core.ErrPairedLengthMismatch,
			a.DimLen(opts.SampleDim), b.DimLen(opts.SampleDim), opts.SampleDim)
	}

	out, err := a.Drop(opts.SampleDim)
	if err != nil {
		return nil, err
	}

	cells := out.Size()
	pvals := make([]float64, cells)

	// Cells are independent; fan out in contiguous chunks. Each worker
	// writes only its own slots, so the result matches sequential order.
	var eg errgroup.Group
	chunk := (cells + opts.Workers - 1) / opts.Workers
	for start := 0; start < cells; start += chunk {
		end := start + chunk
		if end > cells {
			end = cells
		}
		start, end := start, end
		eg.Go(func() error {
			for i := start; i < end; i++ {
				cell := out.Unravel(i)
				x, err := a.VectorAlong(opts.SampleDim, cell)
				if err != nil {
					return err
				}
				y, err := b.VectorAlong(opts.SampleDim, cell)
				if err != nil {
					return err
				}
				pvals[i] = pointwise(x, y).PValue
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	corrected := fdr.BenjaminiHochberg(pvals, opts.GlobalAlpha)
	if err := out.SetValues(corrected.QValues); err != nil {
		return nil, err
	}
	return out, nil
}
