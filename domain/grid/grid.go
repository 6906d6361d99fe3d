// Package grid provides a labeled n-dimensional array of float64 samples.
//
// A Grid carries named dimensions with string coordinate labels and stores
// its values in row-major order. It is the unit of data the significance
// engine operates on: one designated sample dimension holds repeated
// observations, every other dimension is an index dimension preserved in
// test output.
package grid

import (
	"fmt"
	"math"

	"gridsig/domain/core"
)

// Grid is a labeled n-dimensional float64 array. The zero value is not
// usable; construct with New.
type Grid struct {
	dims   []string
	coords [][]string
	shape  []int
	stride []int
	data   []float64
}

// New builds a NaN-filled grid from dimension names and their coordinate
// labels. dims and coords must be parallel, dimension names must be unique
// and non-empty, and every dimension needs at least one coordinate.
func New(dims []string, coords [][]string) (*Grid, error) {
	if len(dims) != len(coords) {
		return nil, fmt.Errorf("%w: %d names for %d coordinate sets", core.ErrInvalidDimension, len(dims), len(coords))
	}
	seen := make(map[string]struct{}, len(dims))
	shape := make([]int, len(dims))
	for i, name := range dims {
		if name == "" {
			return nil, fmt.Errorf("%w: empty name at position %d", core.ErrInvalidDimension, i)
		}
		if _, dup := seen[name]; dup {
			return nil, core.NewDimensionError(core.ErrInvalidDimension, name)
		}
		seen[name] = struct{}{}
		if len(coords[i]) == 0 {
			return nil, fmt.Errorf("%w: %q has no coordinates", core.ErrInvalidDimension, name)
		}
		shape[i] = len(coords[i])
	}

	g := &Grid{
		dims:   append([]string(nil), dims...),
		coords: make([][]string, len(coords)),
		shape:  shape,
		stride: strides(shape),
		data:   make([]float64, size(shape)),
	}
	for i, c := range coords {
		g.coords[i] = append([]string(nil), c...)
	}
	for i := range g.data {
		g.data[i] = math.NaN()
	}
	return g, nil
}

func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// Dims returns the dimension names in storage order.
func (g *Grid) Dims() []string {
	return append([]string(nil), g.dims...)
}

// Shape returns the per-dimension extents in storage order.
func (g *Grid) Shape() []int {
	return append([]int(nil), g.shape...)
}

// Size returns the total cell count.
func (g *Grid) Size() int {
	return len(g.data)
}

// HasDim reports whether a dimension with the given name exists.
func (g *Grid) HasDim(name string) bool {
	_, ok := g.axis(name)
	return ok
}

// DimLen returns the extent of the named dimension, or 0 if absent.
func (g *Grid) DimLen(name string) int {
	ax, ok := g.axis(name)
	if !ok {
		return 0
	}
	return g.shape[ax]
}

// Coords returns the coordinate labels of the named dimension, or nil if
// the dimension is absent.
func (g *Grid) Coords(name string) []string {
	ax, ok := g.axis(name)
	if !ok {
		return nil
	}
	return append([]string(nil), g.coords[ax]...)
}

func (g *Grid) axis(name string) (int, bool) {
	for i, d := range g.dims {
		if d == name {
			return i, true
		}
	}
	return 0, false
}

// At returns the value at the given multi-index.
func (g *Grid) At(idx ...int) float64 {
	off, err := g.offset(idx)
	if err != nil {
		panic(err)
	}
	return g.data[off]
}

// Set stores v at the given multi-index.
func (g *Grid) Set(v float64, idx ...int) {
	off, err := g.offset(idx)
	if err != nil {
		panic(err)
	}
	g.data[off] = v
}

func (g *Grid) offset(idx []int) (int, error) {
	if len(idx) != len(g.shape) {
		return 0, fmt.Errorf("%w: got %d indices for %d dimensions", core.ErrIndexOutOfRange, len(idx), len(g.shape))
	}
	off := 0
	for i, ix := range idx {
		if ix < 0 || ix >= g.shape[i] {
			return 0, fmt.Errorf("%w: index %d on dimension %q (extent %d)", core.ErrIndexOutOfRange, ix, g.dims[i], g.shape[i])
		}
		off += ix * g.stride[i]
	}
	return off, nil
}

// Values returns a row-major copy of the grid's data.
func (g *Grid) Values() []float64 {
	return append([]float64(nil), g.data...)
}

// SetValues replaces the grid's data with a row-major value slice.
func (g *Grid) SetValues(values []float64) error {
	if len(values) != len(g.data) {
		return fmt.Errorf("%w: got %d values for %d cells", core.ErrShapeMismatch, len(values), len(g.data))
	}
	copy(g.data, values)
	return nil
}

// Unravel converts a row-major flat offset into a multi-index.
func (g *Grid) Unravel(flat int) []int {
	idx := make([]int, len(g.shape))
	for i, st := range g.stride {
		idx[i] = flat / st
		flat %= st
	}
	return idx
}

// Drop returns a new NaN-filled grid with the named dimension removed.
// The remaining dimensions keep their order and coordinates. Dropping the
// only dimension yields a zero-dimensional, single-cell grid.
func (g *Grid) Drop(name string) (*Grid, error) {
	ax, ok := g.axis(name)
	if !ok {
		return nil, core.NewDimensionError(core.ErrUnknownDimension, name)
	}
	dims := make([]string, 0, len(g.dims)-1)
	coords := make([][]string, 0, len(g.dims)-1)
	for i := range g.dims {
		if i == ax {
			continue
		}
		dims = append(dims, g.dims[i])
		coords = append(coords, g.coords[i])
	}
	if len(dims) == 0 {
		// Zero-dimensional result: a single scalar cell.
		out := &Grid{
			dims:   nil,
			coords: nil,
			shape:  nil,
			stride: nil,
			data:   []float64{math.NaN()},
		}
		return out, nil
	}
	return New(dims, coords)
}

// VectorAlong extracts the 1-D vector running along the named dimension at
// the given multi-index over the remaining dimensions (in storage order).
// The returned slice is freshly allocated.
func (g *Grid) VectorAlong(name string, cell []int) ([]float64, error) {
	ax, ok := g.axis(name)
	if !ok {
		return nil, core.NewDimensionError(core.ErrUnknownDimension, name)
	}
	if len(cell) != len(g.shape)-1 {
		return nil, fmt.Errorf("%w: got %d cell indices for %d index dimensions", core.ErrIndexOutOfRange, len(cell), len(g.shape)-1)
	}
	base := 0
	ci := 0
	for i := range g.shape {
		if i == ax {
			continue
		}
		ix := cell[ci]
		ci++
		if ix < 0 || ix >= g.shape[i] {
			return nil, fmt.Errorf("%w: index %d on dimension %q (extent %d)", core.ErrIndexOutOfRange, ix, g.dims[i], g.shape[i])
		}
		base += ix * g.stride[i]
	}
	out := make([]float64, g.shape[ax])
	for k := range out {
		out[k] = g.data[base+k*g.stride[ax]]
	}
	return out, nil
}

// CompatibleIndexDims verifies two grids can be compared along sampleDim:
// the sample dimension must exist in both, and the index dimensions must
// match in name, order, and coordinate labels.
func CompatibleIndexDims(a, b *Grid, sampleDim string) error {
	if !a.HasDim(sampleDim) || !b.HasDim(sampleDim) {
		return core.NewDimensionError(core.ErrSampleDimMissing, sampleDim)
	}
	ai := a.indexDims(sampleDim)
	bi := b.indexDims(sampleDim)
	if len(ai) != len(bi) {
		return fmt.Errorf("%w: %d vs %d index dimensions", core.ErrDimensionMismatch, len(ai), len(bi))
	}
	for i := range ai {
		if ai[i] != bi[i] {
			return fmt.Errorf("%w: %q vs %q at position %d", core.ErrDimensionMismatch, ai[i], bi[i], i)
		}
		ac := a.Coords(ai[i])
		bc := b.Coords(bi[i])
		if len(ac) != len(bc) {
			return fmt.Errorf("%w: dimension %q has %d vs %d coordinates", core.ErrCoordinateMismatch, ai[i], len(ac), len(bc))
		}
		for j := range ac {
			if ac[j] != bc[j] {
				return fmt.Errorf("%w: dimension %q differs at position %d (%q vs %q)", core.ErrCoordinateMismatch, ai[i], j, ac[j], bc[j])
			}
		}
	}
	return nil
}

func (g *Grid) indexDims(sampleDim string) []string {
	out := make([]string, 0, len(g.dims))
	for _, d := range g.dims {
		if d != sampleDim {
			out = append(out, d)
		}
	}
	return out
}
