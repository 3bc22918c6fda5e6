package shetran

import (
	"fmt"
	"sort"

	"github.com/nclwater/shetranio/internal/hdf"
)

// layers per constant block: square, four banks, four links
const constantLayers = 9

// Layer is one of the nine slices of a constant block. It reads through
// to the block's array and does not copy it.
type Layer struct {
	a     *hdf.Array
	k     int
	inner int
}

// Rows returns the number of padded grid rows.
func (l Layer) Rows() int {
	return l.a.Shape[0]
}

// Columns returns the number of padded grid columns.
func (l Layer) Columns() int {
	return l.a.Shape[1]
}

func (l Layer) offset(row, col int) int {
	return ((row*l.Columns()+col)*constantLayers + l.k) * l.inner
}

// InBounds reports whether row, col lies inside the layer.
func (l Layer) InBounds(row, col int) bool {
	return row >= 0 && row < l.Rows() && col >= 0 && col < l.Columns()
}

// At returns the value at row, col. For blocks with a trailing axis
// (vert_thk) it is the first entry of that axis.
func (l Layer) At(row, col int) float64 {
	return l.a.Data[l.offset(row, col)]
}

// Vector returns the values of the trailing axis at row, col.
func (l Layer) Vector(row, col int) []float64 {
	off := l.offset(row, col)
	return append([]float64(nil), l.a.Data[off:off+l.inner]...)
}

// Find returns the first cell, in row-major order, holding v.
func (l Layer) Find(v float64) (int, int, bool) {
	for row := 0; row < l.Rows(); row++ {
		for col := 0; col < l.Columns(); col++ {
			if l.At(row, col) == v {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// Contains reports whether v appears anywhere in the layer.
func (l Layer) Contains(v float64) bool {
	_, _, ok := l.Find(v)
	return ok
}

// Distinct returns the sorted distinct values that are not missing.
func (l Layer) Distinct() []float64 {
	seen := map[float64]struct{}{}
	for row := 0; row < l.Rows(); row++ {
		for col := 0; col < l.Columns(); col++ {
			if v := l.At(row, col); !IsMissing(v) {
				seen[v] = struct{}{}
			}
		}
	}
	values := make([]float64, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Float64s(values)
	return values
}

// Constant is a static block of the output file, e.g. the element
// numbers or surface elevations, split into its nine layers.
type Constant struct {
	Square    Layer
	NorthBank Layer
	EastBank  Layer
	SouthBank Layer
	WestBank  Layer
	NorthLink Layer
	EastLink  Layer
	SouthLink Layer
	WestLink  Layer

	a *hdf.Array
}

// NewConstant splits a [rows, cols, 9, ...] array into its layers.
func NewConstant(a *hdf.Array) (*Constant, error) {
	if a == nil || a.Rank() < 3 || a.Shape[2] != constantLayers {
		var shape []int
		if a != nil {
			shape = a.Shape
		}
		return nil, fmt.Errorf("%w: constant block has shape %v, want [rows, cols, 9]", ErrFormat, shape)
	}
	inner := a.Stride(2)
	layer := func(k int) Layer { return Layer{a: a, k: k, inner: inner} }

	return &Constant{
		Square:    layer(0),
		NorthBank: layer(1),
		EastBank:  layer(2),
		SouthBank: layer(3),
		WestBank:  layer(4),
		NorthLink: layer(5),
		EastLink:  layer(6),
		SouthLink: layer(7),
		WestLink:  layer(8),
		a:         a,
	}, nil
}

// Array returns the underlying array.
func (c *Constant) Array() *hdf.Array {
	return c.a
}

// Link returns the channel link layer on side d.
func (c *Constant) Link(d Direction) (Layer, error) {
	if !d.valid() {
		return Layer{}, fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	return []Layer{c.NorthLink, c.EastLink, c.SouthLink, c.WestLink}[d], nil
}

// Bank returns the bank layer on side d.
func (c *Constant) Bank(d Direction) (Layer, error) {
	if !d.valid() {
		return Layer{}, fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	return []Layer{c.NorthBank, c.EastBank, c.SouthBank, c.WestBank}[d], nil
}
