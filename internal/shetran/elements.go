package shetran

import (
	"fmt"
	"sort"

	"github.com/nclwater/shetranio/internal/dem"
)

// ElementNumbers returns the sorted element numbers of the run: every
// positive label of the numbering raster together with every number held
// by the square and link layers.
func (r *Reader) ElementNumbers() []int {
	seen := map[int]struct{}{}
	for _, l := range r.numberLayers() {
		for _, v := range l.Distinct() {
			seen[int(v)] = struct{}{}
		}
	}
	if a, err := r.NumberingMap(); err == nil {
		for _, v := range a.Data {
			if v > 0 {
				seen[int(v)] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// LandElements returns the sorted element numbers of the grid squares.
func (r *Reader) LandElements() []int {
	distinct := r.Number.Square.Distinct()
	land := make([]int, len(distinct))
	for i, v := range distinct {
		land[i] = int(v)
	}
	return land
}

// RiverElements returns the element numbers below the first land element.
// SHETRAN numbers channel links before grid squares.
func (r *Reader) RiverElements() []int {
	land := r.LandElements()
	var river []int
	for _, n := range r.ElementNumbers() {
		if len(land) > 0 && n >= land[0] {
			break
		}
		river = append(river, n)
	}
	return river
}

func (r *Reader) numberLayers() []Layer {
	n := r.Number
	return []Layer{n.Square, n.NorthLink, n.EastLink, n.SouthLink, n.WestLink}
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (r *Reader) index(g *dem.Grid, x, y float64) (int, int, error) {
	col, row := g.IndexOf(x, y)
	if !r.Number.Square.InBounds(row, col) {
		return 0, 0, fmt.Errorf("%w: cell (%d, %d) outside the %dx%d constants",
			ErrIndexOutOfRange, row, col, r.Number.Square.Rows(), r.Number.Square.Columns())
	}
	return row, col, nil
}

// ElementNumber returns the number of the grid square nearest to x, y.
func (r *Reader) ElementNumber(g *dem.Grid, x, y float64) (int, error) {
	row, col, err := r.index(g, x, y)
	if err != nil {
		return 0, err
	}
	v := r.Number.Square.At(row, col)
	if IsMissing(v) {
		return 0, fmt.Errorf("%w: (%v, %v) is outside the catchment", ErrNoData, x, y)
	}
	return int(v), nil
}

// ChannelLinkNumber returns the number of the channel link on side d of
// the grid square nearest to x, y.
func (r *Reader) ChannelLinkNumber(g *dem.Grid, x, y float64, d Direction) (int, error) {
	link, err := r.Number.Link(d)
	if err != nil {
		return 0, err
	}
	row, col, err := r.index(g, x, y)
	if err != nil {
		return 0, err
	}
	v := link.At(row, col)
	if IsMissing(v) {
		return 0, fmt.Errorf("%w: no %s link at (%v, %v)", ErrNoData, d, x, y)
	}
	return int(v), nil
}

// ElementLocation returns the centre of the grid square numbered n.
func (r *Reader) ElementLocation(g *dem.Grid, n int) (float64, float64, error) {
	row, col, ok := r.Number.Square.Find(float64(n))
	if !ok || IsMissing(float64(n)) {
		return 0, 0, fmt.Errorf("%w: %d is not a land element", ErrElementNotFound, n)
	}
	return location(g, row, col)
}

// LinkLocation returns the grid square and side of channel link n.
func (r *Reader) LinkLocation(n int) (int, int, Direction, error) {
	if n > 0 {
		for d := North; d <= West; d++ {
			link, _ := r.Number.Link(d)
			if row, col, ok := link.Find(float64(n)); ok {
				return row, col, d, nil
			}
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: %d", ErrNotALink, n)
}

// ChannelLinkLocation returns the centre of the grid square carrying
// channel link n.
func (r *Reader) ChannelLinkLocation(g *dem.Grid, n int) (float64, float64, error) {
	row, col, _, err := r.LinkLocation(n)
	if err != nil {
		return 0, 0, err
	}
	return location(g, row, col)
}

// LinkElevation returns the surface elevation of channel link n.
func (r *Reader) LinkElevation(n int) (float64, error) {
	if r.SurfaceElevation == nil {
		return 0, fmt.Errorf("%w: no surf_elv constants", ErrFormat)
	}
	row, col, d, err := r.LinkLocation(n)
	if err != nil {
		return 0, err
	}
	elv, _ := r.SurfaceElevation.Link(d)
	if !elv.InBounds(row, col) {
		return 0, fmt.Errorf("%w: surf_elv has no cell (%d, %d)", ErrIndexOutOfRange, row, col)
	}
	v := elv.At(row, col)
	if IsMissing(v) {
		return 0, fmt.Errorf("%w: link %d has no elevation", ErrNoData, n)
	}
	return v, nil
}

func location(g *dem.Grid, row, col int) (float64, float64, error) {
	if row >= g.PaddedRows() || col >= g.PaddedColumns() {
		return 0, 0, fmt.Errorf("%w: cell (%d, %d) outside a %dx%d grid",
			ErrIndexOutOfRange, row, col, g.PaddedRows(), g.PaddedColumns())
	}
	x, y := g.CoordinatesAt(row, col)
	return x, y, nil
}
