// Package dem describes the rectangular grid a SHETRAN model runs on.
package dem

import (
	"fmt"
	"math"
)

// Grid is the georeferenced layout of the model grid as given by the
// header of its DEM file. The SHETRAN output pads the grid with one cell
// on every side, so the centre arrays hold Columns+2 and Rows+2 values.
type Grid struct {
	Columns  int
	Rows     int
	OriginX  float64
	OriginY  float64
	CellSize float64

	xs []float64
	ys []float64
}

// MaxDimension bounds ncols and nrows.
const MaxDimension = 1 << 20

// NewGrid validates the header values and derives the padded cell centres.
func NewGrid(columns, rows int, originX, originY, cellSize float64) (*Grid, error) {
	switch {
	case columns <= 0 || columns > MaxDimension:
		return nil, &FormatError{Line: 1, Msg: fmt.Sprintf("ncols must be between 1 and %d", MaxDimension)}
	case rows <= 0 || rows > MaxDimension:
		return nil, &FormatError{Line: 2, Msg: fmt.Sprintf("nrows must be between 1 and %d", MaxDimension)}
	case math.IsNaN(originX) || math.IsInf(originX, 0):
		return nil, &FormatError{Line: 3, Msg: "xllcorner must be finite"}
	case math.IsNaN(originY) || math.IsInf(originY, 0):
		return nil, &FormatError{Line: 4, Msg: "yllcorner must be finite"}
	case !(cellSize > 0) || math.IsInf(cellSize, 0):
		return nil, &FormatError{Line: 5, Msg: "cellsize must be a finite number greater than 0"}
	}

	g := &Grid{Columns: columns, Rows: rows, OriginX: originX, OriginY: originY, CellSize: cellSize}

	g.xs = make([]float64, columns+2)
	for i := range g.xs {
		g.xs[i] = centre(originX, cellSize, i)
	}

	// row 0 is the northernmost
	g.ys = make([]float64, rows+2)
	for i := range g.ys {
		g.ys[len(g.ys)-1-i] = centre(originY, cellSize, i)
	}

	return g, nil
}

func centre(origin, cellSize float64, i int) float64 {
	return origin - cellSize + cellSize/2 + float64(i)*cellSize
}

// Coordinates returns copies of the padded x centres (west to east) and
// y centres (north to south).
func (g *Grid) Coordinates() ([]float64, []float64) {
	return append([]float64(nil), g.xs...), append([]float64(nil), g.ys...)
}

// PaddedColumns is the number of columns of the constant arrays.
func (g *Grid) PaddedColumns() int {
	return len(g.xs)
}

// PaddedRows is the number of rows of the constant arrays.
func (g *Grid) PaddedRows() int {
	return len(g.ys)
}

// CoordinatesAt returns the centre of the padded cell at row, col.
func (g *Grid) CoordinatesAt(row, col int) (float64, float64) {
	return g.xs[col], g.ys[row]
}

// IndexOf returns the padded column and row whose centres are nearest
// to x and y. Each axis is matched on its own and ties go to the lower index.
func (g *Grid) IndexOf(x, y float64) (int, int) {
	return nearest(g.xs, x), nearest(g.ys, y)
}

// NorthWest returns the outer corner of the padded grid.
func (g *Grid) NorthWest() (float64, float64) {
	return g.OriginX - g.CellSize, g.OriginY + float64(g.Rows+1)*g.CellSize
}

func nearest(centres []float64, v float64) int {
	best, dist := 0, math.Inf(1)
	for i, c := range centres {
		if d := math.Abs(c - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}
