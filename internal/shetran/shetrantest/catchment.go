// Package shetrantest builds small in-memory SHETRAN output files for tests.
package shetrantest

import (
	"github.com/nclwater/shetranio/internal/dem"
	"github.com/nclwater/shetranio/internal/hdf"
)

// Grid geometry of the test catchment: 2x2 squares of 100 m, padded to 4x4.
const (
	Columns  = 2
	Rows     = 2
	OriginX  = 400000
	OriginY  = 500000
	CellSize = 100
)

// Layer indices of a constant block.
const (
	Square = iota
	NorthBank
	EastBank
	SouthBank
	WestBank
	NorthLink
	EastLink
	SouthLink
	WestLink
)

// Grid returns the grid descriptor matching Catchment.
func Grid() *dem.Grid {
	g, err := dem.NewGrid(Columns, Rows, OriginX, OriginY, CellSize)
	if err != nil {
		panic(err)
	}
	return g
}

// Block is a [rows, cols, 9] constant block filled with -1.
type Block struct {
	rows, cols int
	Data       []float64
}

// NewBlock returns a block of the padded grid size.
func NewBlock() *Block {
	b := &Block{rows: Rows + 2, cols: Columns + 2}
	b.Data = filled(b.rows*b.cols*9, -1)
	return b
}

// Set stores v in layer k at row, col.
func (b *Block) Set(row, col, k int, v float64) *Block {
	b.Data[(row*b.cols+col)*9+k] = v
	return b
}

// Shape returns the block shape.
func (b *Block) Shape() []int {
	return []int{b.rows, b.cols, 9}
}

func filled(n int, v float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return data
}

// Catchment returns an output file with three land elements and three
// channel links:
//
//	land 10 at (1,1), 11 at (1,2), 12 at (2,1), (2,2) outside
//	link 1 north of (1,1), 2 east of (1,2), 3 south of (2,1)
//
// The numbering raster is twice as fine as the grid. Variables:
// net_rain, ph_depth, theta (2 layers), ovr_flow, srf_dep and an
// unlisted land variable "custom".
func Catchment() *hdf.Memory {
	m := hdf.NewMemory()

	number := NewBlock().
		Set(1, 1, Square, 10).
		Set(1, 2, Square, 11).
		Set(2, 1, Square, 12).
		Set(1, 1, NorthLink, 1).
		Set(1, 2, EastLink, 2).
		Set(2, 1, SouthLink, 3)
	must(m.Put("/CONSTANTS/number", number.Shape(), number.Data))

	elv := NewBlock().
		Set(1, 1, Square, 50).
		Set(1, 2, Square, 52).
		Set(2, 1, Square, 58).
		Set(1, 1, NorthLink, 55.5).
		Set(2, 1, SouthLink, 60)
	must(m.Put("/CONSTANTS/surf_elv", elv.Shape(), elv.Data))

	thk := filled(4*4*9*2, -1)
	thk[((1*4+1)*9+Square)*2] = 0.5
	thk[((1*4+1)*9+Square)*2+1] = 1.5
	must(m.Put("/CONSTANTS/vert_thk", []int{4, 4, 9, 2}, thk))

	must(m.Put("/CONSTANTS/grid_dxy", []int{4, 4}, filled(16, CellSize)))

	numbering := make([]float64, 8*8)
	label := func(row, col int, v float64) {
		for r := 2 * row; r < 2*row+2; r++ {
			for c := 2 * col; c < 2*col+2; c++ {
				numbering[r*8+c] = v
			}
		}
	}
	label(1, 1, 10)
	label(1, 2, 11)
	label(2, 1, 12)
	numbering[0] = -1
	must(m.Put("/CATCHMENT_SPREADSHEETS/SV4_numbering", []int{8, 8}, numbering))

	elevation := make([]float64, 8*8)
	for i := range elevation {
		elevation[i] = float64(i % 256)
	}
	must(m.Put("/CATCHMENT_MAPS/SV4_elevation", []int{8, 8}, elevation))

	variable(m, "  1 net_rain", []int{1, 3}, []float64{0.1, 0.2, 0.3}, []float64{1, 2, 3}, "mm")

	ph := filled(4*4*3, -1)
	copy(ph[(1*4+1)*3:], []float64{1, 2, 3})
	copy(ph[(1*4+2)*3:], []float64{4, 5, 6})
	copy(ph[(2*4+1)*3:], []float64{7, -1, 9})
	variable(m, "  2 ph_depth", []int{4, 4, 3}, ph, []float64{1, 2, 3}, "m")

	theta := filled(4*4*2*3, -1)
	copy(theta[((1*4+1)*2+0)*3:], []float64{0.1, 0.2, 0.3})
	copy(theta[((1*4+1)*2+1)*3:], []float64{0.4, 0.5, 0.6})
	copy(theta[((1*4+2)*2+0)*3:], []float64{0.7, 0.8, 0.9})
	variable(m, "  3 theta", []int{4, 4, 2, 3}, theta, []float64{1, 2, 3}, "m3/m3")

	variable(m, "  4 ovr_flow", []int{3, 4, 1}, []float64{
		1, -3, 2, 0,
		-1, -1, -1, -1,
		-1, -0.5, 0.25, -1,
	}, []float64{6}, "m3/s")

	variable(m, "  5 srf_dep", []int{3, 2}, []float64{
		0.1, 0.2,
		0.3, 0.4,
		-1, 0.5,
	}, []float64{0, 1}, "m")
	m.SetAttr("/VARIABLES/  5 srf_dep/time", "units", "minutes")

	custom := filled(4*4*1, -1)
	custom[1*4+1] = 42
	variable(m, " 12 custom", []int{4, 4, 1}, custom, []float64{0}, "")

	return m
}

func variable(m *hdf.Memory, group string, shape []int, values, times []float64, units string) {
	must(m.Put("/VARIABLES/"+group+"/value", shape, values))
	must(m.Put("/VARIABLES/"+group+"/time", []int{len(times)}, times))
	if units != "" {
		m.SetAttr("/VARIABLES/"+group+"/value", "units", units)
	}
	m.SetAttr("/VARIABLES/"+group+"/value", "long_name", group)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
