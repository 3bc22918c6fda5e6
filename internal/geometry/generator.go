// Package geometry derives one polygon per element from the numbering
// raster of a SHETRAN output file.
package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nclwater/shetranio/internal/crs"
	"github.com/nclwater/shetranio/internal/dem"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/paulmach/orb"
)

// ErrResolution is returned when the numbering raster is not an integer
// refinement of the padded model grid.
var ErrResolution = errors.New("geometry: numbering raster does not match the grid")

// State of a Generator.
type State int

const (
	Initialized State = iota
	Iterating
	Exhausted
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Geometry is the outline of one element.
type Geometry struct {
	Element int
	Polygon orb.Polygon
}

type bbox struct {
	minRow, maxRow, minCol, maxCol int
}

// Generator yields the geometry of every element in ascending element
// order. It is consumed once.
//
//	gen, err := geometry.New(r, grid)
//	for gen.Next() {
//		g := gen.Geometry()
//		...
//	}
//	err = gen.Err()
//
// Each polygon is the bounding rectangle of the raster cells carrying
// the element number, reprojected to the target CRS.
type Generator struct {
	labels []int
	boxes  map[int]bbox

	originX, originY float64
	cellSize         float64
	factor           int

	transform *crs.Transform

	state   State
	next    int
	current Geometry
	err     error
}

type config struct {
	source, target string
}

// Option configures a Generator.
type Option func(*config)

// WithSourceCRS sets the CRS of the model grid. Default EPSG:27700.
func WithSourceCRS(def string) Option {
	return func(c *config) {
		c.source = def
	}
}

// WithTargetCRS sets the CRS of the generated polygons. Default EPSG:4326.
func WithTargetCRS(def string) Option {
	return func(c *config) {
		c.target = def
	}
}

// New reads the numbering raster of r and prepares one bounding box per
// element.
func New(r *shetran.Reader, g *dem.Grid, opts ...Option) (*Generator, error) {
	c := config{source: crs.BritishNationalGrid, target: crs.WGS84}
	for _, opt := range opts {
		opt(&c)
	}

	numbering, err := r.NumberingMap()
	if err != nil {
		return nil, err
	}
	rows, cols := numbering.Shape[0], numbering.Shape[1]

	factor, err := resolutionFactor(rows, cols, g)
	if err != nil {
		return nil, err
	}

	t, err := crs.New(c.source, c.target)
	if err != nil {
		return nil, err
	}

	labels, boxes := boundingBoxes(numbering.Data, cols)
	x0, y0 := g.NorthWest()

	return &Generator{
		labels:    labels,
		boxes:     boxes,
		originX:   x0,
		originY:   y0,
		cellSize:  g.CellSize / float64(factor),
		factor:    factor,
		transform: t,
	}, nil
}

// resolutionFactor returns how many raster cells span one grid cell.
func resolutionFactor(rows, cols int, g *dem.Grid) (int, error) {
	pr, pc := g.PaddedRows(), g.PaddedColumns()
	if cols < pc || cols%pc != 0 || rows%pr != 0 || cols/pc != rows/pr {
		return 0, fmt.Errorf("%w: %dx%d raster for a %dx%d padded grid", ErrResolution, rows, cols, pr, pc)
	}
	return cols / pc, nil
}

// boundingBoxes scans the raster once and returns the sorted positive
// labels and the extent of each.
func boundingBoxes(data []float64, cols int) ([]int, map[int]bbox) {
	boxes := map[int]bbox{}
	for i, v := range data {
		if !(v > 0) {
			continue
		}
		label, row, col := int(v), i/cols, i%cols
		b, ok := boxes[label]
		if !ok {
			boxes[label] = bbox{row, row, col, col}
			continue
		}
		// rows are visited in order, so minRow is already set
		b.maxRow = row
		if col < b.minCol {
			b.minCol = col
		}
		if col > b.maxCol {
			b.maxCol = col
		}
		boxes[label] = b
	}

	labels := make([]int, 0, len(boxes))
	for label := range boxes {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels, boxes
}

// Len returns the number of geometries the generator yields in total.
func (g *Generator) Len() int {
	return len(g.labels)
}

// Factor returns the number of raster cells per grid cell along each axis.
func (g *Generator) Factor() int {
	return g.factor
}

// State returns the iteration state.
func (g *Generator) State() State {
	return g.state
}

// Next advances to the next element. It returns false when all elements
// have been produced or reprojection failed.
func (g *Generator) Next() bool {
	if g.state == Exhausted {
		return false
	}
	if g.next >= len(g.labels) {
		g.state = Exhausted
		g.current = Geometry{}
		return false
	}

	label := g.labels[g.next]
	polygon, err := g.polygon(g.boxes[label])
	if err != nil {
		g.err = fmt.Errorf("element %d: %w", label, err)
		g.state = Exhausted
		g.current = Geometry{}
		return false
	}

	g.state = Iterating
	g.current = Geometry{Element: label, Polygon: polygon}
	g.next++
	return true
}

// Geometry returns the geometry produced by the last call to Next.
func (g *Generator) Geometry() Geometry {
	return g.current
}

// Err returns the error that stopped the iteration, if any.
func (g *Generator) Err() error {
	return g.err
}

func (g *Generator) polygon(b bbox) (orb.Polygon, error) {
	x1 := g.originX + float64(b.minCol)*g.cellSize
	x2 := g.originX + float64(b.maxCol+1)*g.cellSize
	y2 := g.originY - float64(b.minRow)*g.cellSize
	y1 := g.originY - float64(b.maxRow+1)*g.cellSize

	p1, err := g.transform.Point(orb.Point{x1, y1})
	if err != nil {
		return nil, err
	}
	p2, err := g.transform.Point(orb.Point{x2, y2})
	if err != nil {
		return nil, err
	}

	ring := orb.Ring{
		{p1[0], p1[1]},
		{p1[0], p2[1]},
		{p2[0], p2[1]},
		{p2[0], p1[1]},
		{p1[0], p1[1]},
	}
	return orb.Polygon{ring}, nil
}

// All drains the generator.
func All(g *Generator) ([]Geometry, error) {
	geometries := make([]Geometry, 0, g.Len())
	for g.Next() {
		geometries = append(geometries, g.Geometry())
	}
	return geometries, g.Err()
}
