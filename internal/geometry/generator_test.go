package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/nclwater/shetranio/internal/dem"
	"github.com/nclwater/shetranio/internal/hdf"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/shetran/shetrantest"
	"github.com/paulmach/orb"
)

func open(t *testing.T, m *hdf.Memory) *shetran.Reader {
	t.Helper()
	r, err := shetran.New(m)
	if err != nil {
		t.Fatalf("shetran.New failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestGenerator(t *testing.T) {
	r := open(t, shetrantest.Catchment())
	gen, err := New(r, shetrantest.Grid(), WithTargetCRS("EPSG:27700"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if gen.State() != Initialized {
		t.Errorf("expected Initialized, got %v", gen.State())
	}
	if gen.Len() != 3 || gen.Factor() != 2 {
		t.Fatalf("Len() = %d, Factor() = %d", gen.Len(), gen.Factor())
	}

	want := map[int]orb.Ring{
		10: {{400000, 500100}, {400000, 500200}, {400100, 500200}, {400100, 500100}, {400000, 500100}},
		11: {{400100, 500100}, {400100, 500200}, {400200, 500200}, {400200, 500100}, {400100, 500100}},
		12: {{400000, 500000}, {400000, 500100}, {400100, 500100}, {400100, 500000}, {400000, 500000}},
	}

	var elements []int
	for gen.Next() {
		if gen.State() != Iterating {
			t.Errorf("expected Iterating, got %v", gen.State())
		}
		g := gen.Geometry()
		elements = append(elements, g.Element)
		if len(g.Polygon) != 1 || !g.Polygon[0].Equal(want[g.Element]) {
			t.Errorf("element %d: got %v, want %v", g.Element, g.Polygon, want[g.Element])
		}
		if !g.Polygon[0].Closed() {
			t.Errorf("element %d: ring is not closed", g.Element)
		}
	}
	if err := gen.Err(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}

	if len(elements) != gen.Len() || elements[0] != 10 || elements[1] != 11 || elements[2] != 12 {
		t.Errorf("unexpected elements %v", elements)
	}
	if gen.State() != Exhausted {
		t.Errorf("expected Exhausted, got %v", gen.State())
	}
	if gen.Next() {
		t.Errorf("an exhausted generator must not restart")
	}
}

func TestGeneratorSingleCell(t *testing.T) {
	m := shetrantest.Catchment()
	numbering := make([]float64, 4*4)
	numbering[2*4+3] = 7
	m.Put(shetran.NumberingPath, []int{4, 4}, numbering)

	gen, err := New(open(t, m), shetrantest.Grid(), WithTargetCRS("EPSG:27700"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	geometries, err := All(gen)
	if err != nil || len(geometries) != 1 {
		t.Fatalf("All() = %v, %v", geometries, err)
	}

	b := geometries[0].Polygon.Bound()
	if b.Max[0]-b.Min[0] != shetrantest.CellSize || b.Max[1]-b.Min[1] != shetrantest.CellSize {
		t.Errorf("expected a one cell rectangle, got %v", b)
	}
}

func TestGeneratorWGS84(t *testing.T) {
	gen, err := New(open(t, shetrantest.Catchment()), shetrantest.Grid())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	geometries, err := All(gen)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(geometries) != 3 {
		t.Fatalf("expected 3 geometries, got %d", len(geometries))
	}
	for _, g := range geometries {
		c := g.Polygon.Bound().Center()
		if math.Abs(c.Lon()+2) > 0.1 || math.Abs(c.Lat()-54.4) > 0.2 {
			t.Errorf("element %d centred at %v", g.Element, c)
		}
	}
}

func TestResolutionMismatch(t *testing.T) {
	m := shetrantest.Catchment()
	m.Put(shetran.NumberingPath, []int{8, 12}, make([]float64, 96))
	if _, err := New(open(t, m), shetrantest.Grid()); !errors.Is(err, ErrResolution) {
		t.Errorf("expected ErrResolution, got %v", err)
	}

	g, _ := dem.NewGrid(5, 2, 0, 0, 100)
	if _, err := New(open(t, shetrantest.Catchment()), g); !errors.Is(err, ErrResolution) {
		t.Errorf("expected ErrResolution for a wider grid, got %v", err)
	}
}

func TestBoundingBoxes(t *testing.T) {
	data := []float64{
		0, 3, 3, -1,
		2, 3, 0, 0,
		2, 0, 0, 3,
	}
	labels, boxes := boundingBoxes(data, 4)
	if len(labels) != 2 || labels[0] != 2 || labels[1] != 3 {
		t.Fatalf("labels = %v", labels)
	}
	if b := boxes[3]; b != (bbox{0, 2, 1, 3}) {
		t.Errorf("box of 3 = %+v", b)
	}
	if b := boxes[2]; b != (bbox{1, 2, 0, 0}) {
		t.Errorf("box of 2 = %+v", b)
	}
}
