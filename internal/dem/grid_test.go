package dem

import (
	"compress/gzip"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = `ncols         4
nrows         3
xllcorner     1000
yllcorner     2000
cellsize      100
NODATA_value  -9999
1 2 3 4
`

func TestParse(t *testing.T) {
	g, err := Parse(strings.NewReader(header))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.Columns != 4 || g.Rows != 3 || g.OriginX != 1000 || g.OriginY != 2000 || g.CellSize != 100 {
		t.Fatalf("unexpected grid %+v", g)
	}

	xs, ys := g.Coordinates()
	if len(xs) != 6 || len(ys) != 5 {
		t.Fatalf("expected padded lengths 6 and 5, got %d and %d", len(xs), len(ys))
	}
	if xs[0] != 950 || xs[5] != 1450 {
		t.Errorf("unexpected x centres %v", xs)
	}
	if ys[0] != 2350 || ys[4] != 1950 {
		t.Errorf("unexpected y centres %v", ys)
	}
	for i := 1; i < len(ys); i++ {
		if ys[i] >= ys[i-1] {
			t.Fatalf("y centres are not descending: %v", ys)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
	}{
		{"non numeric", "ncols x\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\n", 1},
		{"reordered", "nrows 3\nncols 4\nxllcorner 0\nyllcorner 0\ncellsize 1\n", 1},
		{"missing line", "ncols 4\nnrows 3\nxllcorner 0\nyllcorner 0\n", 5},
		{"extra field", "ncols 4\nnrows 3 3\nxllcorner 0\nyllcorner 0\ncellsize 1\n", 2},
		{"zero cellsize", "ncols 4\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 0\n", 5},
		{"fractional rows", "ncols 4\nnrows 3.5\nxllcorner 0\nyllcorner 0\ncellsize 1\n", 2},
		{"huge columns", "ncols 1e13\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 10\n", 1},
		{"overflowing rows", "ncols 2\nnrows 1e300\nxllcorner 0\nyllcorner 0\ncellsize 10\n", 2},
		{"negative huge columns", "ncols -1e300\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 10\n", 1},
		{"infinite columns", "ncols Inf\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 10\n", 1},
		{"nan origin", "ncols 2\nnrows 2\nxllcorner NaN\nyllcorner 0\ncellsize 10\n", 3},
		{"infinite cellsize", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize +Inf\n", 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.input))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Line != c.line {
				t.Errorf("expected line %d, got %d", c.line, fe.Line)
			}
		})
	}
}

func TestNewGridLimits(t *testing.T) {
	if _, err := NewGrid(MaxDimension+1, 2, 0, 0, 1); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for too many columns, got %v", err)
	}
	if _, err := NewGrid(2, MaxDimension+1, 0, 0, 1); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for too many rows, got %v", err)
	}
	if _, err := NewGrid(2, 2, 0, 0, math.Inf(1)); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for an infinite cell size, got %v", err)
	}
	if _, err := NewGrid(MaxDimension, 1, 0, 0, 1); err != nil {
		t.Errorf("expected the largest grid to be accepted, got %v", err)
	}
}

func TestIndexOfRoundTrip(t *testing.T) {
	g, err := NewGrid(7, 5, 400000, 500000, 50)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for row := 0; row < g.PaddedRows(); row++ {
		for col := 0; col < g.PaddedColumns(); col++ {
			x, y := g.CoordinatesAt(row, col)
			c, r := g.IndexOf(x, y)
			if c != col || r != row {
				t.Fatalf("IndexOf(CoordinatesAt(%d, %d)) = (%d, %d)", row, col, c, r)
			}
		}
	}
}

func TestIndexOfTie(t *testing.T) {
	g, _ := NewGrid(2, 2, 0, 0, 10)
	// x = 0 lies halfway between the centres -5 and 5
	col, row := g.IndexOf(0, 20)
	if col != 0 {
		t.Errorf("expected lowest column on a tie, got %d", col)
	}
	// y = 20 lies halfway between the centres 25 (row 0) and 15 (row 1)
	if row != 0 {
		t.Errorf("expected lowest row on a tie, got %d", row)
	}
}

func TestNorthWest(t *testing.T) {
	g, _ := NewGrid(4, 3, 1000, 2000, 100)
	x, y := g.NorthWest()
	if x != 900 || y != 2400 {
		t.Errorf("expected (900, 2400), got (%v, %v)", x, y)
	}
}

func TestReadGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dem.asc.gz")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte(header)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	gz.Close()
	file.Close()

	g, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if g.Columns != 4 {
		t.Errorf("expected 4 columns, got %d", g.Columns)
	}
}
