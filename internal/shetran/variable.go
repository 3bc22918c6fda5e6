package shetran

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nclwater/shetranio/internal/hdf"
)

// Variable is one time-varying output of a run.
type Variable struct {
	Name     string
	LongName string
	Units    string
	Kind     Kind
	Values   *hdf.Array
	Times    []float64

	number   *Constant
	start    time.Time
	hasStart bool
	timeUnit time.Duration
}

// Sample is the value of one element at one timestep.
type Sample struct {
	Element int
	Value   float64
}

// Samples is the state of a variable at one timestep.
type Samples []Sample

// Values returns the values in element order.
func (s Samples) Values() []float64 {
	values := make([]float64, len(s))
	for i, sample := range s {
		values[i] = sample.Value
	}
	return values
}

// Option configures a query on a variable.
type Option func(*query)

type query struct {
	level int
}

// Level selects the soil layer of a layered variable. Layer 0 is the surface.
func Level(l int) Option {
	return func(q *query) {
		q.level = l
	}
}

func newQuery(opts []Option) query {
	var q query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// IsRiver reports whether the variable is indexed by element number.
func (v *Variable) IsRiver() bool {
	return v.Kind.IsRiver()
}

// IsSpatial reports whether the variable varies across the catchment.
func (v *Variable) IsSpatial() bool {
	return v.Kind.IsSpatial()
}

// Levels returns the number of soil layers, 1 for unlayered variables.
func (v *Variable) Levels() int {
	if v.Kind == KindLandLayered {
		return v.Values.Shape[2]
	}
	return 1
}

// Timestamps converts the time axis to wall clock times. It returns false
// when the run start date is unknown.
func (v *Variable) Timestamps() ([]time.Time, bool) {
	if !v.hasStart {
		return nil, false
	}
	ts := make([]time.Time, len(v.Times))
	for i, t := range v.Times {
		ts[i] = v.start.Add(time.Duration(t * float64(v.timeUnit)))
	}
	return ts, true
}

// series copies the time axis starting at off.
func (v *Variable) series(off int) []float64 {
	n := len(v.Times)
	return append([]float64(nil), v.Values.Data[off:off+n]...)
}

func (v *Variable) cell(n int) (int, int, error) {
	if v.number == nil {
		return 0, 0, fmt.Errorf("%w: no element numbers", ErrFormat)
	}
	row, col, ok := v.number.Square.Find(float64(n))
	if !ok || IsMissing(float64(n)) {
		return 0, 0, fmt.Errorf("%w: %d is not a land element", ErrElementNotFound, n)
	}
	if row >= v.Values.Shape[0] || col >= v.Values.Shape[1] {
		return 0, 0, fmt.Errorf("%w: cell (%d, %d) outside %s values %v", ErrIndexOutOfRange, row, col, v.Name, v.Values.Shape)
	}
	return row, col, nil
}

func (v *Variable) link(n int) (int, error) {
	i := n - 1
	if i < 0 || i >= v.Values.Shape[0] {
		return 0, fmt.Errorf("%w: element %d, %s has %d", ErrIndexOutOfRange, n, v.Name, v.Values.Shape[0])
	}
	return i, nil
}

func (q query) checkLevel(v *Variable) error {
	if q.level < 0 || q.level >= v.Levels() {
		return fmt.Errorf("%w: level %d, %s has %d", ErrIndexOutOfRange, q.level, v.Name, v.Levels())
	}
	return nil
}

// Element returns the time series of element n.
//
// Land values are looked up through the element numbers of the grid
// squares. River values are indexed by n-1; for flows across the four
// faces the series holds the largest absolute flow of each timestep.
// Rain is the same everywhere and n is ignored.
func (v *Variable) Element(n int, opts ...Option) ([]float64, error) {
	q := newQuery(opts)
	if err := q.checkLevel(v); err != nil {
		return nil, err
	}
	nt := len(v.Times)

	switch v.Kind {
	case KindRain:
		return v.series(0), nil

	case KindLand, KindLandLayered:
		row, col, err := v.cell(n)
		if err != nil {
			return nil, err
		}
		off, _ := v.Values.Offset(cellIndex(v, row, col, q.level)...)
		return v.series(off), nil

	case KindRiverDepth:
		i, err := v.link(n)
		if err != nil {
			return nil, err
		}
		return v.series(i * nt), nil

	case KindRiverFaces:
		i, err := v.link(n)
		if err != nil {
			return nil, err
		}
		values := make([]float64, nt)
		for t := range values {
			values[t] = v.faces(i, t)
		}
		return values, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %v", ErrFormat, v.Kind)
}

// ElementLayers returns one series per soil layer of element n.
func (v *Variable) ElementLayers(n int) ([][]float64, error) {
	layers := make([][]float64, v.Levels())
	for l := range layers {
		s, err := v.Element(n, Level(l))
		if err != nil {
			return nil, err
		}
		layers[l] = s
	}
	return layers, nil
}

func cellIndex(v *Variable, row, col, level int) []int {
	if v.Kind == KindLandLayered {
		return []int{row, col, level, 0}
	}
	return []int{row, col, 0}
}

// faces reduces the four face values of element index i at t.
func (v *Variable) faces(i, t int) float64 {
	var f [4]float64
	for k := range f {
		f[k] = v.Values.At(i, k, t)
	}
	return MaxAbs(f[:])
}

// Time returns the value of every element at timestep t. Land samples
// are sorted by element number.
func (v *Variable) Time(t int, opts ...Option) (Samples, error) {
	q := newQuery(opts)
	if err := q.checkLevel(v); err != nil {
		return nil, err
	}
	if t < 0 || t >= len(v.Times) {
		return nil, fmt.Errorf("%w: timestep %d, %s has %d", ErrIndexOutOfRange, t, v.Name, len(v.Times))
	}

	switch v.Kind {
	case KindRain:
		return Samples{{Element: 0, Value: v.Values.At(0, t)}}, nil

	case KindLand, KindLandLayered:
		if v.number == nil {
			return nil, fmt.Errorf("%w: no element numbers", ErrFormat)
		}
		square := v.number.Square
		rows, cols := min(square.Rows(), v.Values.Shape[0]), min(square.Columns(), v.Values.Shape[1])
		var samples Samples
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				n := square.At(row, col)
				if IsMissing(n) {
					continue
				}
				idx := cellIndex(v, row, col, q.level)
				idx[len(idx)-1] = t
				samples = append(samples, Sample{Element: int(n), Value: v.Values.At(idx...)})
			}
		}
		sort.Slice(samples, func(i, j int) bool { return samples[i].Element < samples[j].Element })
		return samples, nil

	case KindRiverDepth, KindRiverFaces:
		samples := make(Samples, v.Values.Shape[0])
		for i := range samples {
			samples[i].Element = i + 1
			if v.Kind == KindRiverFaces {
				samples[i].Value = v.faces(i, t)
			} else {
				samples[i].Value = v.Values.At(i, t)
			}
		}
		return samples, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %v", ErrFormat, v.Kind)
}

// parseTimeUnit reads the units attribute of a time axis. SHETRAN
// writes hours.
func parseTimeUnit(units string) time.Duration {
	fields := strings.Fields(strings.ToLower(units))
	if len(fields) == 0 {
		return time.Hour
	}
	switch strings.TrimSuffix(fields[0], "s") {
	case "second", "sec":
		return time.Second
	case "minute", "min":
		return time.Minute
	case "day":
		return 24 * time.Hour
	}
	return time.Hour
}
