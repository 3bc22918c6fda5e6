// Package shetran reads the HDF5 output ("shegraph") file of a SHETRAN
// run: its constant blocks, its time-varying variables and the numbering
// that ties grid squares and channel links to element numbers.
package shetran

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nclwater/shetranio/internal/hdf"
)

// Container layout
const (
	ConstantsGroup = "/CONSTANTS"
	VariablesGroup = "/VARIABLES"
	ElevationPath  = "/CATCHMENT_MAPS/SV4_elevation"
	NumberingPath  = "/CATCHMENT_SPREADSHEETS/SV4_numbering"
)

// Reader gives access to one output file. Close it when done.
type Reader struct {
	Centroid          *Constant
	GridDXY           *hdf.Array
	Number            *Constant
	RSpan             *Constant
	SoilType          *Constant
	Spatial1          *Constant
	SurfaceElevation  *Constant
	VerticalThickness *Constant

	src      hdf.Source
	start    time.Time
	hasStart bool

	groups    map[string]string
	variables map[string]*Variable
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithStartDate sets the simulation start so that variables can convert
// their time axis to timestamps.
func WithStartDate(t time.Time) ReaderOption {
	return func(r *Reader) {
		r.start = t
		r.hasStart = true
	}
}

// Open opens the output file at path.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := hdf.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := New(f, opts...)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// New reads the constants and the variable catalog of src. The Reader
// takes ownership of src.
func New(src hdf.Source, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		src:       src,
		groups:    map[string]string{},
		variables: map[string]*Variable{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if _, err := src.Groups(ConstantsGroup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	blocks := []struct {
		name     string
		dst      **Constant
		required bool
	}{
		{"centroid", &r.Centroid, false},
		{"number", &r.Number, true},
		{"r_span", &r.RSpan, false},
		{"soil_typ", &r.SoilType, false},
		{"spatial1", &r.Spatial1, false},
		{"surf_elv", &r.SurfaceElevation, false},
		{"vert_thk", &r.VerticalThickness, false},
	}
	for _, b := range blocks {
		a, err := src.Array(hdf.Join(ConstantsGroup, b.name))
		if errors.Is(err, hdf.ErrNotFound) && !b.required {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		c, err := NewConstant(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		*b.dst = c
	}

	dxy, err := src.Array(hdf.Join(ConstantsGroup, "grid_dxy"))
	switch {
	case err == nil:
		r.GridDXY = dxy
	case !errors.Is(err, hdf.ErrNotFound):
		return nil, err
	}

	// a run without variable output still has usable constants
	groups, err := src.Groups(VariablesGroup)
	if err != nil && !errors.Is(err, hdf.ErrNotFound) {
		return nil, err
	}
	for _, g := range groups {
		r.groups[ShortName(g)] = g
	}

	return r, nil
}

// ShortName strips the numeric prefix of a variable group, so
// "  4 ovr_flow" becomes "ovr_flow".
func ShortName(group string) string {
	fields := strings.Fields(group)
	if len(fields) > 1 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			return strings.Join(fields[1:], " ")
		}
	}
	return strings.TrimSpace(group)
}

// Close releases the output file.
func (r *Reader) Close() error {
	return r.src.Close()
}

// Variables returns the short names of the variables recorded in this run.
func (r *Reader) Variables() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variable loads the variable with the given short name. It returns
// false if the run did not record it.
func (r *Reader) Variable(name string) (*Variable, bool, error) {
	if v, ok := r.variables[name]; ok {
		return v, true, nil
	}
	group, ok := r.groups[name]
	if !ok {
		return nil, false, nil
	}

	valuePath := hdf.Join(VariablesGroup, group, "value")
	timePath := hdf.Join(VariablesGroup, group, "time")

	values, err := r.src.Array(valuePath)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	times, err := r.src.Array(timePath)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	kind, known := KindOf(name)
	if !known {
		kind, err = inferKind(values.Shape, r.Number.Square.Rows(), r.Number.Square.Columns())
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
	}
	if err := checkShape(kind, values, times.Data); err != nil {
		return nil, false, fmt.Errorf("%s: %w", name, err)
	}

	timeUnits, _ := r.src.Attr(timePath, "units")
	v := &Variable{
		Name:     name,
		LongName: r.attr(valuePath, group, "long_name"),
		Units:    r.attr(valuePath, group, "units"),
		Kind:     kind,
		Values:   values,
		Times:    times.Data,
		number:   r.Number,
		start:    r.start,
		hasStart: r.hasStart,
		timeUnit: parseTimeUnit(timeUnits),
	}
	r.variables[name] = v
	return v, true, nil
}

// attr reads an attribute of the value dataset, falling back to its group.
func (r *Reader) attr(valuePath, group, name string) string {
	if s, ok := r.src.Attr(valuePath, name); ok {
		return strings.TrimSpace(s)
	}
	s, _ := r.src.Attr(hdf.Join(VariablesGroup, group), name)
	return strings.TrimSpace(s)
}

// ElevationMap returns the catchment elevation raster.
func (r *Reader) ElevationMap() (*hdf.Array, error) {
	return r.catchmentMap(ElevationPath)
}

// NumberingMap returns the element numbering raster.
func (r *Reader) NumberingMap() (*hdf.Array, error) {
	return r.catchmentMap(NumberingPath)
}

func (r *Reader) catchmentMap(p string) (*hdf.Array, error) {
	a, err := r.src.Array(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if a.Rank() != 2 {
		return nil, fmt.Errorf("%w: %s has shape %v", ErrFormat, p, a.Shape)
	}
	return a, nil
}
