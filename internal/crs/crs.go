// Package crs reprojects points between coordinate reference systems.
package crs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
)

// Defaults for SHETRAN catchments, which are set up on the British
// National Grid.
const (
	BritishNationalGrid = "EPSG:27700"
	WGS84               = "EPSG:4326"
)

// ErrUnknownCRS is returned for authority codes missing from the table.
var ErrUnknownCRS = errors.New("crs: unknown coordinate reference system")

var epsg = map[int]string{
	4326:  "+proj=longlat +datum=WGS84 +no_defs",
	3857:  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	27700: "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +ellps=airy +towgs84=446.448,-125.157,542.06,0.15,0.247,0.842,-20.489 +units=m +no_defs",
	29902: "+proj=tmerc +lat_0=53.5 +lon_0=-8 +k=1.000035 +x_0=200000 +y_0=250000 +ellps=mod_airy +towgs84=482.5,-130.6,564.6,-1.042,-0.214,-0.631,8.15 +units=m +no_defs",
	2157:  "+proj=tmerc +lat_0=53.5 +lon_0=-8 +k=0.99982 +x_0=600000 +y_0=750000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	32629: "+proj=utm +zone=29 +datum=WGS84 +units=m +no_defs",
	32630: "+proj=utm +zone=30 +datum=WGS84 +units=m +no_defs",
	32631: "+proj=utm +zone=31 +datum=WGS84 +units=m +no_defs",
}

// Definition resolves "EPSG:<code>" (or a bare code) to a proj4 string.
// Anything else is returned unchanged.
func Definition(def string) (string, error) {
	def = strings.TrimSpace(def)
	code := def
	if i := strings.Index(def, ":"); i >= 0 && strings.EqualFold(def[:i], "epsg") {
		code = def[i+1:]
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		if code != def {
			return "", fmt.Errorf("%w: %s", ErrUnknownCRS, def)
		}
		return def, nil
	}
	s, ok := epsg[n]
	if !ok {
		return "", fmt.Errorf("%w: EPSG:%d", ErrUnknownCRS, n)
	}
	return s, nil
}

// Parse returns the spatial reference of def.
func Parse(def string) (*proj.SR, error) {
	s, err := Definition(def)
	if err != nil {
		return nil, err
	}
	sr, err := proj.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("crs: parsing %q: %w", def, err)
	}
	return sr, nil
}

// Transform converts coordinates from one system to another.
type Transform struct {
	Source, Target string
	t              proj.Transformer
}

// New returns the transform from src to dst.
func New(src, dst string) (*Transform, error) {
	from, err := Definition(src)
	if err != nil {
		return nil, err
	}
	to, err := Definition(dst)
	if err != nil {
		return nil, err
	}
	tr := &Transform{Source: src, Target: dst}
	if from == to {
		return tr, nil
	}

	srcSR, err := Parse(from)
	if err != nil {
		return nil, err
	}
	dstSR, err := Parse(to)
	if err != nil {
		return nil, err
	}
	tr.t, err = srcSR.NewTransform(dstSR)
	if err != nil {
		return nil, fmt.Errorf("crs: %s to %s: %w", src, dst, err)
	}
	return tr, nil
}

// Identity reports whether the transform leaves coordinates unchanged.
func (t *Transform) Identity() bool {
	return t.t == nil
}

// Point reprojects p.
func (t *Transform) Point(p orb.Point) (orb.Point, error) {
	if t.t == nil {
		return p, nil
	}
	x, y, err := t.t(p[0], p[1])
	if err != nil {
		return orb.Point{}, fmt.Errorf("crs: reprojecting %v: %w", p, err)
	}
	return orb.Point{x, y}, nil
}

// Bound reprojects the corners of b and returns their bound.
func (t *Transform) Bound(b orb.Bound) (orb.Bound, error) {
	corners := []orb.Point{b.Min, {b.Min[0], b.Max[1]}, b.Max, {b.Max[0], b.Min[1]}}
	var out orb.Bound
	for i, c := range corners {
		p, err := t.Point(c)
		if err != nil {
			return orb.Bound{}, err
		}
		if i == 0 {
			out = p.Bound()
			continue
		}
		out = out.Extend(p)
	}
	return out, nil
}
