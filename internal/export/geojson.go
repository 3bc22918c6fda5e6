// Package export joins element geometries with variable values.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/nclwater/shetranio/internal/geometry"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/paulmach/orb/geojson"
)

// Features builds a feature collection with one feature per geometry. When
// v is not nil every feature carries the value of v at timestep t.
// Missing values are null.
func Features(geometries []geometry.Geometry, v *shetran.Variable, t int, opts ...shetran.Option) (*geojson.FeatureCollection, error) {
	var values map[int]float64
	if v != nil {
		samples, err := v.Time(t, opts...)
		if err != nil {
			return nil, err
		}
		values = make(map[int]float64, len(samples))
		for _, s := range samples {
			values[s.Element] = s.Value
		}
	}

	fc := geojson.NewFeatureCollection()
	for _, g := range geometries {
		f := geojson.NewFeature(g.Polygon)
		f.Properties["element"] = g.Element

		if v != nil {
			key := g.Element
			if !v.IsSpatial() {
				key = 0
			}
			f.Properties["variable"] = v.Name
			f.Properties["units"] = v.Units
			if value, ok := values[key]; ok && !shetran.IsMissing(value) {
				f.Properties["value"] = value
			} else {
				f.Properties["value"] = nil
			}
		}
		fc.Append(f)
	}
	return fc, nil
}

// Write encodes fc to w.
func Write(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile encodes fc to the file at path.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, fc); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
