package mvt

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// cloneFeature deep clones f so a tile can project it in place
func cloneFeature(f *geojson.Feature) *geojson.Feature {
	clone := geojson.NewFeature(orb.Clone(f.Geometry))
	clone.ID = f.ID
	clone.Properties = f.Properties.Clone()
	return clone
}
