package tilejson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
)

// ElementFields describes the properties of the element layer.
var ElementFields = map[string]string{
	"element":  "Number",
	"variable": "String",
	"value":    "Number",
	"units":    "String",
}

// New describes a vector tile set of one layer covering bounds.
func New(catchment, layer string, maxZoom uint8, bounds orb.Bound) TileJSON {
	center := bounds.Center()
	return TileJSON{
		TileJSON:    "2.2.0",
		Name:        fmt.Sprintf("%s %s", catchment, layer),
		Description: fmt.Sprintf("SHETRAN %s of catchment %s", layer, catchment),
		Scheme:      "xyz",
		Format:      "pbf",
		Tiles:       []string{"{z}/{x}/{y}.pbf"},
		Minzoom:     0,
		Maxzoom:     maxZoom,
		Bounds:      []float64{bounds.Min[0], bounds.Min[1], bounds.Max[0], bounds.Max[1]},
		Center:      []float64{center[0], center[1], float64(maxZoom / 2)},
		VectorLayers: []VectorLayer{{
			ID:      layer,
			Minzoom: 0,
			Maxzoom: maxZoom,
			Fields:  ElementFields,
		}},
	}
}

// Write a tile.json into outputDirectory
func Write(outputDirectory string, obj TileJSON) error {
	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDirectory, "tile.json"), bytes, 0644)
}

// VectorLayersJSON returns the {"vector_layers": [...]} document MBTiles
// keeps in its json metadata entry.
func VectorLayersJSON(obj TileJSON) (string, error) {
	bytes, err := json.Marshal(struct {
		VectorLayers []VectorLayer `json:"vector_layers"`
	}{obj.VectorLayers})
	return string(bytes), err
}
