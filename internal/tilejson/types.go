package tilejson

// VectorLayer represents a vector layer of a tile.json
type VectorLayer struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Minzoom     uint8             `json:"minzoom"`
	Maxzoom     uint8             `json:"maxzoom"`
	Fields      map[string]string `json:"fields"`
}

// TileJSON represents a tile.json
type TileJSON struct {
	TileJSON     string        `json:"tilejson"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Scheme       string        `json:"scheme"`
	Format       string        `json:"format,omitempty"`
	Tiles        []string      `json:"tiles,omitempty"`
	Minzoom      uint8         `json:"minzoom"`
	Maxzoom      uint8         `json:"maxzoom"`
	Bounds       []float64     `json:"bounds,omitempty"`
	Center       []float64     `json:"center,omitempty"`
	VectorLayers []VectorLayer `json:"vector_layers,omitempty"`
}
