package preview

import (
	"math"

	"github.com/nclwater/shetranio/internal/hdf"
	"github.com/nclwater/shetranio/internal/shetran"
)

// Elevations reads the catchment elevation map and rescales its 0-255 grey
// levels to the surface elevation range of the land elements. Cells of
// level 0 lie outside the catchment and become NaN. Without a surface
// elevation block the grey levels are kept.
func Elevations(r *shetran.Reader) (*hdf.Array, error) {
	raw, err := r.ElevationMap()
	if err != nil {
		return nil, err
	}
	lo, hi, ok := squareRange(r.SurfaceElevation)

	data := make([]float64, len(raw.Data))
	for i, v := range raw.Data {
		switch {
		case v == 0:
			data[i] = math.NaN()
		case ok:
			data[i] = v/256*(hi-lo) + lo
		default:
			data[i] = v
		}
	}
	return hdf.NewArray(raw.Shape, data)
}

func squareRange(c *shetran.Constant) (float64, float64, bool) {
	if c == nil {
		return 0, 0, false
	}
	var values []float64
	for row := 0; row < c.Square.Rows(); row++ {
		for col := 0; col < c.Square.Columns(); col++ {
			values = append(values, c.Square.At(row, col))
		}
	}
	lo, ok := shetran.Min(values)
	if !ok {
		return 0, 0, false
	}
	hi, _ := shetran.Max(values)
	return lo, hi, true
}

// valueRange returns the smallest and largest finite values of data.
func valueRange(data []float64) (float64, float64, bool) {
	lo, hi, ok := 0.0, 0.0, false
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}
