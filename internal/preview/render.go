package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nclwater/shetranio/internal/hdf"
)

// Mode selects how heights are turned into colours.
type Mode string

const (
	// Ramp shades heights from green lowland to pale upland.
	Ramp Mode = "ramp"
	// TerrainRGB encodes heights losslessly, see HeightToRgb.
	TerrainRGB Mode = "terrainrgb"
)

var (
	lowland = colorful.Hcl(140, 0.45, 0.55)
	upland  = colorful.Hcl(60, 0.25, 0.95)
)

// Render draws a [rows, cols] height array. NaN cells stay transparent.
func Render(a *hdf.Array, mode Mode) (*image.NRGBA, error) {
	if a.Rank() != 2 {
		return nil, fmt.Errorf("expected a 2-D array, got shape %v", a.Shape)
	}
	rows, cols := a.Shape[0], a.Shape[1]

	var shade func(v float64) color.NRGBA
	switch mode {
	case TerrainRGB:
		shade = HeightToRgb
	case Ramp, "":
		lo, hi, _ := valueRange(a.Data)
		shade = func(v float64) color.NRGBA {
			f := 0.0
			if hi > lo {
				f = (v - lo) / (hi - lo)
			}
			r, g, b := lowland.BlendHcl(upland, f).Clamped().RGB255()
			return color.NRGBA{R: r, G: g, B: b, A: 255}
		}
	default:
		return nil, fmt.Errorf("unknown preview mode %q", mode)
	}

	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := a.Data[row*cols+col]
			if math.IsNaN(v) {
				continue
			}
			img.SetNRGBA(col, row, shade(v))
		}
	}
	return img, nil
}
