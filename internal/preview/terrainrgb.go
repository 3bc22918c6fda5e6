package preview

import (
	"image/color"
)

/*
	Terrain-RGB encodes a height as

	height = -10000 + (R * 256 * 256 + G * 256 + B) * 0.1

	so x = R * 256^2 + G * 256 + B = 10 * height + 100000, and R, G and B
	are the digits of x in base 256.
*/

const maxTerrainRGB = 256*256*256 - 1

// HeightToRgb encodes height as a Terrain-RGB colour. Heights outside the
// encodable range are clamped.
func HeightToRgb(height float64) color.NRGBA {
	x := int64(10*height + 100000)
	if x < 0 {
		x = 0
	}
	if x > maxTerrainRGB {
		x = maxTerrainRGB
	}
	return color.NRGBA{
		R: uint8(x >> 16),
		G: uint8(x >> 8),
		B: uint8(x),
		A: 255,
	}
}

// RgbToHeight decodes a Terrain-RGB colour.
func RgbToHeight(c color.NRGBA) float64 {
	x := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)
	return -10000 + float64(x)*0.1
}
