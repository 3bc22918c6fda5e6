package utils

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	tileSizeInPx = 256
	maxZoom      = 20

	// circumference of the web mercator world in metres
	mercatorWorld = 2 * math.Pi * 6378137
)

// MaxZoom returns the lowest zoom at which a feature of the given WGS84
// bound spans at least minPx pixels.
func MaxZoom(smallest orb.Bound, minPx float64) uint8 {
	sw := project.Point(smallest.Min, project.WGS84.ToMercator)
	ne := project.Point(smallest.Max, project.WGS84.ToMercator)

	width := math.Min(ne[0]-sw[0], ne[1]-sw[1])
	if !(width > 0) {
		return maxZoom
	}

	z := math.Ceil(math.Log2(mercatorWorld * minPx / (tileSizeInPx * width)))
	return uint8(math.Max(0, math.Min(maxZoom, z)))
}
