package utils

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestMaxZoom(t *testing.T) {
	// one degree of longitude at the equator is about 111 km
	b := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}
	if z := MaxZoom(b, 256); z != 9 {
		t.Errorf("MaxZoom = %d, want 9", z)
	}

	small := orb.Bound{Min: orb.Point{-2, 54}, Max: orb.Point{-1.9985, 54.0009}}
	if z := MaxZoom(small, 4); z < 10 || z > 14 {
		t.Errorf("MaxZoom for a 100 m cell = %d", z)
	}

	if z := MaxZoom(orb.Bound{}, 4); z != 20 {
		t.Errorf("MaxZoom of an empty bound = %d, want 20", z)
	}
	if z := MaxZoom(orb.Bound{Min: orb.Point{-180, -80}, Max: orb.Point{180, 80}}, 1); z != 0 {
		t.Errorf("MaxZoom of the world = %d, want 0", z)
	}
}
