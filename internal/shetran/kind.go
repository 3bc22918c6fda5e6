package shetran

import (
	"fmt"

	"github.com/nclwater/shetranio/internal/hdf"
)

// Kind is the layout of a variable's value array.
type Kind int

const (
	// KindRain is catchment uniform: [1, time].
	KindRain Kind = iota
	// KindLand holds one value per grid square: [row, col, time].
	KindLand
	// KindLandLayered adds a soil layer axis: [row, col, layer, time].
	KindLandLayered
	// KindRiverFaces holds four faces per element: [element, 4, time].
	KindRiverFaces
	// KindRiverDepth holds one value per element: [element, time].
	KindRiverDepth
)

func (k Kind) String() string {
	switch k {
	case KindRain:
		return "rain"
	case KindLand:
		return "land"
	case KindLandLayered:
		return "land-layered"
	case KindRiverFaces:
		return "river-faces"
	case KindRiverDepth:
		return "river-depth"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsRiver reports whether values are indexed by element number.
func (k Kind) IsRiver() bool {
	return k == KindRiverFaces || k == KindRiverDepth
}

// IsSpatial reports whether values vary across the catchment.
func (k Kind) IsSpatial() bool {
	return k != KindRain
}

// rank of the value array
func (k Kind) rank() int {
	switch k {
	case KindLand, KindRiverFaces:
		return 3
	case KindLandLayered:
		return 4
	}
	return 2
}

// knownKinds lists the variables SHETRAN writes to the shegraph file.
var knownKinds = map[string]Kind{
	"net_rain": KindRain,
	"ph_depth": KindLand,
	"snow_dep": KindLand,
	"trnsp":    KindLand,
	"srf_evap": KindLand,
	"int_evap": KindLand,
	"drainage": KindLand,
	"theta":    KindLandLayered,
	"ovr_flow": KindRiverFaces,
	"srf_dep":  KindRiverDepth,
}

// KindOf returns the kind of a known SHETRAN variable.
func KindOf(name string) (Kind, bool) {
	k, ok := knownKinds[name]
	return k, ok
}

// inferKind guesses the kind of an unlisted variable from the shape of
// its values and the padded grid size.
func inferKind(shape []int, rows, cols int) (Kind, error) {
	switch {
	case len(shape) == 2 && shape[0] == 1:
		return KindRain, nil
	case len(shape) == 2:
		return KindRiverDepth, nil
	case len(shape) == 3 && shape[0] == rows && shape[1] == cols:
		return KindLand, nil
	case len(shape) == 3 && shape[1] == 4:
		return KindRiverFaces, nil
	case len(shape) == 4:
		return KindLandLayered, nil
	}
	return 0, fmt.Errorf("%w: can't classify values of shape %v", ErrFormat, shape)
}

// checkShape verifies that values fit kind k and that times matches the
// time axis.
func checkShape(k Kind, values *hdf.Array, times []float64) error {
	if values.Rank() != k.rank() {
		return fmt.Errorf("%w: %s values have shape %v", ErrFormat, k, values.Shape)
	}
	if k == KindRiverFaces && values.Shape[1] != 4 {
		return fmt.Errorf("%w: %s values have %d faces", ErrFormat, k, values.Shape[1])
	}
	if n := values.Shape[values.Rank()-1]; n != len(times) {
		return fmt.Errorf("%w: %d times for a time axis of %d", ErrFormat, len(times), n)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("%w: times not increasing at index %d", ErrFormat, i)
		}
	}
	return nil
}
