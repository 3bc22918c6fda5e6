package shetran

import (
	"math"
	"testing"
)

func TestAggregatesSkipSentinel(t *testing.T) {
	values := []float64{-1, 3, -1, 1, math.NaN()}

	if v, ok := Max(values); !ok || v != 3 {
		t.Errorf("Max = %v, %v", v, ok)
	}
	if v, ok := Min(values); !ok || v != 1 {
		t.Errorf("Min = %v, %v", v, ok)
	}
	if v, ok := Mean(values); !ok || v != 2 {
		t.Errorf("Mean = %v, %v", v, ok)
	}

	for name, f := range map[string]func([]float64) (float64, bool){"Max": Max, "Min": Min, "Mean": Mean} {
		if _, ok := f([]float64{-1, -1}); ok {
			t.Errorf("%s of only missing values should not be ok", name)
		}
		if _, ok := f(nil); ok {
			t.Errorf("%s of nothing should not be ok", name)
		}
	}
}

func TestMaxAbs(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{[]float64{1, -3, 2, 0}, 3},
		{[]float64{-1, -0.5, 0.25, -1}, 0.5},
		{[]float64{-1, -1, -1, -1}, Sentinel},
		{[]float64{0, 0, 0, 0}, 0},
	}
	for _, c := range cases {
		if got := MaxAbs(c.in); got != c.want {
			t.Errorf("MaxAbs(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
