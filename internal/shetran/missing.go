package shetran

import "math"

// Sentinel marks cells outside the catchment and values that were not
// computed.
const Sentinel = -1

// IsMissing reports whether v is a no-data value.
func IsMissing(v float64) bool {
	return v == Sentinel || math.IsNaN(v)
}

// Max returns the largest value that is not missing.
func Max(values []float64) (float64, bool) {
	return reduce(values, func(acc, v float64) float64 { return math.Max(acc, v) })
}

// Min returns the smallest value that is not missing.
func Min(values []float64) (float64, bool) {
	return reduce(values, func(acc, v float64) float64 { return math.Min(acc, v) })
}

// Mean returns the average of the values that are not missing.
func Mean(values []float64) (float64, bool) {
	sum, n := 0.0, 0
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func reduce(values []float64, f func(acc, v float64) float64) (float64, bool) {
	var acc float64
	ok := false
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if !ok {
			acc, ok = v, true
			continue
		}
		acc = f(acc, v)
	}
	return acc, ok
}

// MaxAbs returns the largest absolute value that is not missing, or
// Sentinel when every value is missing.
func MaxAbs(values []float64) float64 {
	m, ok := -1.0, false
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if a := math.Abs(v); !ok || a > m {
			m, ok = a, true
		}
	}
	if !ok {
		return Sentinel
	}
	return m
}
