package shetran

import "errors"

// Format errors are returned when the container does not have the layout
// SHETRAN writes. The remaining errors report lookups that can't be satisfied.
var (
	ErrFormat           = errors.New("shetran: malformed output file")
	ErrElementNotFound  = errors.New("shetran: element not found")
	ErrIndexOutOfRange  = errors.New("shetran: index out of range")
	ErrInvalidDirection = errors.New("shetran: direction must be one of n, e, s, w")
	ErrNotALink         = errors.New("shetran: element is not a channel link")
	ErrNoData           = errors.New("shetran: no data at location")
)
