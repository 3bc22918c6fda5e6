// Package hdf gives read access to the arrays and attributes stored in a
// hierarchical (HDF5) container.
package hdf

import "errors"

// Common errors
var (
	ErrNotFound    = errors.New("hdf: object not found")
	ErrShape       = errors.New("hdf: shape does not match data")
	ErrUnsupported = errors.New("hdf: unsupported value type")
)
