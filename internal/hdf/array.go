package hdf

import "fmt"

// Array is a dense, row-major N-dimensional numeric array.
type Array struct {
	Shape []int
	Data  []float64
}

// NewArray wraps data with the given shape.
func NewArray(shape []int, data []float64) (*Array, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrShape, d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d values, got %d", ErrShape, shape, n, len(data))
	}
	return &Array{Shape: shape, Data: data}, nil
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.Shape)
}

// Len returns the total number of values.
func (a *Array) Len() int {
	return len(a.Data)
}

// Stride returns the distance in Data between neighbours along axis.
func (a *Array) Stride(axis int) int {
	s := 1
	for i := axis + 1; i < len(a.Shape); i++ {
		s *= a.Shape[i]
	}
	return s
}

// Offset returns the position of idx in Data, or false if idx is out of bounds.
func (a *Array) Offset(idx ...int) (int, bool) {
	if len(idx) != len(a.Shape) {
		return 0, false
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.Shape[i] {
			return 0, false
		}
		off = off*a.Shape[i] + v
	}
	return off, true
}

// At returns the value at idx. It panics if idx is out of bounds.
func (a *Array) At(idx ...int) float64 {
	off, ok := a.Offset(idx...)
	if !ok {
		panic(fmt.Sprintf("hdf: index %v out of range for shape %v", idx, a.Shape))
	}
	return a.Data[off]
}

// Rows returns the leading 2-D view of a rank-2 array as a slice of rows.
// The rows share memory with the array.
func (a *Array) Rows() ([][]float64, error) {
	if a.Rank() != 2 {
		return nil, fmt.Errorf("%w: want rank 2, got shape %v", ErrShape, a.Shape)
	}
	cols := a.Shape[1]
	rows := make([][]float64, a.Shape[0])
	for r := range rows {
		rows[r] = a.Data[r*cols : (r+1)*cols]
	}
	return rows, nil
}
