package hdf

import (
	"fmt"
	"reflect"
)

// Flatten converts the nested slices returned by the HDF5 decoder
// ([]float32, [][]int32, [][][]float64, ...) or a numeric scalar into an Array.
func Flatten(values interface{}) (*Array, error) {
	v := reflect.ValueOf(values)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrUnsupported)
	}

	var shape []int
	for t := v; t.Kind() == reflect.Slice || t.Kind() == reflect.Array; {
		shape = append(shape, t.Len())
		if t.Len() == 0 {
			break
		}
		t = t.Index(0)
	}

	data := make([]float64, 0, product(shape))
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			// ragged input can't be described by a single shape
			if depth >= len(shape) || v.Len() != shape[depth] {
				return fmt.Errorf("%w: ragged array at depth %d", ErrShape, depth)
			}
			for i := 0; i < v.Len(); i++ {
				if err := walk(v.Index(i), depth+1); err != nil {
					return err
				}
			}
		case reflect.Float32, reflect.Float64:
			data = append(data, v.Float())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			data = append(data, float64(v.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			data = append(data, float64(v.Uint()))
		case reflect.Interface, reflect.Ptr:
			if v.IsNil() {
				return fmt.Errorf("%w: nil element", ErrUnsupported)
			}
			return walk(v.Elem(), depth)
		default:
			return fmt.Errorf("%w: %s", ErrUnsupported, v.Kind())
		}
		return nil
	}
	if err := walk(v, 0); err != nil {
		return nil, err
	}

	if len(shape) == 0 {
		// scalar dataspace
		shape = []int{1}
	}
	return NewArray(shape, data)
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
