package hdf

import (
	"errors"
	"testing"
)

func TestNewArrayShapeMismatch(t *testing.T) {
	_, err := NewArray([]int{2, 3}, make([]float64, 5))
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestArrayAt(t *testing.T) {
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := NewArray([]int{2, 3, 4}, data)
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	if a.Rank() != 3 {
		t.Errorf("expected rank 3, got %d", a.Rank())
	}
	if got := a.At(1, 2, 3); got != 23 {
		t.Errorf("expected 23, got %v", got)
	}
	if got := a.At(1, 0, 2); got != 14 {
		t.Errorf("expected 14, got %v", got)
	}
	if s := a.Stride(0); s != 12 {
		t.Errorf("expected stride 12, got %d", s)
	}
	if _, ok := a.Offset(2, 0, 0); ok {
		t.Errorf("expected out of range offset to fail")
	}
}

func TestArrayRows(t *testing.T) {
	a, _ := NewArray([]int{2, 2}, []float64{1, 2, 3, 4})
	rows, err := a.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if rows[1][0] != 3 {
		t.Errorf("expected 3, got %v", rows[1][0])
	}

	b, _ := NewArray([]int{4}, []float64{1, 2, 3, 4})
	if _, err := b.Rows(); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape for rank 1, got %v", err)
	}
}

func TestFlatten(t *testing.T) {
	a, err := Flatten([][]int32{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if len(a.Shape) != 2 || a.Shape[0] != 2 || a.Shape[1] != 3 {
		t.Fatalf("unexpected shape %v", a.Shape)
	}
	if a.At(1, 2) != 6 {
		t.Errorf("expected 6, got %v", a.At(1, 2))
	}

	s, err := Flatten(float32(2.5))
	if err != nil {
		t.Fatalf("Flatten scalar failed: %v", err)
	}
	if s.Len() != 1 || s.Data[0] != 2.5 {
		t.Errorf("unexpected scalar %v", s.Data)
	}
}

func TestFlattenRagged(t *testing.T) {
	_, err := Flatten([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestFlattenUnsupported(t *testing.T) {
	_, err := Flatten([]string{"a"})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
