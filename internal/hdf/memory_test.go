package hdf

import (
	"errors"
	"testing"
)

func TestMemoryGroups(t *testing.T) {
	m := NewMemory()
	if err := m.Put("/VARIABLES/  2 ph_depth/value", []int{1}, []float64{0}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := m.Put("/VARIABLES/  1 net_rain/value", []int{1}, []float64{0}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	m.AddGroup("/CONSTANTS")

	groups, err := m.Groups("/VARIABLES")
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	if len(groups) != 2 || groups[0] != "  1 net_rain" || groups[1] != "  2 ph_depth" {
		t.Errorf("unexpected groups %q", groups)
	}

	root, _ := m.Groups("/")
	if len(root) != 2 {
		t.Errorf("expected 2 root groups, got %q", root)
	}

	if _, err := m.Groups("/MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryArrayIsCopy(t *testing.T) {
	m := NewMemory()
	_ = m.Put("CONSTANTS/number", []int{2}, []float64{1, 2})

	a, err := m.Array("/CONSTANTS/number")
	if err != nil {
		t.Fatalf("Array failed: %v", err)
	}
	a.Data[0] = 99

	b, _ := m.Array("/CONSTANTS/number")
	if b.Data[0] != 1 {
		t.Errorf("stored array was modified through a returned copy")
	}

	if _, err := m.Array("/CONSTANTS/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryAttr(t *testing.T) {
	m := NewMemory()
	m.SetAttr("/VARIABLES/  1 net_rain/time", "units", "hours")

	if v, ok := m.Attr("/VARIABLES/  1 net_rain/time", "units"); !ok || v != "hours" {
		t.Errorf("expected hours, got %q %v", v, ok)
	}
	if _, ok := m.Attr("/VARIABLES/  1 net_rain/time", "other"); ok {
		t.Errorf("expected missing attribute")
	}
}

func TestJoin(t *testing.T) {
	cases := map[string][]string{
		"/":                      {},
		"/CONSTANTS/number":      {"CONSTANTS", "number"},
		"/VARIABLES/  1 x/value": {"/VARIABLES/", "  1 x", "value"},
	}
	for want, elem := range cases {
		if got := Join(elem...); got != want {
			t.Errorf("Join(%q) = %q, want %q", elem, got, want)
		}
	}
}
