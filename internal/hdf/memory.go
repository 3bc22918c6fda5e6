package hdf

import (
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-memory Source. Groups are created implicitly by Put.
type Memory struct {
	mu     sync.RWMutex
	arrays map[string]*Array
	attrs  map[string]map[string]string
	groups map[string]map[string]struct{}
}

// NewMemory returns an empty in-memory container.
func NewMemory() *Memory {
	return &Memory{
		arrays: map[string]*Array{},
		attrs:  map[string]map[string]string{},
		groups: map[string]map[string]struct{}{"/": {}},
	}
}

// AddGroup creates the group p and its parents.
func (m *Memory) AddGroup(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addGroup(Join(p))
}

func (m *Memory) addGroup(p string) {
	for p != "/" {
		if _, ok := m.groups[p]; !ok {
			m.groups[p] = map[string]struct{}{}
		}
		dir, name := split(p)
		if _, ok := m.groups[dir]; !ok {
			m.groups[dir] = map[string]struct{}{}
		}
		m.groups[dir][name] = struct{}{}
		p = dir
	}
}

// Put stores a dataset at p.
func (m *Memory) Put(p string, shape []int, data []float64) error {
	a, err := NewArray(shape, data)
	if err != nil {
		return fmt.Errorf("put %s: %w", p, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p = Join(p)
	dir, _ := split(p)
	m.addGroup(dir)
	m.arrays[p] = a
	return nil
}

// SetAttr sets an attribute on the dataset at p.
func (m *Memory) SetAttr(p, name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = Join(p)
	if m.attrs[p] == nil {
		m.attrs[p] = map[string]string{}
	}
	m.attrs[p][name] = value
}

// Groups lists the subgroups of dir in sorted order.
func (m *Memory) Groups(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	children, ok := m.groups[Join(dir)]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", ErrNotFound, dir)
	}
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Array returns a copy of the dataset at p.
func (m *Memory) Array(p string) (*Array, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.arrays[Join(p)]
	if !ok {
		return nil, fmt.Errorf("%w: dataset %s", ErrNotFound, p)
	}
	return &Array{
		Shape: append([]int(nil), a.Shape...),
		Data:  append([]float64(nil), a.Data...),
	}, nil
}

// Attr returns an attribute of the dataset at p.
func (m *Memory) Attr(p, name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.attrs[Join(p)][name]
	return v, ok
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
