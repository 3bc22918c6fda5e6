package hdf

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// File is a Source backed by an HDF5 file on disk.
type File struct {
	mu   sync.Mutex
	name string
	root api.Group
}

// Open opens the HDF5 file at name.
func Open(name string) (*File, error) {
	root, err := netcdf.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return newFile(name, root), nil
}

func newFile(name string, root api.Group) *File {
	return &File{name: name, root: root}
}

func (f *File) group(dir string) (api.Group, error) {
	if f.root == nil {
		return nil, errors.New("hdf: file is closed")
	}
	g, err := f.root.GetGroup(Join(dir))
	if err != nil || g == nil {
		return nil, fmt.Errorf("%w: group %s in %s", ErrNotFound, dir, f.name)
	}
	return g, nil
}

// Groups lists the subgroups of dir.
func (f *File) Groups(dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	g, err := f.group(dir)
	if err != nil {
		return nil, err
	}
	defer g.Close()
	return g.ListSubgroups(), nil
}

// Array reads the dataset at p.
func (f *File) Array(p string) (*Array, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir, name := split(p)
	g, err := f.group(dir)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	v, err := g.GetVariable(name)
	if err != nil || v == nil {
		return nil, fmt.Errorf("%w: dataset %s in %s", ErrNotFound, p, f.name)
	}
	a, err := Flatten(v.Values)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", p, err)
	}
	return a, nil
}

// Attr returns an attribute of the dataset or group at p. Dataset values
// are not read.
func (f *File) Attr(p, name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.root == nil {
		return "", false
	}
	if val, ok := f.datasetAttr(p, name); ok {
		return attrString(val), true
	}
	if val, ok := f.groupAttr(p, name); ok {
		return attrString(val), true
	}
	return "", false
}

func (f *File) datasetAttr(p, name string) (interface{}, bool) {
	dir, base := split(p)
	if base == "" {
		return nil, false
	}
	g, err := f.group(dir)
	if err != nil {
		return nil, false
	}
	defer g.Close()

	vg, err := g.GetVarGetter(base)
	if err != nil || vg == nil {
		return nil, false
	}
	return lookup(vg.Attributes(), name)
}

func (f *File) groupAttr(p, name string) (interface{}, bool) {
	g, err := f.group(p)
	if err != nil {
		return nil, false
	}
	defer g.Close()

	val, ok := lookup(g.Attributes(), name)
	if !ok || Join(p) == "/" {
		return val, ok
	}
	// some decoder versions answer every group with the root's attributes
	if rootVal, ok := lookup(f.root.Attributes(), name); ok && reflect.DeepEqual(rootVal, val) {
		return nil, false
	}
	return val, true
}

func lookup(attrs api.AttributeMap, name string) (interface{}, bool) {
	if attrs == nil {
		return nil, false
	}
	return attrs.Get(name)
}

func attrString(val interface{}) string {
	switch s := val.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

// Close releases the underlying file.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.root != nil {
		f.root.Close()
		f.root = nil
	}
	return nil
}
