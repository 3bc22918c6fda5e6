package hdf

import (
	"path"
	"strings"
)

// Source is a read-only view of a hierarchical container. Paths are
// absolute and slash separated, e.g. "/CONSTANTS/number".
type Source interface {
	// Groups lists the names of the subgroups directly below dir.
	Groups(dir string) ([]string, error)
	// Array reads the dataset at p in full.
	Array(p string) (*Array, error)
	// Attr returns the string form of an attribute of the dataset at p.
	Attr(p, name string) (string, bool)
	Close() error
}

// Join builds an absolute container path from its elements.
func Join(elem ...string) string {
	return path.Join(append([]string{"/"}, elem...)...)
}

// split returns the directory and base name of p.
func split(p string) (string, string) {
	p = Join(p)
	i := strings.LastIndex(p, "/")
	dir, name := p[:i], p[i+1:]
	if dir == "" {
		dir = "/"
	}
	return dir, name
}
