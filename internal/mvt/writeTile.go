package mvt

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nclwater/shetranio/internal/utils"
	"github.com/paulmach/orb/maptile"
)

// DirWriter writes tiles to Dir/z/x/y.pbf.
type DirWriter struct {
	Dir string

	mu      sync.Mutex
	created map[string]bool
}

// WriteTile implements TileWriter.
func (d *DirWriter) WriteTile(z maptile.Zoom, x, y uint32, data []byte) error {
	colDir := filepath.Join(d.Dir, fmt.Sprintf("%d", z), fmt.Sprintf("%d", x))
	if err := d.ensure(colDir); err != nil {
		return err
	}
	return writeTile(filepath.Join(colDir, fmt.Sprintf("%d.pbf", y)), data)
}

func (d *DirWriter) ensure(dir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.created[dir] {
		return nil
	}
	if err := utils.EnsureDirectory(dir); err != nil {
		return err
	}
	if d.created == nil {
		d.created = map[string]bool{}
	}
	d.created[dir] = true
	return nil
}

func writeTile(tilePath string, data []byte) error {
	f, err := os.Create(tilePath)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
