package mbtiles

import (
	"bytes"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestWriteTile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.mbtiles")
	m, err := Open(path, "elements", "pbf")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	if err := m.WriteTile(2, 1, 0, []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteTile failed: %v", err)
	}
	data, err := m.Tile(2, 1, 0)
	if err != nil || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("Tile(2, 1, 0) = %v, %v", data, err)
	}

	// stored in the TMS scheme
	var row int
	if err := m.db.QueryRow("SELECT tile_row FROM tiles WHERE zoom_level = 2 AND tile_column = 1").Scan(&row); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if row != 3 {
		t.Errorf("expected TMS row 3, got %d", row)
	}

	if _, err := m.Tile(2, 0, 0); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestMeta(t *testing.T) {
	m, err := Open(filepath.Join(t.TempDir(), "x.mbtiles"), "x", "pbf")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	if err := m.InsertMeta(map[string]string{"name": "it's quoted", "maxzoom": "12"}); err != nil {
		t.Fatalf("InsertMeta failed: %v", err)
	}
	if v, err := m.Meta("name"); err != nil || v != "it's quoted" {
		t.Errorf("Meta(name) = %q, %v", v, err)
	}
	if v, _ := m.Meta("format"); v != "pbf" {
		t.Errorf("Meta(format) = %q", v)
	}
}
