// Package mbtiles writes tile sets into an MBTiles (sqlite) file.
package mbtiles

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb/maptile"
)

// MBTiles is an open MBTiles file. It is safe for concurrent use.
type MBTiles struct {
	mu             sync.Mutex
	db             *sql.DB
	tileInsertStmt *sql.Stmt
}

// Open opens or creates the MBTiles file at path.
func Open(path string, name string, format string) (*MBTiles, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA application_id = 0x4d504258;
		CREATE TABLE IF NOT EXISTS metadata (name text, value text);
		CREATE UNIQUE INDEX IF NOT EXISTS metadata_index on metadata (name);
		CREATE TABLE IF NOT EXISTS tiles (zoom_level integer, tile_column integer, tile_row integer, tile_data blob);
		CREATE UNIQUE INDEX IF NOT EXISTS tile_index on tiles (zoom_level, tile_column, tile_row);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mbtiles: creating schema: %w", err)
	}

	tileInsertStmt, err := db.Prepare("INSERT OR REPLACE INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?);")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mbtiles: preparing insert: %w", err)
	}

	m := &MBTiles{db: db, tileInsertStmt: tileInsertStmt}
	if err := m.InsertMeta(map[string]string{"name": name, "format": format}); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// Close releases the db file
func (m *MBTiles) Close() error {
	if err := m.tileInsertStmt.Close(); err != nil {
		m.db.Close()
		return err
	}
	return m.db.Close()
}

// WriteTile stores the tile at z, x, y given in the XYZ scheme. MBTiles
// counts rows from the south (TMS), so y is flipped.
func (m *MBTiles) WriteTile(z maptile.Zoom, x, y uint32, data []byte) error {
	row := (uint32(1) << uint32(z)) - 1 - y

	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.tileInsertStmt.Exec(int(z), x, row, data)
	return err
}

// InsertMeta sets metadata entries
func (m *MBTiles) InsertMeta(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	for name, value := range entries {
		if _, err := tx.Exec("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?);", name, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("mbtiles: metadata %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// Tile reads the tile at z, x, y in the XYZ scheme.
func (m *MBTiles) Tile(z maptile.Zoom, x, y uint32) ([]byte, error) {
	row := (uint32(1) << uint32(z)) - 1 - y

	m.mu.Lock()
	defer m.mu.Unlock()

	var data []byte
	err := m.db.QueryRow("SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?;", int(z), x, row).Scan(&data)
	return data, err
}

// Meta reads a metadata entry.
func (m *MBTiles) Meta(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var value string
	err := m.db.QueryRow("SELECT value FROM metadata WHERE name = ?;", name).Scan(&value)
	return value, err
}
