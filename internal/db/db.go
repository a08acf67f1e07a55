package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory plan store.
const MemoryPath = ":memory:"

// pragmas are applied to every new store, in order.
var pragmas = []string{
	"journal_mode = WAL",
	"foreign_keys = ON",
	"busy_timeout = 5000",
}

// OpenDB opens the plan store at path, creating the parent directory when
// needed, and migrates the schema to the current version.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating plan store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening plan store %s: %w", path, err)
	}
	if path == MemoryPath {
		// each in-memory connection would see its own empty schema
		conn.SetMaxOpenConns(1)
	}

	if err := prepare(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func prepare(conn *sql.DB) error {
	for _, p := range pragmas {
		if _, err := conn.Exec("PRAGMA " + p); err != nil {
			return fmt.Errorf("applying pragma %q: %w", p, err)
		}
	}
	if err := Migrate(conn); err != nil {
		return fmt.Errorf("migrating plan store: %w", err)
	}
	return nil
}
