package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/mindweave/internal/db"
)

// NewTestDB returns a migrated in-memory plan store that is closed at the
// end of the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening in-memory plan store: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
