package testing

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// CreateTestDB creates an in-memory SQLite test database.
// Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every pooled connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateTestDBFile creates a SQLite database file in a temp directory, runs
// the given statements against it and closes it. Returns the file path.
func CreateTestDBFile(t *testing.T, name string, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create test database file: %v", err)
	}
	defer db.Close()

	ExecAll(t, db, statements...)
	return path
}

// ExecAll runs each statement, failing the test on the first error
func ExecAll(t *testing.T, db *sql.DB, statements ...string) {
	t.Helper()

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to execute %q: %v", stmt, err)
		}
	}
}
