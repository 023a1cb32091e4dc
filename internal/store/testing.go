package store

import (
	"path/filepath"
	"testing"
)

// NewTestDB creates a DB backed by a throwaway file for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
