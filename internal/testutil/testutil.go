// Package testutil provides shared test helpers for setting up stores and upload directories.
package testutil

import (
	"os"
	"testing"

	"github.com/marnhus/skillet/internal/store"
	"github.com/marnhus/skillet/internal/uploads"
)

// TestStore creates a temporary SQLite database that is automatically cleaned up.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "skillet-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	st, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestUploads creates a temporary uploads directory with a *uploads.Dir.
func TestUploads(t *testing.T) (string, *uploads.Dir) {
	t.Helper()
	root := t.TempDir()
	dir, err := uploads.NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, dir
}
