package testutil

import (
	"path/filepath"
	"testing"

	"github.com/roach88/signed64/internal/store"
)

// OpenTestStore opens a file-backed store in t.TempDir and closes it on
// cleanup. Returns the store and its path, for tests that also hand the
// path to a command.
func OpenTestStore(t testing.TB) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signed64.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}
