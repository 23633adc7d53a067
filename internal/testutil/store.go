// Package testutil holds fixtures shared by module tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/store"
)

// NewStore opens a fresh SQLite database in a temp directory and closes it
// when the test ends.
func NewStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
