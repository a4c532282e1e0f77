package testsupport

import (
	"path/filepath"
	"testing"

	"lrcloud/internal/history"
)

// MustOpenHistory opens an upload ledger in a per-test temp directory
// and closes it when the test finishes.
func MustOpenHistory(t testing.TB) *history.Store {
	t.Helper()

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close history store: %v", err)
		}
	})
	return store
}
