package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.SetItem(KeyToken, "tok-123"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	got, ok := store.GetItem(KeyToken)
	if !ok || got != "tok-123" {
		t.Errorf("GetItem = %q, %v; want tok-123, true", got, ok)
	}

	if err := store.RemoveItem(KeyToken); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if _, ok := store.GetItem(KeyToken); ok {
		t.Error("item survived RemoveItem")
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, ok := store.GetItem("nothing"); ok {
		t.Error("Expected miss for absent key")
	}
}

func TestFileStoreRemoveAbsentKey(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := store.RemoveItem("nothing"); err != nil {
		t.Errorf("RemoveItem on absent key should be a no-op, got %v", err)
	}
}

// The token is a credential: its file must not be group- or world-readable.
func TestFileStorePermissions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := store.SetItem(KeyToken, "secret"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, KeyToken))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Errorf("token file mode %v readable by others", perm)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "state")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
