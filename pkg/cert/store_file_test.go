package cert

import (
	"errors"
	"os"
	"testing"
)

func TestFileStoreLoadOrCreate(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "test-client")

	identity, created, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if !created {
		t.Error("created = false on first call, want true")
	}

	// Second call must load the same identity.
	again, created, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate() second call error = %v", err)
	}
	if created {
		t.Error("created = true on second call, want false")
	}
	if again.Fingerprint() != identity.Fingerprint() {
		t.Error("second LoadOrCreate returned a different identity")
	}
}

func TestFileStoreKeyPermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "test-client")

	if _, _, err := store.LoadOrCreate(); err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}

	info, err := os.Stat(store.KeyPath())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("key file permissions = %o, want 0600", perm)
	}
}

func TestFileStoreCorruptRegenerates(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "test-client")

	identity, _, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}

	if err := os.WriteFile(store.KeyPath(), []byte("not a key"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fresh, created, err := store.LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate() after corruption error = %v", err)
	}
	if !created {
		t.Error("created = false after corruption, want true")
	}
	if fresh.Fingerprint() == identity.Fingerprint() {
		t.Error("identity not regenerated after key corruption")
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir(), "test-client")
	if _, err := store.Load(); !os.IsNotExist(err) {
		t.Errorf("Load() on empty dir error = %v, want not-exist", err)
	}
}

func TestFileStoreMismatchedKey(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "test-client")

	if _, _, err := store.LoadOrCreate(); err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}

	// Swap in a key that does not match the stored certificate.
	other, err := Generate("other-client")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := WriteKeyFile(store.KeyPath(), other.PrivateKey); err != nil {
		t.Fatalf("WriteKeyFile() error = %v", err)
	}

	if _, err := store.Load(); !errors.Is(err, ErrIdentityUnusable) {
		t.Errorf("Load() with mismatched key error = %v, want ErrIdentityUnusable", err)
	}
}
