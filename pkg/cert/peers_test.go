package cert

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPeerStorePutGet(t *testing.T) {
	store := NewPeerStore(filepath.Join(t.TempDir(), "peers.json"))

	trust := PeerTrust{
		Address:     "192.168.1.50",
		Name:        "Living Room TV",
		Fingerprint: "abc123",
		PairedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Put(trust); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, found, err := store.Get("192.168.1.50")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false after Put")
	}
	if got.Fingerprint != "abc123" || got.Name != "Living Room TV" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestPeerStoreGetMissing(t *testing.T) {
	store := NewPeerStore(filepath.Join(t.TempDir(), "peers.json"))

	_, found, err := store.Get("10.0.0.1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true on empty store")
	}
}

func TestPeerStoreReplace(t *testing.T) {
	store := NewPeerStore(filepath.Join(t.TempDir(), "peers.json"))

	if err := store.Put(PeerTrust{Address: "host", Fingerprint: "old"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(PeerTrust{Address: "host", Fingerprint: "new"}); err != nil {
		t.Fatalf("Put() replace error = %v", err)
	}

	got, _, err := store.Get("host")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Fingerprint != "new" {
		t.Errorf("Fingerprint = %q, want %q", got.Fingerprint, "new")
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List() length = %d, want 1", len(list))
	}
}

func TestPeerStoreRemove(t *testing.T) {
	store := NewPeerStore(filepath.Join(t.TempDir(), "peers.json"))

	if err := store.Put(PeerTrust{Address: "a", Fingerprint: "1"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(PeerTrust{Address: "b", Fingerprint: "2"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := store.Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	_, found, err := store.Get("a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("record still present after Remove")
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Address != "b" {
		t.Errorf("List() = %+v, want only b", list)
	}
}

func TestPeerStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peers.json")

	if err := NewPeerStore(path).Put(PeerTrust{Address: "tv", Fingerprint: "fp"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, found, err := NewPeerStore(path).Get("tv")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || got.Fingerprint != "fp" {
		t.Errorf("Get() from new instance = %+v, found=%v", got, found)
	}
}

func TestPeerStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peers.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, _, err := NewPeerStore(path).Get("x"); err == nil {
		t.Error("Get() on corrupt file expected error, got nil")
	}
}
