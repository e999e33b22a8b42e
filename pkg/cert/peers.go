package cert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// trustStateVersion is the on-disk schema version for the peer trust file.
const trustStateVersion = 1

// PeerTrust records the device certificate pinned when pairing completed.
type PeerTrust struct {
	// Address is the device host (IP or hostname, without port).
	Address string `json:"address"`

	// Name is the device name parsed from its certificate, if known.
	Name string `json:"name,omitempty"`

	// Fingerprint is the SHA-256 digest of the device certificate.
	Fingerprint string `json:"fingerprint"`

	// PairedAt is when pairing completed.
	PairedAt time.Time `json:"paired_at"`
}

type trustState struct {
	Version int         `json:"version"`
	SavedAt time.Time   `json:"saved_at"`
	Peers   []PeerTrust `json:"peers"`
}

// PeerStore persists peer trust records as a JSON file.
// It is safe for concurrent use.
type PeerStore struct {
	mu   sync.Mutex
	path string
}

// NewPeerStore creates a peer trust store backed by the given file path.
func NewPeerStore(path string) *PeerStore {
	return &PeerStore{path: path}
}

// Get returns the trust record for a device address.
func (s *PeerStore) Get(address string) (PeerTrust, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return PeerTrust{}, false, err
	}
	for _, p := range state.Peers {
		if p.Address == address {
			return p, true, nil
		}
	}
	return PeerTrust{}, false, nil
}

// Put inserts or replaces the trust record for trust.Address.
func (s *PeerStore) Put(trust PeerTrust) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i, p := range state.Peers {
		if p.Address == trust.Address {
			state.Peers[i] = trust
			replaced = true
			break
		}
	}
	if !replaced {
		state.Peers = append(state.Peers, trust)
	}
	return s.save(state)
}

// Remove deletes the trust record for a device address, if present.
func (s *PeerStore) Remove(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	kept := state.Peers[:0]
	for _, p := range state.Peers {
		if p.Address != address {
			kept = append(kept, p)
		}
	}
	state.Peers = kept
	return s.save(state)
}

// List returns all trust records, sorted by address.
func (s *PeerStore) List() ([]PeerTrust, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(state.Peers, func(i, j int) bool {
		return state.Peers[i].Address < state.Peers[j].Address
	})
	return state.Peers, nil
}

func (s *PeerStore) load() (*trustState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &trustState{Version: trustStateVersion}, nil
		}
		return nil, err
	}
	var state trustState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing peer trust file: %w", err)
	}
	if state.Version != trustStateVersion {
		return nil, fmt.Errorf("unsupported peer trust file version %d", state.Version)
	}
	return &state, nil
}

func (s *PeerStore) save(state *trustState) error {
	state.Version = trustStateVersion
	state.SavedAt = time.Now().UTC()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0600)
}
