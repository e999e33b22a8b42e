package cert

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File name constants for identity storage.
const (
	identityCertFile = "client.pem"
	identityKeyFile  = "client.key"
)

// FileStore persists the client identity under a base directory.
// It is safe for concurrent use.
type FileStore struct {
	mu         sync.Mutex
	baseDir    string
	clientName string
}

// NewFileStore creates a file-based identity store. The baseDir is created
// on first save if it does not exist.
func NewFileStore(baseDir, clientName string) *FileStore {
	return &FileStore{baseDir: baseDir, clientName: clientName}
}

// CertPath returns the path of the certificate PEM file.
func (s *FileStore) CertPath() string {
	return filepath.Join(s.baseDir, identityCertFile)
}

// KeyPath returns the path of the private key PEM file.
func (s *FileStore) KeyPath() string {
	return filepath.Join(s.baseDir, identityKeyFile)
}

// LoadOrCreate returns the stored identity, generating and persisting a
// fresh one if none exists or the stored material is unusable. Devices pin
// the public key at pairing time, so a regenerated identity requires
// pairing again.
func (s *FileStore) LoadOrCreate() (*Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, err := s.load()
	if err == nil {
		return identity, false, nil
	}
	if !os.IsNotExist(err) {
		// Corrupt or mismatched material. Regenerate rather than fail:
		// the device side recovers through re-pairing either way.
		_ = os.Remove(s.CertPath())
		_ = os.Remove(s.KeyPath())
	}

	identity, err = Generate(s.clientName)
	if err != nil {
		return nil, false, err
	}
	if err := s.save(identity); err != nil {
		return nil, false, err
	}
	return identity, true, nil
}

// Load returns the stored identity without creating one.
func (s *FileStore) Load() (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (*Identity, error) {
	certificate, err := ReadCertFile(s.CertPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrIdentityUnusable, err)
	}
	key, err := ReadKeyFile(s.KeyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrIdentityUnusable, err)
	}
	if !keyMatchesCert(key, certificate) {
		return nil, fmt.Errorf("%w: key does not match certificate", ErrIdentityUnusable)
	}
	return &Identity{Certificate: certificate, PrivateKey: key}, nil
}

func (s *FileStore) save(identity *Identity) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	if err := WriteCertFile(s.CertPath(), identity.Certificate); err != nil {
		return err
	}
	return WriteKeyFile(s.KeyPath(), identity.PrivateKey)
}

func keyMatchesCert(key *rsa.PrivateKey, cert *x509.Certificate) bool {
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return false
	}
	return pub.N.Cmp(key.N) == 0 && pub.E == key.E
}
