package cert

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// IdentityValidity is the validity period for client certificates.
// Devices pin the public key, not the expiry, but a generous window avoids
// spurious TLS failures on devices that do check it.
const IdentityValidity = 10 * 365 * 24 * time.Hour

// Identity errors.
var (
	// ErrIdentityUnusable indicates the stored identity could not be
	// loaded or does not match its private key.
	ErrIdentityUnusable = errors.New("identity material unusable")

	// ErrNotRSA indicates a certificate whose public key is not RSA.
	// The pairing secret is derived from RSA modulus and exponent, so
	// other key types cannot pair.
	ErrNotRSA = errors.New("certificate public key is not RSA")
)

// Identity is the client's self-signed certificate and private key.
type Identity struct {
	Certificate *x509.Certificate
	PrivateKey  *rsa.PrivateKey
}

// Generate creates a new RSA-2048 identity with the given client name as
// the certificate subject.
func Generate(clientName string) (*Identity, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generating RSA key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 64))
	if err != nil {
		return nil, fmt.Errorf("generating serial: %w", err)
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName: clientName,
		},
		DNSNames:              []string{clientName},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(IdentityValidity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLenZero:        true,
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("creating certificate: %w", err)
	}
	parsed, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parsing generated certificate: %w", err)
	}

	return &Identity{Certificate: parsed, PrivateKey: key}, nil
}

// TLSCertificate returns the identity as a tls.Certificate for client
// authentication.
func (i *Identity) TLSCertificate() tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{i.Certificate.Raw},
		PrivateKey:  i.PrivateKey,
		Leaf:        i.Certificate,
	}
}

// PublicKey returns the identity's RSA public key.
func (i *Identity) PublicKey() *rsa.PublicKey {
	return &i.PrivateKey.PublicKey
}

// Fingerprint returns the identity certificate fingerprint.
func (i *Identity) Fingerprint() string {
	return Fingerprint(i.Certificate)
}

// Fingerprint returns the lowercase hex SHA-256 digest of the certificate's
// SubjectPublicKeyInfo. Keyed on the public key rather than the whole
// certificate so a device re-issuing its certificate with the same key
// still matches the pinned record.
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
	return hex.EncodeToString(sum[:])
}

// RSAPublicKey extracts the RSA public key from a certificate.
func RSAPublicKey(cert *x509.Certificate) (*rsa.PublicKey, error) {
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSA
	}
	return pub, nil
}

// oidDNQualifier is the X.520 dnQualifier attribute.
var oidDNQualifier = asn1.ObjectIdentifier{2, 5, 4, 46}

// DeviceNameFromCert extracts the human-readable device name and MAC
// address embedded in an Android TV server certificate subject.
//
// Two layouts exist in the wild:
//
//	CN=atvremote/darcy/darcy/SHIELD Android TV/XX:XX:XX:XX:XX:XX
//	dnQualifier=fugu/fugu/Nexus Player, CN=atvremote/XX:XX:XX:XX:XX:XX
//
// The name is the last dnQualifier component when present, otherwise the
// second-to-last CN component. The MAC is always the last CN component.
func DeviceNameFromCert(cert *x509.Certificate) (name, mac string) {
	cnParts := strings.Split(cert.Subject.CommonName, "/")

	var dnQualifier string
	for _, atv := range cert.Subject.Names {
		if atv.Type.Equal(oidDNQualifier) {
			if s, ok := atv.Value.(string); ok {
				dnQualifier = s
			}
		}
	}

	if dnQualifier != "" {
		parts := strings.Split(dnQualifier, "/")
		name = parts[len(parts)-1]
	} else if len(cnParts) >= 2 {
		name = cnParts[len(cnParts)-2]
	}
	if len(cnParts) >= 1 {
		mac = cnParts[len(cnParts)-1]
	}
	return name, mac
}
