package transport

import (
	"crypto/tls"
)

// Default ports for the two protocol channels.
const (
	// DefaultRemotePort is the remote control channel port.
	DefaultRemotePort = 6466

	// DefaultPairingPort is the pairing channel port.
	DefaultPairingPort = 6467
)

// NewClientTLSConfig creates the TLS configuration for connecting to an
// Android TV. Chain verification is off: devices present self-signed
// certificates and trust is established by pairing, then maintained by
// fingerprint pinning (see cert.PeerTrust).
func NewClientTLSConfig(certificate tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates:       []tls.Certificate{certificate},
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true,
	}
}
