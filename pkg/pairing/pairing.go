package pairing

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/atvremote/atvremote-go/pkg/cert"
	"github.com/atvremote/atvremote-go/pkg/log"
	"github.com/atvremote/atvremote-go/pkg/transport"
)

// DefaultClientName is used when Config.ClientName is empty.
const DefaultClientName = "atvremote-go"

// Config configures a pairing attempt.
type Config struct {
	// Port is the pairing channel port (default 6467).
	Port int

	// Identity is the client identity. Required.
	Identity *cert.Identity

	// ClientName is shown in the device's paired devices list.
	ClientName string

	// ConnectTimeout bounds the TCP connect plus TLS handshake.
	ConnectTimeout time.Duration

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.Port == 0 {
		cfg.Port = transport.DefaultPairingPort
	}
	if cfg.ClientName == "" {
		cfg.ClientName = DefaultClientName
	}
	return cfg
}

// Pair connects to the device's pairing channel, runs the exchange with
// the code obtained from provider, and returns the trust record to pin.
func Pair(ctx context.Context, host string, provider CodeProvider, cfg Config) (*cert.PeerTrust, error) {
	if cfg.Identity == nil {
		return nil, errors.New("identity is required")
	}
	if provider == nil {
		return nil, errors.New("code provider is required")
	}
	c := cfg.withDefaults()

	conn, err := transport.Dial(ctx, net.JoinHostPort(host, strconv.Itoa(c.Port)), transport.Config{
		Certificate:    c.Identity.TLSCertificate(),
		Channel:        log.ChannelPairing,
		ConnectTimeout: c.ConnectTimeout,
		Logger:         c.Logger,
	})
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	session := NewSession(conn, c.Identity, c.ClientName, c.Logger)
	result, err := session.Run(ctx, provider)
	if err != nil {
		return nil, err
	}

	name := result.ServerName
	if name == "" {
		name, _ = cert.DeviceNameFromCert(result.PeerCertificate)
	}

	return &cert.PeerTrust{
		Address:     host,
		Name:        name,
		Fingerprint: result.PeerFingerprint,
		PairedAt:    time.Now().UTC(),
	}, nil
}

// DeviceInfo is what a probe learns from the device certificate.
type DeviceInfo struct {
	Name        string
	MAC         string
	Fingerprint string
}

// Probe connects to the pairing channel just long enough to read the
// device certificate, without starting an exchange. Works on unpaired
// devices, so it serves discovery flows that want to show a device name
// before the user decides to pair.
func Probe(ctx context.Context, host string, cfg Config) (*DeviceInfo, error) {
	if cfg.Identity == nil {
		return nil, errors.New("identity is required")
	}
	c := cfg.withDefaults()

	conn, err := transport.Dial(ctx, net.JoinHostPort(host, strconv.Itoa(c.Port)), transport.Config{
		Certificate:    c.Identity.TLSCertificate(),
		Channel:        log.ChannelPairing,
		ConnectTimeout: c.ConnectTimeout,
		Logger:         c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", host, err)
	}
	defer conn.Close()

	peerCert := conn.PeerCertificate()
	name, mac := cert.DeviceNameFromCert(peerCert)
	return &DeviceInfo{
		Name:        name,
		MAC:         mac,
		Fingerprint: cert.Fingerprint(peerCert),
	}, nil
}
