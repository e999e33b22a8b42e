package pairing

import (
	"context"
	"crypto/x509"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/atvremote/atvremote-go/pkg/cert"
	"github.com/atvremote/atvremote-go/pkg/wire"
)

// fakeDevice scripts the device side of an exchange. Each client message
// kind maps to the reply the device returns.
type fakeDevice struct {
	mu        sync.Mutex
	peerCert  *x509.Certificate
	responses map[string]*wire.PairingMessage
	sent      []string
	queue     [][]byte
	closed    bool
}

func newFakeDevice(t *testing.T, server *cert.Identity) *fakeDevice {
	t.Helper()
	return &fakeDevice{
		peerCert: server.Certificate,
		responses: map[string]*wire.PairingMessage{
			"pairing_request": {
				ProtocolVersion:   wire.ProtocolVersion,
				Status:            wire.StatusOK,
				PairingRequestAck: &wire.PairingRequestAck{ServerName: "Test TV"},
			},
			"pairing_options": {
				ProtocolVersion: wire.ProtocolVersion,
				Status:          wire.StatusOK,
				Options: &wire.PairingOptions{
					OutputEncodings: []wire.PairingEncoding{{Type: wire.EncodingHexadecimal, SymbolLength: 6}},
					PreferredRole:   wire.RoleOutput,
				},
			},
			"pairing_configuration": {
				ProtocolVersion:  wire.ProtocolVersion,
				Status:           wire.StatusOK,
				ConfigurationAck: &wire.PairingConfigurationAck{},
			},
			"pairing_secret": {
				ProtocolVersion: wire.ProtocolVersion,
				Status:          wire.StatusOK,
				SecretAck:       &wire.PairingSecretAck{},
			},
		},
	}
}

func (d *fakeDevice) Send(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errors.New("closed")
	}
	msg, err := wire.DecodePairingMessage(data)
	if err != nil {
		return err
	}
	d.sent = append(d.sent, msg.Kind())
	if reply, ok := d.responses[msg.Kind()]; ok {
		encoded, err := wire.EncodePairingMessage(reply)
		if err != nil {
			return err
		}
		d.queue = append(d.queue, encoded)
	}
	return nil
}

func (d *fakeDevice) Receive(timeout time.Duration) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, errors.New("closed")
	}
	if len(d.queue) == 0 {
		return nil, io.EOF
	}
	next := d.queue[0]
	d.queue = d.queue[1:]
	return next, nil
}

func (d *fakeDevice) PeerCertificate() *x509.Certificate { return d.peerCert }
func (d *fakeDevice) ConnectionID() string               { return "fake-conn" }

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDevice) sentKinds() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.sent...)
}

func staticCode(code string) CodeProvider {
	return func(context.Context) (string, error) { return code, nil }
}

func TestSessionRunSuccess(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	session := NewSession(device, client, "test-client", nil)

	code := correctCode(t, client, server, "beef")
	result, err := session.Run(context.Background(), staticCode(code))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if session.State() != StatePaired {
		t.Errorf("State() = %v, want PAIRED", session.State())
	}
	if result.ServerName != "Test TV" {
		t.Errorf("ServerName = %q, want %q", result.ServerName, "Test TV")
	}
	if result.PeerFingerprint != cert.Fingerprint(server.Certificate) {
		t.Error("PeerFingerprint does not match device certificate")
	}

	want := []string{"pairing_request", "pairing_options", "pairing_configuration", "pairing_secret"}
	got := device.sentKinds()
	if len(got) != len(want) {
		t.Fatalf("sent %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSessionWrongCodeCaughtLocally(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	session := NewSession(device, client, "test-client", nil)

	good := correctCode(t, client, server, "beef")
	bad := "00" + good[2:]
	if bad == good {
		bad = "01" + good[2:]
	}

	_, err := session.Run(context.Background(), staticCode(bad))
	if !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("Run() error = %v, want ErrCodeMismatch", err)
	}
	if session.State() != StateFailed {
		t.Errorf("State() = %v, want FAILED", session.State())
	}

	// The secret must never reach the device when the check byte fails.
	for _, kind := range device.sentKinds() {
		if kind == "pairing_secret" {
			t.Error("secret was sent despite check byte mismatch")
		}
	}
}

func TestSessionDeviceRejectsSecret(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	device.responses["pairing_secret"] = &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusBadSecret,
	}
	session := NewSession(device, client, "test-client", nil)

	_, err := session.Run(context.Background(), staticCode(correctCode(t, client, server, "beef")))
	if !errors.Is(err, ErrCodeMismatch) {
		t.Errorf("Run() error = %v, want ErrCodeMismatch", err)
	}
}

func TestSessionNegotiationFailure(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	device.responses["pairing_options"] = &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusOK,
		Options: &wire.PairingOptions{
			OutputEncodings: []wire.PairingEncoding{{Type: wire.EncodingNumeric, SymbolLength: 4}},
		},
	}
	session := NewSession(device, client, "test-client", nil)

	_, err := session.Run(context.Background(), staticCode("aabbcc"))
	if !errors.Is(err, ErrNegotiation) {
		t.Errorf("Run() error = %v, want ErrNegotiation", err)
	}
	if session.State() != StateFailed {
		t.Errorf("State() = %v, want FAILED", session.State())
	}
}

func TestSessionProtocolViolation(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	// Reply to the request with options instead of an ack.
	device.responses["pairing_request"] = device.responses["pairing_options"]
	session := NewSession(device, client, "test-client", nil)

	_, err := session.Run(context.Background(), staticCode("aabbcc"))
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("Run() error = %v, want ErrProtocol", err)
	}
}

func TestSessionDeviceError(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	device.responses["pairing_request"] = &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusError,
	}
	session := NewSession(device, client, "test-client", nil)

	_, err := session.Run(context.Background(), staticCode("aabbcc"))
	if !errors.Is(err, ErrDeviceError) {
		t.Errorf("Run() error = %v, want ErrDeviceError", err)
	}
}

func TestSessionProviderCalledAfterConfigurationAck(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	session := NewSession(device, client, "test-client", nil)

	code := correctCode(t, client, server, "beef")
	provider := func(context.Context) (string, error) {
		// By the time the user is asked for a code, the configuration
		// must have been acked, i.e. the device is showing the code.
		kinds := device.sentKinds()
		if len(kinds) == 0 || kinds[len(kinds)-1] != "pairing_configuration" {
			t.Errorf("provider called with sent = %v", kinds)
		}
		return code, nil
	}

	if _, err := session.Run(context.Background(), provider); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestSessionContextCancelled(t *testing.T) {
	client, server := testCertPair(t)
	device := newFakeDevice(t, server)
	// Swallow the request so the session blocks waiting for a reply.
	delete(device.responses, "pairing_request")
	session := NewSession(device, client, "test-client", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.Run(ctx, staticCode("aabbcc"))
	if err == nil {
		t.Fatal("Run() with cancelled context returned nil error")
	}
}
