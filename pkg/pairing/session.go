package pairing

import (
	"context"
	"crypto/x509"
	"fmt"
	"sync"
	"time"

	"github.com/atvremote/atvremote-go/pkg/cert"
	"github.com/atvremote/atvremote-go/pkg/log"
	"github.com/atvremote/atvremote-go/pkg/wire"
)

// ServiceName identifies this client type to the device.
const ServiceName = "atvremote"

// Conn is the framed connection a pairing session runs over.
// *transport.Conn satisfies it.
type Conn interface {
	Send(data []byte) error
	Receive(timeout time.Duration) ([]byte, error)
	PeerCertificate() *x509.Certificate
	ConnectionID() string
	Close() error
}

// CodeProvider supplies the code shown on the TV screen. It is called
// exactly once per exchange, after the device starts displaying the code.
type CodeProvider func(ctx context.Context) (string, error)

// Result holds the outcome of a successful exchange.
type Result struct {
	// ServerName is the name the device announced in its request ack.
	ServerName string

	// PeerCertificate is the device certificate seen on this connection.
	PeerCertificate *x509.Certificate

	// PeerFingerprint is the SHA-256 fingerprint to pin for reconnects.
	PeerFingerprint string
}

// Session drives one pairing exchange over an established connection.
type Session struct {
	conn       Conn
	identity   *cert.Identity
	clientName string
	logger     log.Logger

	mu    sync.Mutex
	state State
}

// NewSession creates a pairing session. The logger may be nil.
func NewSession(conn Conn, identity *cert.Identity, clientName string, logger log.Logger) *Session {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Session{
		conn:       conn,
		identity:   identity,
		clientName: clientName,
		logger:     logger,
	}
}

// State returns the current exchange state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(next State, reason string) {
	s.mu.Lock()
	old := s.state
	s.state = next
	s.mu.Unlock()

	s.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.conn.ConnectionID(),
		Layer:        log.LayerPairing,
		Category:     log.CategoryState,
		Channel:      log.ChannelPairing,
		StateChange: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

// Run performs the full exchange. On any error the session closes the
// connection and ends in StateFailed; the caller may retry with a new
// session on a new connection.
func (s *Session) Run(ctx context.Context, provider CodeProvider) (*Result, error) {
	result, err := s.run(ctx, provider)
	if err != nil {
		s.setState(StateFailed, err.Error())
		s.conn.Close()
		return nil, err
	}
	return result, nil
}

func (s *Session) run(ctx context.Context, provider CodeProvider) (*Result, error) {
	// Step 1: pairing request.
	s.setState(StateRequestSent, "")
	reply, err := s.exchange(ctx, &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusOK,
		PairingRequest: &wire.PairingRequest{
			ServiceName: ServiceName,
			ClientName:  s.clientName,
		},
	})
	if err != nil {
		return nil, err
	}
	if reply.PairingRequestAck == nil {
		return nil, fmt.Errorf("%w: expected pairing_request_ack, got %s", ErrProtocol, reply.Kind())
	}
	serverName := reply.PairingRequestAck.ServerName

	// Step 2: options. The client only reads hexadecimal codes off the
	// screen, so that is all it offers.
	hexEncoding := wire.PairingEncoding{Type: wire.EncodingHexadecimal, SymbolLength: CodeLength}
	reply, err = s.exchange(ctx, &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusOK,
		Options: &wire.PairingOptions{
			InputEncodings: []wire.PairingEncoding{hexEncoding},
			PreferredRole:  wire.RoleInput,
		},
	})
	if err != nil {
		return nil, err
	}
	if reply.Options == nil {
		return nil, fmt.Errorf("%w: expected options, got %s", ErrProtocol, reply.Kind())
	}
	if !serverSupports(reply.Options, hexEncoding) {
		return nil, fmt.Errorf("%w: device offers no hexadecimal/%d encoding", ErrNegotiation, CodeLength)
	}
	s.setState(StateOptionNegotiated, "")

	// Step 3: configuration. The device starts displaying the code once
	// it acks this.
	s.setState(StateConfigurationSent, "")
	reply, err = s.exchange(ctx, &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusOK,
		Configuration: &wire.PairingConfiguration{
			Encoding:   hexEncoding,
			ClientRole: wire.RoleInput,
		},
	})
	if err != nil {
		return nil, err
	}
	if reply.ConfigurationAck == nil {
		return nil, fmt.Errorf("%w: expected configuration_ack, got %s", ErrProtocol, reply.Kind())
	}

	// Step 4: wait for the user to read the code off the screen.
	s.setState(StateAwaitingCode, "")
	code, err := provider(ctx)
	if err != nil {
		return nil, fmt.Errorf("code provider: %w", err)
	}

	secret, err := ComputeSecret(s.identity.Certificate, s.conn.PeerCertificate(), code)
	if err != nil {
		return nil, err
	}
	ok, err := VerifyCode(secret, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: check byte failed", ErrCodeMismatch)
	}

	// Step 5: secret.
	s.setState(StateSecretSent, "")
	reply, err = s.exchange(ctx, &wire.PairingMessage{
		ProtocolVersion: wire.ProtocolVersion,
		Status:          wire.StatusOK,
		Secret:          &wire.PairingSecret{Secret: secret},
	})
	if err != nil {
		return nil, err
	}
	if reply.SecretAck == nil {
		return nil, fmt.Errorf("%w: expected secret_ack, got %s", ErrProtocol, reply.Kind())
	}

	s.setState(StatePaired, "")
	peerCert := s.conn.PeerCertificate()
	return &Result{
		ServerName:      serverName,
		PeerCertificate: peerCert,
		PeerFingerprint: cert.Fingerprint(peerCert),
	}, nil
}

// exchange sends one message and waits for the device's reply.
func (s *Session) exchange(ctx context.Context, out *wire.PairingMessage) (*wire.PairingMessage, error) {
	data, err := wire.EncodePairingMessage(out)
	if err != nil {
		return nil, err
	}
	if err := s.conn.Send(data); err != nil {
		return nil, fmt.Errorf("sending %s: %w", out.Kind(), err)
	}
	s.logMessage(log.DirectionOut, out, len(data))

	reply, size, err := s.receive(ctx)
	if err != nil {
		return nil, fmt.Errorf("awaiting reply to %s: %w", out.Kind(), err)
	}
	s.logMessage(log.DirectionIn, reply, size)

	if reply.Status != wire.StatusOK {
		return nil, statusError(reply.Status)
	}
	return reply, nil
}

// receive reads and decodes the next message, honoring ctx cancellation.
// The blocking read is abandoned by closing the connection.
func (s *Session) receive(ctx context.Context) (*wire.PairingMessage, int, error) {
	type readResult struct {
		data []byte
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		data, err := s.conn.Receive(0)
		ch <- readResult{data, err}
	}()

	select {
	case <-ctx.Done():
		s.conn.Close()
		return nil, 0, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, 0, r.err
		}
		msg, err := wire.DecodePairingMessage(r.data)
		if err != nil {
			return nil, 0, err
		}
		return msg, len(r.data), nil
	}
}

func (s *Session) logMessage(direction log.Direction, msg *wire.PairingMessage, size int) {
	status := uint32(msg.Status)
	s.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.conn.ConnectionID(),
		Direction:    direction,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Channel:      log.ChannelPairing,
		Message: &log.MessageEvent{
			Kind:   msg.Kind(),
			Size:   size,
			Status: &status,
		},
	})
}

// serverSupports reports whether the device's options include the encoding
// in either direction. Devices that advertise no encodings at all are
// accepted; older firmware omits them.
func serverSupports(opts *wire.PairingOptions, want wire.PairingEncoding) bool {
	if len(opts.InputEncodings) == 0 && len(opts.OutputEncodings) == 0 {
		return true
	}
	for _, e := range opts.InputEncodings {
		if e == want {
			return true
		}
	}
	for _, e := range opts.OutputEncodings {
		if e == want {
			return true
		}
	}
	return false
}
