package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atvremote/atvremote-go/pkg/log"
)

// Connection errors.
var (
	// ErrConnectionClosed indicates the connection was closed locally.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrConnect indicates the TCP connection could not be established.
	ErrConnect = errors.New("connect failed")

	// ErrTLSHandshake indicates the TLS handshake failed. On a previously
	// paired device this usually means the device no longer trusts the
	// client certificate.
	ErrTLSHandshake = errors.New("tls handshake failed")
)

// Config configures a channel connection.
type Config struct {
	// Certificate is the client identity certificate. Required: devices
	// reject connections without a client certificate.
	Certificate tls.Certificate

	// Channel tags log events with the channel this connection serves.
	Channel log.Channel

	// MaxMessageSize is the maximum message size (default: 64KB).
	MaxMessageSize uint32

	// ConnectTimeout bounds TCP connect plus TLS handshake (default: 10s).
	ConnectTimeout time.Duration

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger
}

// Dial connects to address ("host:port") and completes the TLS handshake.
func Dial(ctx context.Context, address string, cfg Config) (*Conn, error) {
	if cfg.MaxMessageSize == 0 {
		cfg.MaxMessageSize = DefaultMaxMessageSize
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	dialer := &net.Dialer{}
	tcpConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	tlsConn := tls.Client(tcpConn, NewClientTLSConfig(cfg.Certificate))
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("%w: %v", ErrTLSHandshake, err)
	}

	state := tlsConn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		tlsConn.Close()
		return nil, fmt.Errorf("%w: no peer certificate", ErrTLSHandshake)
	}

	connID := uuid.NewString()
	framer := NewFramerWithMaxSize(tlsConn, cfg.MaxMessageSize)
	framer.SetLogger(cfg.Logger, connID)

	return &Conn{
		conn:     tlsConn,
		framer:   framer,
		peerCert: state.PeerCertificates[0],
		connID:   connID,
		channel:  cfg.Channel,
		logger:   cfg.Logger,
		closeCh:  make(chan struct{}),
	}, nil
}

// Conn is a framed TLS connection to one device channel.
type Conn struct {
	conn     *tls.Conn
	framer   *Framer
	peerCert *x509.Certificate
	connID   string
	channel  log.Channel
	logger   log.Logger
	closeCh  chan struct{}

	closeOnce sync.Once
	writeMu   sync.Mutex
	readMu    sync.Mutex
}

// ConnectionID returns the unique ID assigned to this connection.
func (c *Conn) ConnectionID() string {
	return c.connID
}

// PeerCertificate returns the device's leaf certificate.
func (c *Conn) PeerCertificate() *x509.Certificate {
	return c.peerCert
}

// LocalAddr returns the local network address.
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Done returns a channel closed when the connection is closed locally.
func (c *Conn) Done() <-chan struct{} {
	return c.closeCh
}

// Send sends one framed message.
func (c *Conn) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	return c.framer.WriteFrame(data)
}

// Receive reads one framed message. A timeout of 0 blocks until a message
// arrives or the connection fails. Any read error, including a timeout,
// closes the connection: once a frame read has been interrupted the
// stream position is lost.
func (c *Conn) Receive(timeout time.Duration) ([]byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	select {
	case <-c.closeCh:
		return nil, ErrConnectionClosed
	default:
	}

	if timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
		defer c.conn.SetReadDeadline(time.Time{})
	}

	data, err := c.framer.ReadFrame()
	if err != nil {
		select {
		case <-c.closeCh:
			return nil, ErrConnectionClosed
		default:
		}
		// A failed read can leave part of a frame in the buffer, and
		// the length-prefixed stream cannot be resynchronized. This
		// includes deadline expiry mid-frame.
		c.Close()
		return nil, err
	}
	return data, nil
}

// Close closes the connection. Safe to call multiple times; a blocked
// Receive unblocks with an error.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}
