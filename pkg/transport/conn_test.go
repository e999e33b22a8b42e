package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/atvremote/atvremote-go/pkg/cert"
	"github.com/atvremote/atvremote-go/pkg/log"
)

// startEchoServer starts a TLS listener that echoes frames back until the
// client disconnects.
func startEchoServer(t *testing.T) (addr string, stop func()) {
	t.Helper()

	identity, err := cert.Generate("test-device")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	listener, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{identity.TLSCertificate()},
		ClientAuth:   tls.RequireAnyClientCert,
		MinVersion:   tls.VersionTLS12,
	})
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		framer := NewFramer(conn)
		for {
			payload, err := framer.ReadFrame()
			if err != nil {
				return
			}
			if err := framer.WriteFrame(payload); err != nil {
				return
			}
		}
	}()

	return listener.Addr().String(), func() {
		listener.Close()
		<-done
	}
}

func testClientConfig(t *testing.T) Config {
	t.Helper()
	identity, err := cert.Generate("test-client")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return Config{
		Certificate: identity.TLSCertificate(),
		Channel:     log.ChannelRemote,
	}
}

func TestDialSendReceive(t *testing.T) {
	addr, stop := startEchoServer(t)
	defer stop()

	conn, err := Dial(context.Background(), addr, testClientConfig(t))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if conn.ConnectionID() == "" {
		t.Error("ConnectionID() is empty")
	}
	if conn.PeerCertificate() == nil {
		t.Fatal("PeerCertificate() is nil")
	}
	if conn.PeerCertificate().Subject.CommonName != "test-device" {
		t.Errorf("peer CN = %q, want test-device", conn.PeerCertificate().Subject.CommonName)
	}

	payload := []byte{0x52, 0x04, 0x08, 0x01, 0x10, 0x03}
	if err := conn.Send(payload); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	echoed, err := conn.Receive(5 * time.Second)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if string(echoed) != string(payload) {
		t.Errorf("Receive() = %x, want %x", echoed, payload)
	}
}

func TestDialRefused(t *testing.T) {
	// Grab a port that is not listening.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	_, err = Dial(context.Background(), addr, testClientConfig(t))
	if !errors.Is(err, ErrConnect) {
		t.Errorf("Dial() error = %v, want ErrConnect", err)
	}
}

func TestDialNonTLSPeer(t *testing.T) {
	// A listener that accepts and immediately closes makes the TLS
	// handshake fail.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	_, err = Dial(context.Background(), l.Addr().String(), testClientConfig(t))
	if !errors.Is(err, ErrTLSHandshake) {
		t.Errorf("Dial() error = %v, want ErrTLSHandshake", err)
	}
}

func TestConnCloseUnblocksReceive(t *testing.T) {
	addr, stop := startEchoServer(t)
	defer stop()

	conn, err := Dial(context.Background(), addr, testClientConfig(t))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := conn.Receive(0)
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	conn.Close()

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("Receive() returned nil after Close")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Receive() did not unblock after Close")
	}

	// Send after close fails fast.
	if err := conn.Send([]byte{0x01}); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Send() after Close error = %v, want ErrConnectionClosed", err)
	}
}

func TestReceiveTimeoutMidFrameClosesConn(t *testing.T) {
	identity, err := cert.Generate("test-device")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	listener, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{identity.TLSCertificate()},
		ClientAuth:   tls.RequireAnyClientCert,
		MinVersion:   tls.VersionTLS12,
	})
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer listener.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		// Promise an 8-byte frame but deliver only half of it.
		conn.Write([]byte{0x08, 0x01, 0x02, 0x03, 0x04})
		<-stop
	}()

	conn, err := Dial(context.Background(), listener.Addr().String(), testClientConfig(t))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if _, err := conn.Receive(100 * time.Millisecond); err == nil {
		t.Fatal("Receive() of a stalled frame returned nil error")
	}

	// The stream position is lost, so the connection must be dead rather
	// than handing out bytes from the middle of the stalled frame.
	if _, err := conn.Receive(time.Second); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Receive() after mid-frame timeout error = %v, want ErrConnectionClosed", err)
	}
	if err := conn.Send([]byte{0x01}); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Send() after mid-frame timeout error = %v, want ErrConnectionClosed", err)
	}
}

func TestReceiveTimeout(t *testing.T) {
	addr, stop := startEchoServer(t)
	defer stop()

	conn, err := Dial(context.Background(), addr, testClientConfig(t))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	start := time.Now()
	_, err = conn.Receive(100 * time.Millisecond)
	if err == nil {
		t.Fatal("Receive() with no traffic returned nil error")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Receive() took %v, deadline not applied", elapsed)
	}
}
