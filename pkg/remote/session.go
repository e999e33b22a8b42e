package remote

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/atvremote/atvremote-go/pkg/cert"
	"github.com/atvremote/atvremote-go/pkg/log"
	"github.com/atvremote/atvremote-go/pkg/transport"
	"github.com/atvremote/atvremote-go/pkg/wire"
)

// DefaultIdleTimeout is how long the session tolerates inbound silence
// before declaring the device dead. Devices ping roughly every 5 seconds,
// so this allows three missed pings.
const DefaultIdleTimeout = 16 * time.Second

// SupportedFeatures is the capability set this client requests during the
// configuration exchange.
const SupportedFeatures = wire.FeaturePing | wire.FeatureKey | wire.FeatureIME |
	wire.FeaturePower | wire.FeatureVolume | wire.FeatureAppLink

// Conn is the framed connection a session runs over.
// *transport.Conn satisfies it.
type Conn interface {
	Send(data []byte) error
	Receive(timeout time.Duration) ([]byte, error)
	PeerCertificate() *x509.Certificate
	ConnectionID() string
	Close() error
}

// DialFunc opens a connection to the device's remote channel.
type DialFunc func(ctx context.Context) (Conn, error)

// Volume is the device volume state as last reported.
type Volume struct {
	Level uint32
	Max   uint32
	Muted bool
}

// Config configures a Session.
type Config struct {
	// Host is the device address. Required unless Dial is set.
	Host string

	// Port is the remote channel port (default: 6466).
	Port int

	// ClientName identifies this client in the configuration exchange.
	ClientName string

	// Identity is the paired client certificate. Required unless Dial
	// is set.
	Identity *cert.Identity

	// PeerStore pins the device fingerprint recorded at pairing time.
	// Nil disables pinning.
	PeerStore *cert.PeerStore

	// IdleTimeout bounds inbound silence (default: DefaultIdleTimeout).
	IdleTimeout time.Duration

	// ConnectTimeout bounds TCP connect plus TLS handshake.
	ConnectTimeout time.Duration

	// Reconnect enables automatic reconnection with backoff after an
	// unexpected disconnect.
	Reconnect bool

	// Dial overrides the default transport dialer.
	Dial DialFunc

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger

	// OnStateChange is called on every session state transition.
	OnStateChange func(old, new State)

	// OnPowerChanged is called when the device reports its power state.
	OnPowerChanged func(on bool)

	// OnCurrentApp is called when the foreground app package changes.
	OnCurrentApp func(pkg string)

	// OnVolumeChanged is called when the device reports volume state.
	OnVolumeChanged func(v Volume)

	// OnDisconnect is called when an established session is lost, with
	// the cause. Not called on Stop.
	OnDisconnect func(err error)
}

// Session is a long-lived control session with one device.
type Session struct {
	cfg     Config
	dial    DialFunc
	logger  log.Logger
	backoff *Backoff

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu           sync.Mutex
	state        State
	conn         Conn
	connDone     chan struct{}
	stopped      bool
	reconnecting bool
	kaExpired    bool

	lastSeen       time.Time
	device         wire.RemoteDeviceInfo
	deviceFeatures wire.Feature
	powerOn        bool
	currentApp     string
	volume         Volume
	imeCounter     uint32
	fieldCounter   uint32
}

// NewSession creates a session. Connect must be called to establish it.
func NewSession(cfg Config) *Session {
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Port == 0 {
		cfg.Port = transport.DefaultRemotePort
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}

	s := &Session{
		cfg:     cfg,
		logger:  cfg.Logger,
		backoff: NewBackoff(),
		stopCh:  make(chan struct{}),
	}
	s.dial = cfg.Dial
	if s.dial == nil {
		s.dial = s.dialTransport
	}
	return s
}

func (s *Session) dialTransport(ctx context.Context) (Conn, error) {
	address := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	return transport.Dial(ctx, address, transport.Config{
		Certificate:    s.cfg.Identity.TLSCertificate(),
		Channel:        log.ChannelRemote,
		ConnectTimeout: s.cfg.ConnectTimeout,
		Logger:         s.cfg.Logger,
	})
}

// Connect establishes the session: dial, verify the pinned fingerprint,
// run the configuration exchange, then start the read loop and keep-alive
// watchdog. Returns once the session is connected or failed.
func (s *Session) Connect(ctx context.Context) error {
	// Check and transition under one lock hold so two concurrent
	// Connect calls cannot both claim the disconnected session.
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrSessionStopped
	}
	if s.state != StateDisconnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.state = StateConnecting
	s.mu.Unlock()

	s.notifyState(StateDisconnected, StateConnecting, "")

	conn, err := s.dial(ctx)
	if err != nil {
		s.setState(StateDisconnected, err.Error())
		return err
	}

	if err := s.verifyTrust(conn); err != nil {
		conn.Close()
		s.setState(StateDisconnected, err.Error())
		return err
	}

	s.setState(StateConfiguring, "")
	if err := s.handshake(ctx, conn); err != nil {
		conn.Close()
		s.setState(StateDisconnected, err.Error())
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		conn.Close()
		return ErrSessionStopped
	}
	s.conn = conn
	s.connDone = done
	s.kaExpired = false
	s.lastSeen = time.Now()
	s.mu.Unlock()

	s.setState(StateConnected, "")
	s.backoff.Reset()

	s.wg.Add(2)
	go s.readLoop(conn, done)
	go s.watchdog(conn, done)
	return nil
}

// verifyTrust compares the device certificate against the fingerprint
// pinned at pairing time. A device may legitimately rotate its certificate,
// in which case the user must re-pair.
func (s *Session) verifyTrust(conn Conn) error {
	if s.cfg.PeerStore == nil {
		return nil
	}
	trust, ok, err := s.cfg.PeerStore.Get(s.cfg.Host)
	if err != nil || !ok {
		return nil
	}
	fp := cert.Fingerprint(conn.PeerCertificate())
	if trust.Fingerprint != fp {
		return fmt.Errorf("%w: pinned %.16s, device presented %.16s",
			ErrTrustChanged, trust.Fingerprint, fp)
	}
	return nil
}

// handshake runs the configuration exchange. The device leads: it sends
// configure, activates features, and signals start. Status messages seen
// before start are not dispatched.
func (s *Session) handshake(ctx context.Context, conn Conn) error {
	for {
		msg, size, err := s.receive(ctx, conn)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrHandshake, err)
		}
		s.logMessage(conn, log.DirectionIn, msg, size)

		switch {
		case msg.Configure != nil:
			s.mu.Lock()
			if msg.Configure.DeviceInfo != nil {
				s.device = *msg.Configure.DeviceInfo
			}
			s.deviceFeatures = msg.Configure.Code1
			s.mu.Unlock()

			reply := &wire.RemoteMessage{Configure: &wire.RemoteConfigure{
				Code1: SupportedFeatures,
				DeviceInfo: &wire.RemoteDeviceInfo{
					Model:       s.cfg.ClientName,
					Vendor:      "atvremote-go",
					Unknown1:    1,
					Unknown2:    "1",
					PackageName: "atvremote",
					AppVersion:  "1.0.0",
				},
			}}
			if err := s.sendOn(conn, reply); err != nil {
				return fmt.Errorf("%w: %v", ErrHandshake, err)
			}

		case msg.SetActive != nil:
			reply := &wire.RemoteMessage{SetActive: &wire.RemoteSetActive{
				Active: SupportedFeatures,
			}}
			if err := s.sendOn(conn, reply); err != nil {
				return fmt.Errorf("%w: %v", ErrHandshake, err)
			}

		case msg.PingRequest != nil:
			if err := s.pong(conn, msg.PingRequest.Val1); err != nil {
				return fmt.Errorf("%w: %v", ErrHandshake, err)
			}

		case msg.Start != nil:
			s.updatePower(msg.Start.Started)
			return nil

		case msg.Error != nil:
			return fmt.Errorf("%w: device rejected configuration", ErrHandshake)

		default:
			// Ignored until the device signals start.
		}
	}
}

// receive reads and decodes the next message, honoring ctx cancellation.
// The blocking read is abandoned by closing the connection.
func (s *Session) receive(ctx context.Context, conn Conn) (*wire.RemoteMessage, int, error) {
	type readResult struct {
		data []byte
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		data, err := conn.Receive(0)
		ch <- readResult{data, err}
	}()

	select {
	case <-ctx.Done():
		conn.Close()
		return nil, 0, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, 0, r.err
		}
		msg, err := wire.DecodeRemoteMessage(r.data)
		if err != nil {
			return nil, 0, err
		}
		return msg, len(r.data), nil
	}
}

// readLoop decodes and dispatches inbound messages until the connection
// fails. Malformed bytes are fatal to the connection; unknown message
// kinds are not.
func (s *Session) readLoop(conn Conn, done chan struct{}) {
	defer s.wg.Done()

	var cause error
	for {
		data, err := conn.Receive(0)
		if err != nil {
			cause = err
			break
		}
		msg, err := wire.DecodeRemoteMessage(data)
		if err != nil {
			cause = err
			break
		}

		s.mu.Lock()
		s.lastSeen = time.Now()
		s.mu.Unlock()

		s.logMessage(conn, log.DirectionIn, msg, len(data))
		s.dispatch(conn, msg)
	}

	s.connLost(conn, done, cause)
}

// watchdog closes the connection if no inbound traffic arrives within the
// idle timeout. The device is the pinger in this protocol; the client only
// answers, so silence means the peer is gone.
func (s *Session) watchdog(conn Conn, done chan struct{}) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		last := s.lastSeen
		s.mu.Unlock()

		remaining := s.cfg.IdleTimeout - time.Since(last)
		if remaining <= 0 {
			s.mu.Lock()
			s.kaExpired = true
			s.mu.Unlock()
			conn.Close()
			return
		}

		select {
		case <-s.stopCh:
			return
		case <-done:
			return
		case <-time.After(remaining):
		}
	}
}

// connLost tears down a failed connection, surfaces the cause, and kicks
// off reconnection when enabled.
func (s *Session) connLost(conn Conn, done chan struct{}, cause error) {
	conn.Close()

	s.mu.Lock()
	if s.conn != conn {
		s.mu.Unlock()
		close(done)
		return
	}
	s.conn = nil
	if s.kaExpired {
		cause = ErrKeepAliveTimeout
	}
	stopped := s.stopped
	s.mu.Unlock()
	close(done)

	if stopped {
		s.setState(StateDisconnected, "stopped")
		return
	}

	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	s.setState(StateDisconnected, reason)
	s.logError(conn, cause)

	if s.cfg.OnDisconnect != nil {
		s.cfg.OnDisconnect(cause)
	}

	if s.cfg.Reconnect {
		s.mu.Lock()
		launch := !s.reconnecting
		s.reconnecting = launch
		s.mu.Unlock()
		if launch {
			s.wg.Add(1)
			go s.reconnectLoop()
		}
	}
}

// reconnectLoop retries Connect with exponential backoff until it succeeds,
// the session is stopped, or a terminal error occurs.
func (s *Session) reconnectLoop() {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.reconnecting = false
		s.mu.Unlock()
	}()

	for {
		delay := s.backoff.Next()
		select {
		case <-s.stopCh:
			return
		case <-time.After(delay):
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := s.Connect(ctx)
		cancel()

		if err == nil || errors.Is(err, ErrAlreadyConnected) || errors.Is(err, ErrSessionStopped) {
			return
		}
		if errors.Is(err, ErrTrustChanged) || errors.Is(err, ErrHandshake) {
			// Only re-pairing can fix these.
			if s.cfg.OnDisconnect != nil {
				s.cfg.OnDisconnect(err)
			}
			return
		}
	}
}

// Stop closes the session and waits for its goroutines to exit.
// The session cannot be reused afterwards.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		conn := s.conn
		s.mu.Unlock()

		close(s.stopCh)
		if conn != nil {
			conn.Close()
		}
		s.wg.Wait()
	})
}

// dispatch handles one inbound message after the handshake.
func (s *Session) dispatch(conn Conn, msg *wire.RemoteMessage) {
	switch {
	case msg.PingRequest != nil:
		s.pong(conn, msg.PingRequest.Val1)

	case msg.SetActive != nil:
		// The device may renegotiate mid-session.
		s.sendOn(conn, &wire.RemoteMessage{SetActive: &wire.RemoteSetActive{
			Active: SupportedFeatures,
		}})

	case msg.Start != nil:
		s.updatePower(msg.Start.Started)

	case msg.ImeKeyInject != nil:
		if msg.ImeKeyInject.AppInfo != nil {
			s.updateCurrentApp(msg.ImeKeyInject.AppInfo.AppPackage)
		}

	case msg.ImeBatchEdit != nil:
		s.mu.Lock()
		s.imeCounter = msg.ImeBatchEdit.ImeCounter
		s.fieldCounter = msg.ImeBatchEdit.FieldCounter
		s.mu.Unlock()

	case msg.SetVolumeLevel != nil:
		v := Volume{
			Level: msg.SetVolumeLevel.VolumeLevel,
			Max:   msg.SetVolumeLevel.VolumeMax,
			Muted: msg.SetVolumeLevel.VolumeMuted,
		}
		s.mu.Lock()
		s.volume = v
		s.mu.Unlock()
		if s.cfg.OnVolumeChanged != nil {
			s.cfg.OnVolumeChanged(v)
		}

	case msg.Error != nil:
		s.logError(conn, errors.New("device reported an error"))

	default:
		// Unrecognized kinds are ignored for forward compatibility.
	}
}

func (s *Session) updatePower(on bool) {
	s.mu.Lock()
	changed := s.powerOn != on
	s.powerOn = on
	s.mu.Unlock()
	if changed && s.cfg.OnPowerChanged != nil {
		s.cfg.OnPowerChanged(on)
	}
}

func (s *Session) updateCurrentApp(pkg string) {
	s.mu.Lock()
	changed := s.currentApp != pkg
	s.currentApp = pkg
	s.mu.Unlock()
	if changed && s.cfg.OnCurrentApp != nil {
		s.cfg.OnCurrentApp(pkg)
	}
}

func (s *Session) pong(conn Conn, val int32) error {
	return s.sendOn(conn, &wire.RemoteMessage{
		PingResponse: &wire.RemotePingResponse{Val1: val},
	})
}

// sendOn encodes and sends on a specific connection, bypassing the state
// check. Used during the handshake and for protocol replies.
func (s *Session) sendOn(conn Conn, msg *wire.RemoteMessage) error {
	data, err := wire.EncodeRemoteMessage(msg)
	if err != nil {
		return err
	}
	if err := conn.Send(data); err != nil {
		return err
	}
	s.logMessage(conn, log.DirectionOut, msg, len(data))
	return nil
}

// send submits a command on the current connection.
func (s *Session) send(msg *wire.RemoteMessage) error {
	s.mu.Lock()
	conn := s.conn
	state := s.state
	s.mu.Unlock()

	if state != StateConnected || conn == nil {
		return ErrNotConnected
	}
	return s.sendOn(conn, msg)
}

// SendKey injects a key event.
func (s *Session) SendKey(keyCode int32, direction wire.Direction) error {
	return s.send(&wire.RemoteMessage{KeyInject: &wire.RemoteKeyInject{
		KeyCode:   keyCode,
		Direction: direction,
	}})
}

// PressKey injects a short press of the key.
func (s *Session) PressKey(keyCode int32) error {
	return s.SendKey(keyCode, wire.DirectionShort)
}

// SendText replaces the focused text field's content. The counters echoed
// here were assigned by the device in its last batch edit.
func (s *Session) SendText(text string) error {
	s.mu.Lock()
	ime, field := s.imeCounter, s.fieldCounter
	s.mu.Unlock()

	var end uint32
	if n := len(text); n > 0 {
		end = uint32(n - 1)
	}
	return s.send(&wire.RemoteMessage{ImeBatchEdit: &wire.RemoteImeBatchEdit{
		ImeCounter:   ime,
		FieldCounter: field,
		EditInfo: []wire.RemoteEditInfo{{
			Insert: 1,
			TextFieldStatus: &wire.RemoteTextFieldStatus{
				Start: end,
				End:   end,
				Value: text,
			},
		}},
	}})
}

// LaunchApp launches a deep link on the device. A bare package name is
// turned into a Play Store launch link.
func (s *Session) LaunchApp(link string) error {
	if u, err := url.Parse(link); err != nil || u.Scheme == "" {
		link = "market://launch?id=" + link
	}
	return s.send(&wire.RemoteMessage{
		AppLinkLaunchRequest: &wire.RemoteAppLinkLaunchRequest{AppLink: link},
	})
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsOn reports the device power state as last reported.
func (s *Session) IsOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.powerOn
}

// CurrentApp returns the foreground app package as last reported.
func (s *Session) CurrentApp() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentApp
}

// Volume returns the device volume state as last reported.
func (s *Session) Volume() Volume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Device returns the device metadata from the configuration exchange.
func (s *Session) Device() wire.RemoteDeviceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

// DeviceFeatures returns the capability set the device reported.
func (s *Session) DeviceFeatures() wire.Feature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceFeatures
}

func (s *Session) setState(next State, reason string) {
	s.mu.Lock()
	old := s.state
	s.state = next
	s.mu.Unlock()

	if old == next {
		return
	}
	s.notifyState(old, next, reason)
}

// notifyState logs a state transition and fires the callback. The
// transition itself must already have happened.
func (s *Session) notifyState(old, next State, reason string) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	connID := ""
	if conn != nil {
		connID = conn.ConnectionID()
	}
	s.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Layer:        log.LayerSession,
		Category:     log.CategoryState,
		Channel:      log.ChannelRemote,
		StateChange: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})

	if s.cfg.OnStateChange != nil {
		s.cfg.OnStateChange(old, next)
	}
}

func (s *Session) logMessage(conn Conn, direction log.Direction, msg *wire.RemoteMessage, size int) {
	event := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: conn.ConnectionID(),
		Direction:    direction,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Channel:      log.ChannelRemote,
	}

	switch {
	case msg.PingRequest != nil:
		event.Category = log.CategoryKeepAlive
		event.KeepAlive = &log.KeepAliveEvent{Type: log.KeepAlivePing, Val: msg.PingRequest.Val1}
	case msg.PingResponse != nil:
		event.Category = log.CategoryKeepAlive
		event.KeepAlive = &log.KeepAliveEvent{Type: log.KeepAlivePong, Val: msg.PingResponse.Val1}
	default:
		event.Message = &log.MessageEvent{Kind: msg.Kind(), Size: size}
	}

	s.logger.Log(event)
}

func (s *Session) logError(conn Conn, err error) {
	if err == nil {
		return
	}
	s.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: conn.ConnectionID(),
		Layer:        log.LayerSession,
		Category:     log.CategoryError,
		Channel:      log.ChannelRemote,
		Error: &log.ErrorEventData{
			Layer:   log.LayerSession,
			Message: err.Error(),
		},
	})
}
