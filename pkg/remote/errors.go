package remote

import "errors"

// Session errors.
var (
	// ErrNotConnected indicates a command was submitted while the session
	// is not in the connected state. Commands are never queued; the caller
	// decides whether to retry.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates Connect was called on a session that
	// is already connecting or connected.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrSessionStopped indicates the session was stopped and cannot be
	// reused.
	ErrSessionStopped = errors.New("session stopped")

	// ErrHandshake indicates the device rejected the configuration
	// exchange or disconnected mid-exchange. Not retried automatically.
	ErrHandshake = errors.New("session handshake failed")

	// ErrTrustChanged indicates the device certificate fingerprint does
	// not match the one pinned at pairing time. Requires re-pairing.
	ErrTrustChanged = errors.New("device identity changed since pairing")

	// ErrKeepAliveTimeout indicates the device stopped pinging.
	ErrKeepAliveTimeout = errors.New("keep-alive timeout")
)
