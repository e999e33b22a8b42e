// Package remote implements the long-lived control session on the remote
// channel (port 6466).
//
// A session passes through four states:
//
//	DISCONNECTED ──► CONNECTING ──► CONFIGURING ──► CONNECTED
//	      ▲                                             │
//	      └─────────────────────────────────────────────┘
//	          (I/O error, keep-alive timeout, Stop)
//
// The device opens the conversation: after the TLS handshake it sends its
// configure message, the client answers with its own, the device activates
// the feature set, and finally signals session start. Only then does the
// session accept commands and dispatch status updates.
//
// While connected the device probes liveness with pings roughly every five
// seconds. The session answers each ping and treats prolonged silence as
// peer failure, closing the connection. With reconnection enabled it then
// retries with exponential backoff, reusing the paired identity. A device
// that no longer accepts the client certificate surfaces ErrTrustChanged
// and stops the retry loop, since only re-pairing can recover.
//
// Status fields (power, foreground app, volume) are updated by the read
// loop and surfaced through callbacks. Readers see eventually consistent
// values; state is stale across a reconnect until the device reports it
// again.
package remote
