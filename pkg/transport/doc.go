// Package transport implements the TLS transport for the Android TV
// remote protocol.
//
// # Protocol Stack
//
//	+---------------------------+
//	|  PairingMessage / Remote  |  (pkg/wire)
//	+---------------------------+
//	|  varint length framing    |  (this package)
//	+---------------------------+
//	|  TLS with client cert     |  (this package)
//	+---------------------------+
//	|  TCP 6467 / 6466          |
//	+---------------------------+
//
// Frames are protobuf messages prefixed with their length as a varint.
// The server streams frames back to back, so the reader must tolerate
// frames split across arbitrary TCP segment boundaries.
//
// # Trust Model
//
// Certificate chain verification is disabled. Android TV devices use
// self-signed certificates; authenticity comes from the pairing exchange,
// which cryptographically binds both certificates into the shared secret.
// After pairing, callers pin the device certificate fingerprint and
// reject peers that present a different one.
package transport
