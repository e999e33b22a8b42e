// Package wire defines the protobuf wire format types for the Android TV
// remote protocol (v2).
//
// The protocol runs two independent TLS channels, each carrying a single
// top-level message union:
//   - Pairing channel (port 6467): PairingMessage
//   - Remote channel (port 6466): RemoteMessage
//
// Frames are varint length-prefixed protobuf messages. Encoding and
// decoding are hand-written on top of protowire so the exact field
// numbers of the device firmware are preserved without generated code.
//
// # Message Unions
//
// Both top-level messages are unions: exactly one variant field is set
// per message. Decoding tolerates unknown fields (forward compatibility
// with newer firmware) and rejects malformed varints or truncated
// nested messages.
package wire
