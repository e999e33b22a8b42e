// Package cert manages the client identity and peer trust for the Android
// TV remote protocol.
//
// The client identity is a self-signed RSA-2048 certificate. It is not a
// PKI credential: the device learns the public key during pairing and binds
// trust to it, so the same identity must be presented on every subsequent
// connection. Losing the key means pairing again.
//
// Peer trust records pin the SHA-256 fingerprint of the device certificate
// observed when pairing completed. A later connection that presents a
// different fingerprint indicates the device was reset or replaced.
package cert
