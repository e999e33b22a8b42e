package pairing

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/atvremote/atvremote-go/pkg/cert"
)

// CodeLength is the number of hexadecimal characters in the on-screen code.
const CodeLength = 6

// normalizeCode validates the user-entered code and returns its byte form
// (3 bytes: check byte plus 2 nonce bytes).
func normalizeCode(code string) ([]byte, error) {
	if len(code) != CodeLength {
		return nil, fmt.Errorf("%w: want %d hex characters, got %d", ErrInvalidCode, CodeLength, len(code))
	}
	raw, err := hex.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return raw, nil
}

// ComputeSecret derives the pairing secret from both certificates' RSA
// parameters and the on-screen code.
//
// The digest is SHA-256 over, in order: client modulus, client exponent,
// server modulus, server exponent, then the last two code bytes. Moduli
// and exponents use big-endian minimal encoding (no leading zero bytes).
// The order is part of the protocol; swapping client and server produces
// a secret the device rejects.
func ComputeSecret(clientCert, serverCert *x509.Certificate, code string) ([]byte, error) {
	raw, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	clientKey, err := cert.RSAPublicKey(clientCert)
	if err != nil {
		return nil, fmt.Errorf("client certificate: %w", err)
	}
	serverKey, err := cert.RSAPublicKey(serverCert)
	if err != nil {
		return nil, fmt.Errorf("server certificate: %w", err)
	}

	h := sha256.New()
	writeKey := func(key *rsa.PublicKey) {
		h.Write(key.N.Bytes())
		h.Write(big.NewInt(int64(key.E)).Bytes())
	}
	writeKey(clientKey)
	writeKey(serverKey)
	h.Write(raw[1:])

	return h.Sum(nil), nil
}

// VerifyCode checks the secret against the code's leading check byte.
// A mismatch means the code was mistyped; callers should not send the
// secret to the device.
func VerifyCode(secret []byte, code string) (bool, error) {
	raw, err := normalizeCode(code)
	if err != nil {
		return false, err
	}
	if len(secret) == 0 {
		return false, nil
	}
	return secret[0] == raw[0], nil
}
