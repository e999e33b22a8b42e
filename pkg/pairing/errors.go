package pairing

import (
	"errors"
	"fmt"

	"github.com/atvremote/atvremote-go/pkg/wire"
)

// Pairing errors.
var (
	// ErrProtocol indicates the device sent something the exchange does
	// not allow at the current step.
	ErrProtocol = errors.New("pairing protocol violation")

	// ErrNegotiation indicates no mutually supported code encoding.
	ErrNegotiation = errors.New("no mutually supported pairing encoding")

	// ErrCodeMismatch indicates the entered code was wrong, either caught
	// locally by the check byte or rejected by the device.
	ErrCodeMismatch = errors.New("pairing code mismatch")

	// ErrInvalidCode indicates the entered code is not 6 hex characters.
	ErrInvalidCode = errors.New("invalid pairing code")

	// ErrDeviceError indicates the device reported a generic failure.
	ErrDeviceError = errors.New("device reported pairing error")
)

// statusError maps a non-OK pairing status to a package error.
func statusError(status wire.Status) error {
	switch status {
	case wire.StatusBadSecret:
		return fmt.Errorf("%w: device rejected secret", ErrCodeMismatch)
	case wire.StatusBadConfiguration:
		return fmt.Errorf("%w: device rejected configuration", ErrNegotiation)
	default:
		return fmt.Errorf("%w: status %s", ErrDeviceError, status)
	}
}
