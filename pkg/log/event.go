package log

import (
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Channel indicates which TLS channel the event belongs to.
	Channel Channel `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Wire layer (decoded)
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Pairing/session state
	KeepAlive   *KeepAliveEvent   `cbor:"13,keyasint,omitempty"` // Ping/pong
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the framing layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the message encoding layer (decoded protobuf).
	LayerWire Layer = 1
	// LayerPairing is the pairing state machine.
	LayerPairing Layer = 2
	// LayerSession is the remote control session.
	LayerSession Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerPairing:
		return "PAIRING"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message.
	CategoryMessage Category = 0
	// CategoryKeepAlive indicates keep-alive traffic (ping/pong).
	CategoryKeepAlive Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryKeepAlive:
		return "KEEPALIVE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Channel indicates which of the two TLS channels an event belongs to.
type Channel uint8

const (
	// ChannelPairing is the pairing channel (typically port 6467).
	ChannelPairing Channel = 0
	// ChannelRemote is the remote control channel (typically port 6466).
	ChannelRemote Channel = 1
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelPairing:
		return "PAIRING"
	case ChannelRemote:
		return "REMOTE"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the payload size in bytes (excluding the varint length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw payload bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded protocol message at the wire layer.
type MessageEvent struct {
	// Kind is the message variant name, e.g. "pairing_request" or
	// "remote_key_inject".
	Kind string `cbor:"1,keyasint"`

	// Size is the encoded message size in bytes.
	Size int `cbor:"2,keyasint"`

	// Status is the pairing status code, for pairing channel messages.
	Status *uint32 `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures pairing and session lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// KeepAliveEvent captures ping/pong traffic on the remote channel.
type KeepAliveEvent struct {
	// Type of keep-alive message.
	Type KeepAliveType `cbor:"1,keyasint"`

	// Val is the opaque value echoed between ping and pong.
	Val int32 `cbor:"2,keyasint,omitempty"`
}

// KeepAliveType indicates the type of keep-alive message.
type KeepAliveType uint8

const (
	// KeepAlivePing indicates a ping from the device.
	KeepAlivePing KeepAliveType = 0
	// KeepAlivePong indicates a pong sent in response.
	KeepAlivePong KeepAliveType = 1
)

// String returns the keep-alive type name.
func (k KeepAliveType) String() string {
	switch k {
	case KeepAlivePing:
		return "PING"
	case KeepAlivePong:
		return "PONG"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
