package wire

import "strings"

// ProtocolVersion is the pairing protocol version this client speaks.
const ProtocolVersion = 2

// EncodingType identifies how the pairing code is presented to the user.
type EncodingType uint32

const (
	// EncodingUnknown is the zero value.
	EncodingUnknown EncodingType = 0
	// EncodingAlphanumeric is a free-form alphanumeric code.
	EncodingAlphanumeric EncodingType = 1
	// EncodingNumeric is a decimal digit code.
	EncodingNumeric EncodingType = 2
	// EncodingHexadecimal is a hexadecimal digit code. Android TV devices
	// display a 6 character hexadecimal code on screen.
	EncodingHexadecimal EncodingType = 3
	// EncodingQRCode is a QR code presentation.
	EncodingQRCode EncodingType = 4
)

// String returns the encoding type name.
func (e EncodingType) String() string {
	switch e {
	case EncodingAlphanumeric:
		return "ALPHANUMERIC"
	case EncodingNumeric:
		return "NUMERIC"
	case EncodingHexadecimal:
		return "HEXADECIMAL"
	case EncodingQRCode:
		return "QRCODE"
	default:
		return "UNKNOWN"
	}
}

// RoleType indicates which side displays the pairing code. The Android TV
// displays the code, so the client takes the input role.
type RoleType uint32

const (
	// RoleUnknown is the zero value.
	RoleUnknown RoleType = 0
	// RoleInput means this side types the code.
	RoleInput RoleType = 1
	// RoleOutput means this side displays the code.
	RoleOutput RoleType = 2
)

// String returns the role name.
func (r RoleType) String() string {
	switch r {
	case RoleInput:
		return "INPUT"
	case RoleOutput:
		return "OUTPUT"
	default:
		return "UNKNOWN"
	}
}

// Direction qualifies a key injection: a short press or the two edges of
// a long press.
type Direction uint32

const (
	// DirectionStartLong begins a long press.
	DirectionStartLong Direction = 1
	// DirectionEndLong ends a long press.
	DirectionEndLong Direction = 2
	// DirectionShort is a regular press and release.
	DirectionShort Direction = 3
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionStartLong:
		return "START_LONG"
	case DirectionEndLong:
		return "END_LONG"
	case DirectionShort:
		return "SHORT"
	default:
		return "UNKNOWN"
	}
}

// Feature is a bit set of remote channel capabilities exchanged during
// session configuration. The active set is the intersection of what the
// client requests and what the device reports.
type Feature uint32

const (
	// FeaturePing enables keep-alive ping/pong.
	FeaturePing Feature = 1 << 0
	// FeatureKey enables key injection.
	FeatureKey Feature = 1 << 1
	// FeatureIME enables text entry and current app reporting.
	FeatureIME Feature = 1 << 2
	// FeaturePower enables power state reporting.
	FeaturePower Feature = 1 << 5
	// FeatureVolume enables volume state reporting.
	FeatureVolume Feature = 1 << 6
	// FeatureAppLink enables deep link launching.
	FeatureAppLink Feature = 1 << 9
)

// Has reports whether all bits of other are set in f.
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

// String returns the feature names joined by "|".
func (f Feature) String() string {
	if f == 0 {
		return "NONE"
	}
	names := []struct {
		bit  Feature
		name string
	}{
		{FeaturePing, "PING"},
		{FeatureKey, "KEY"},
		{FeatureIME, "IME"},
		{FeaturePower, "POWER"},
		{FeatureVolume, "VOLUME"},
		{FeatureAppLink, "APP_LINK"},
	}
	var parts []string
	rest := f
	for _, n := range names {
		if f.Has(n.bit) {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, "UNKNOWN")
	}
	return strings.Join(parts, "|")
}
