package wire

// Status is the pairing channel status code. Every pairing message carries
// one; values other than StatusOK terminate the exchange.
type Status uint32

const (
	// StatusOK indicates success. Sent on every client request.
	StatusOK Status = 200
	// StatusError indicates a generic failure on the device side.
	StatusError Status = 400
	// StatusBadConfiguration indicates the device rejected the proposed
	// encoding or role.
	StatusBadConfiguration Status = 401
	// StatusBadSecret indicates the device rejected the pairing secret,
	// i.e. the user entered the wrong code.
	StatusBadSecret Status = 402
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	case StatusBadConfiguration:
		return "BAD_CONFIGURATION"
	case StatusBadSecret:
		return "BAD_SECRET"
	default:
		return "UNKNOWN"
	}
}
