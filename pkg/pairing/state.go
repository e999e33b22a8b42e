package pairing

// State tracks progress through the pairing exchange.
type State uint8

const (
	// StateIdle is the initial state before the exchange starts.
	StateIdle State = iota
	// StateRequestSent means the pairing request is out.
	StateRequestSent
	// StateOptionNegotiated means encodings were agreed.
	StateOptionNegotiated
	// StateConfigurationSent means the configuration is out.
	StateConfigurationSent
	// StateAwaitingCode means the exchange waits for the on-screen code.
	StateAwaitingCode
	// StateSecretSent means the secret is out.
	StateSecretSent
	// StatePaired is the terminal success state.
	StatePaired
	// StateFailed is the terminal failure state.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRequestSent:
		return "REQUEST_SENT"
	case StateOptionNegotiated:
		return "OPTION_NEGOTIATED"
	case StateConfigurationSent:
		return "CONFIGURATION_SENT"
	case StateAwaitingCode:
		return "AWAITING_CODE"
	case StateSecretSent:
		return "SECRET_SENT"
	case StatePaired:
		return "PAIRED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
