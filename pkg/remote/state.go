package remote

// State represents the session connection state.
type State uint8

const (
	// StateDisconnected indicates no active connection.
	StateDisconnected State = iota

	// StateConnecting indicates TCP connect and TLS handshake in progress.
	StateConnecting

	// StateConfiguring indicates the configuration exchange is in progress.
	StateConfiguring

	// StateConnected indicates the session is established and accepting
	// commands.
	StateConnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConfiguring:
		return "CONFIGURING"
	case StateConnected:
		return "CONNECTED"
	default:
		return "UNKNOWN"
	}
}
