package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Top-level PairingMessage field numbers. These are fixed by the device
// firmware and must not change.
const (
	fieldPairingProtocolVersion  protowire.Number = 1
	fieldPairingStatus           protowire.Number = 2
	fieldPairingRequest          protowire.Number = 10
	fieldPairingRequestAck       protowire.Number = 11
	fieldPairingOptions          protowire.Number = 20
	fieldPairingConfiguration    protowire.Number = 30
	fieldPairingConfigurationAck protowire.Number = 31
	fieldPairingSecret           protowire.Number = 40
	fieldPairingSecretAck        protowire.Number = 41
)

// PairingMessage is the top-level union on the pairing channel. Exactly one
// variant field is set per message; ProtocolVersion and Status accompany
// every message.
type PairingMessage struct {
	ProtocolVersion uint32
	Status          Status

	PairingRequest    *PairingRequest
	PairingRequestAck *PairingRequestAck
	Options           *PairingOptions
	Configuration     *PairingConfiguration
	ConfigurationAck  *PairingConfigurationAck
	Secret            *PairingSecret
	SecretAck         *PairingSecretAck
}

// PairingRequest opens the pairing exchange.
type PairingRequest struct {
	ServiceName string
	ClientName  string
}

// PairingRequestAck acknowledges a PairingRequest.
type PairingRequestAck struct {
	ServerName string
}

// PairingEncoding describes one supported code presentation.
type PairingEncoding struct {
	Type         EncodingType
	SymbolLength uint32
}

// PairingOptions advertises supported encodings and the preferred role.
type PairingOptions struct {
	InputEncodings  []PairingEncoding
	OutputEncodings []PairingEncoding
	PreferredRole   RoleType
}

// PairingConfiguration selects the encoding and role for this exchange.
type PairingConfiguration struct {
	Encoding   PairingEncoding
	ClientRole RoleType
}

// PairingConfigurationAck acknowledges a PairingConfiguration.
type PairingConfigurationAck struct{}

// PairingSecret carries the client's proof of the displayed code.
type PairingSecret struct {
	Secret []byte
}

// PairingSecretAck confirms the secret and completes pairing.
type PairingSecretAck struct {
	Secret []byte
}

// Kind returns the variant name for logging.
func (m *PairingMessage) Kind() string {
	switch {
	case m.PairingRequest != nil:
		return "pairing_request"
	case m.PairingRequestAck != nil:
		return "pairing_request_ack"
	case m.Options != nil:
		return "pairing_options"
	case m.Configuration != nil:
		return "pairing_configuration"
	case m.ConfigurationAck != nil:
		return "pairing_configuration_ack"
	case m.Secret != nil:
		return "pairing_secret"
	case m.SecretAck != nil:
		return "pairing_secret_ack"
	default:
		return "pairing_status"
	}
}

// EncodePairingMessage encodes m to protobuf bytes.
func EncodePairingMessage(m *PairingMessage) ([]byte, error) {
	b := appendVarintField(nil, fieldPairingProtocolVersion, uint64(m.ProtocolVersion))
	b = appendVarintField(b, fieldPairingStatus, uint64(m.Status))

	switch {
	case m.PairingRequest != nil:
		b = appendMessageField(b, fieldPairingRequest, encodePairingRequest(m.PairingRequest))
	case m.PairingRequestAck != nil:
		b = appendMessageField(b, fieldPairingRequestAck, encodePairingRequestAck(m.PairingRequestAck))
	case m.Options != nil:
		b = appendMessageField(b, fieldPairingOptions, encodePairingOptions(m.Options))
	case m.Configuration != nil:
		b = appendMessageField(b, fieldPairingConfiguration, encodePairingConfiguration(m.Configuration))
	case m.ConfigurationAck != nil:
		b = appendMessageField(b, fieldPairingConfigurationAck, nil)
	case m.Secret != nil:
		b = appendMessageField(b, fieldPairingSecret, appendBytesField(nil, 1, m.Secret.Secret))
	case m.SecretAck != nil:
		b = appendMessageField(b, fieldPairingSecretAck, appendBytesField(nil, 1, m.SecretAck.Secret))
	}
	return b, nil
}

func encodePairingRequest(r *PairingRequest) []byte {
	var b []byte
	if r.ServiceName != "" {
		b = appendStringField(b, 1, r.ServiceName)
	}
	if r.ClientName != "" {
		b = appendStringField(b, 2, r.ClientName)
	}
	return b
}

func encodePairingRequestAck(a *PairingRequestAck) []byte {
	var b []byte
	if a.ServerName != "" {
		b = appendStringField(b, 1, a.ServerName)
	}
	return b
}

func encodePairingEncoding(e PairingEncoding) []byte {
	var b []byte
	if e.Type != EncodingUnknown {
		b = appendVarintField(b, 1, uint64(e.Type))
	}
	if e.SymbolLength != 0 {
		b = appendVarintField(b, 2, uint64(e.SymbolLength))
	}
	return b
}

func encodePairingOptions(o *PairingOptions) []byte {
	var b []byte
	for _, e := range o.InputEncodings {
		b = appendMessageField(b, 1, encodePairingEncoding(e))
	}
	for _, e := range o.OutputEncodings {
		b = appendMessageField(b, 2, encodePairingEncoding(e))
	}
	if o.PreferredRole != RoleUnknown {
		b = appendVarintField(b, 3, uint64(o.PreferredRole))
	}
	return b
}

func encodePairingConfiguration(c *PairingConfiguration) []byte {
	b := appendMessageField(nil, 1, encodePairingEncoding(c.Encoding))
	if c.ClientRole != RoleUnknown {
		b = appendVarintField(b, 2, uint64(c.ClientRole))
	}
	return b
}

// DecodePairingMessage decodes protobuf bytes into a PairingMessage.
// Unknown fields are skipped.
func DecodePairingMessage(data []byte) (*PairingMessage, error) {
	m := &PairingMessage{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case fieldPairingProtocolVersion:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			m.ProtocolVersion = uint32(v)
			data = data[n:]
		case fieldPairingStatus:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			m.Status = Status(v)
			data = data[n:]
		case fieldPairingRequest:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			if m.PairingRequest, err = decodePairingRequest(body); err != nil {
				return nil, err
			}
			data = data[n:]
		case fieldPairingRequestAck:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			if m.PairingRequestAck, err = decodePairingRequestAck(body); err != nil {
				return nil, err
			}
			data = data[n:]
		case fieldPairingOptions:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			if m.Options, err = decodePairingOptions(body); err != nil {
				return nil, err
			}
			data = data[n:]
		case fieldPairingConfiguration:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			if m.Configuration, err = decodePairingConfiguration(body); err != nil {
				return nil, err
			}
			data = data[n:]
		case fieldPairingConfigurationAck:
			_, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			m.ConfigurationAck = &PairingConfigurationAck{}
			data = data[n:]
		case fieldPairingSecret:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			secret, err := decodeSecretBody(num, body)
			if err != nil {
				return nil, err
			}
			m.Secret = &PairingSecret{Secret: secret}
			data = data[n:]
		case fieldPairingSecretAck:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			secret, err := decodeSecretBody(num, body)
			if err != nil {
				return nil, err
			}
			m.SecretAck = &PairingSecretAck{Secret: secret}
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return m, nil
}

func decodePairingRequest(data []byte) (*PairingRequest, error) {
	r := &PairingRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			r.ServiceName = string(body)
			data = data[n:]
		case 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			r.ClientName = string(body)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return r, nil
}

func decodePairingRequestAck(data []byte) (*PairingRequestAck, error) {
	a := &PairingRequestAck{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		if num == 1 {
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			a.ServerName = string(body)
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return a, nil
}

func decodePairingEncoding(data []byte) (PairingEncoding, error) {
	var e PairingEncoding
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return e, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return e, err
			}
			e.Type = EncodingType(v)
			data = data[n:]
		case 2:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return e, err
			}
			e.SymbolLength = uint32(v)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return e, err
			}
			data = data[n:]
		}
	}
	return e, nil
}

func decodePairingOptions(data []byte) (*PairingOptions, error) {
	o := &PairingOptions{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1, 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			enc, err := decodePairingEncoding(body)
			if err != nil {
				return nil, err
			}
			if num == 1 {
				o.InputEncodings = append(o.InputEncodings, enc)
			} else {
				o.OutputEncodings = append(o.OutputEncodings, enc)
			}
			data = data[n:]
		case 3:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			o.PreferredRole = RoleType(v)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return o, nil
}

func decodePairingConfiguration(data []byte) (*PairingConfiguration, error) {
	c := &PairingConfiguration{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			enc, err := decodePairingEncoding(body)
			if err != nil {
				return nil, err
			}
			c.Encoding = enc
			data = data[n:]
		case 2:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			c.ClientRole = RoleType(v)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return c, nil
}

// decodeSecretBody extracts the bytes payload shared by the secret and
// secret ack messages.
func decodeSecretBody(parent protowire.Number, data []byte) ([]byte, error) {
	var secret []byte
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(parent, n)
		}
		data = data[n:]

		if num == 1 {
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			secret = append([]byte(nil), body...)
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return secret, nil
}
