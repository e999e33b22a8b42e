package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Top-level RemoteMessage field numbers. These are fixed by the device
// firmware and must not change.
const (
	fieldRemoteConfigure      protowire.Number = 1
	fieldRemoteSetActive      protowire.Number = 2
	fieldRemoteError          protowire.Number = 3
	fieldRemotePingRequest    protowire.Number = 8
	fieldRemotePingResponse   protowire.Number = 9
	fieldRemoteKeyInject      protowire.Number = 10
	fieldRemoteImeKeyInject   protowire.Number = 20
	fieldRemoteImeBatchEdit   protowire.Number = 21
	fieldRemoteImeShowRequest protowire.Number = 22
	fieldRemoteVoiceBegin     protowire.Number = 30
	fieldRemoteVoicePayload   protowire.Number = 31
	fieldRemoteVoiceEnd       protowire.Number = 32
	fieldRemoteSetVolumeLevel protowire.Number = 40
	fieldRemoteAdjustVolume   protowire.Number = 41
	fieldRemoteStart          protowire.Number = 50
	fieldRemoteAppLinkLaunch  protowire.Number = 90
)

// RemoteMessage is the top-level union on the remote control channel.
// Exactly one variant field is set per message.
type RemoteMessage struct {
	Configure            *RemoteConfigure
	SetActive            *RemoteSetActive
	Error                *RemoteError
	PingRequest          *RemotePingRequest
	PingResponse         *RemotePingResponse
	KeyInject            *RemoteKeyInject
	ImeKeyInject         *RemoteImeKeyInject
	ImeBatchEdit         *RemoteImeBatchEdit
	ImeShowRequest       *RemoteImeShowRequest
	VoiceBegin           *RemoteVoiceBegin
	VoicePayload         *RemoteVoicePayload
	VoiceEnd             *RemoteVoiceEnd
	SetVolumeLevel       *RemoteSetVolumeLevel
	AdjustVolumeLevel    *RemoteAdjustVolumeLevel
	Start                *RemoteStart
	AppLinkLaunchRequest *RemoteAppLinkLaunchRequest
}

// RemoteDeviceInfo identifies an endpoint during session configuration.
type RemoteDeviceInfo struct {
	Model       string
	Vendor      string
	Unknown1    uint32
	Unknown2    string
	PackageName string
	AppVersion  string
}

// RemoteConfigure opens the remote session. The device sends its configure
// first; the client answers with its own.
type RemoteConfigure struct {
	Code1      Feature
	DeviceInfo *RemoteDeviceInfo
}

// RemoteSetActive activates the negotiated feature set.
type RemoteSetActive struct {
	Active Feature
}

// RemoteError reports a device-side error, optionally echoing the message
// that caused it.
type RemoteError struct {
	Value   bool
	Message []byte // raw echoed message, left undecoded
}

// RemotePingRequest is the device's keep-alive probe.
type RemotePingRequest struct {
	Val1 int32
	Val2 int32
}

// RemotePingResponse answers a RemotePingRequest, echoing Val1.
type RemotePingResponse struct {
	Val1 int32
}

// RemoteKeyInject injects a key event.
type RemoteKeyInject struct {
	KeyCode   int32
	Direction Direction
}

// RemoteAppInfo describes the foreground application.
type RemoteAppInfo struct {
	Counter    int32
	AppPackage string
	Label      string
}

// RemoteImeKeyInject notifies the client of the foreground app.
type RemoteImeKeyInject struct {
	AppInfo *RemoteAppInfo
}

// RemoteTextFieldStatus mirrors the state of the focused text field.
type RemoteTextFieldStatus struct {
	Start uint32
	End   uint32
	Value string
}

// RemoteEditInfo is one edit operation within a batch edit.
type RemoteEditInfo struct {
	Insert          uint32
	TextFieldStatus *RemoteTextFieldStatus
}

// RemoteImeBatchEdit carries text field edits. The counters are assigned
// by the device and must be echoed back on client-initiated edits.
type RemoteImeBatchEdit struct {
	ImeCounter   uint32
	FieldCounter uint32
	EditInfo     []RemoteEditInfo
}

// RemoteImeShowRequest signals the device opened an input field.
type RemoteImeShowRequest struct{}

// RemoteVoiceBegin opens a voice input session.
type RemoteVoiceBegin struct {
	SessionID uint32
}

// RemoteVoicePayload carries one chunk of voice audio.
type RemoteVoicePayload struct {
	SessionID uint32
	Payload   []byte
}

// RemoteVoiceEnd closes a voice input session.
type RemoteVoiceEnd struct {
	SessionID uint32
}

// RemoteSetVolumeLevel reports the device volume state.
type RemoteSetVolumeLevel struct {
	PlayerModel string
	VolumeMax   uint32
	VolumeLevel uint32
	VolumeMuted bool
}

// RemoteAdjustVolumeLevel accompanies incremental volume changes.
type RemoteAdjustVolumeLevel struct{}

// RemoteStart reports session start and the device power state.
type RemoteStart struct {
	Started bool
}

// RemoteAppLinkLaunchRequest launches a deep link on the device.
type RemoteAppLinkLaunchRequest struct {
	AppLink string
}

// Kind returns the variant name for logging.
func (m *RemoteMessage) Kind() string {
	switch {
	case m.Configure != nil:
		return "remote_configure"
	case m.SetActive != nil:
		return "remote_set_active"
	case m.Error != nil:
		return "remote_error"
	case m.PingRequest != nil:
		return "remote_ping_request"
	case m.PingResponse != nil:
		return "remote_ping_response"
	case m.KeyInject != nil:
		return "remote_key_inject"
	case m.ImeKeyInject != nil:
		return "remote_ime_key_inject"
	case m.ImeBatchEdit != nil:
		return "remote_ime_batch_edit"
	case m.ImeShowRequest != nil:
		return "remote_ime_show_request"
	case m.VoiceBegin != nil:
		return "remote_voice_begin"
	case m.VoicePayload != nil:
		return "remote_voice_payload"
	case m.VoiceEnd != nil:
		return "remote_voice_end"
	case m.SetVolumeLevel != nil:
		return "remote_set_volume_level"
	case m.AdjustVolumeLevel != nil:
		return "remote_adjust_volume_level"
	case m.Start != nil:
		return "remote_start"
	case m.AppLinkLaunchRequest != nil:
		return "remote_app_link_launch_request"
	default:
		return "remote_empty"
	}
}

// EncodeRemoteMessage encodes m to protobuf bytes.
func EncodeRemoteMessage(m *RemoteMessage) ([]byte, error) {
	var b []byte
	switch {
	case m.Configure != nil:
		b = appendMessageField(b, fieldRemoteConfigure, encodeRemoteConfigure(m.Configure))
	case m.SetActive != nil:
		var body []byte
		if m.SetActive.Active != 0 {
			body = appendVarintField(body, 1, uint64(m.SetActive.Active))
		}
		b = appendMessageField(b, fieldRemoteSetActive, body)
	case m.Error != nil:
		var body []byte
		if m.Error.Value {
			body = appendVarintField(body, 1, 1)
		}
		if len(m.Error.Message) > 0 {
			body = appendBytesField(body, 2, m.Error.Message)
		}
		b = appendMessageField(b, fieldRemoteError, body)
	case m.PingRequest != nil:
		var body []byte
		if m.PingRequest.Val1 != 0 {
			body = appendVarintField(body, 1, uint64(uint32(m.PingRequest.Val1)))
		}
		if m.PingRequest.Val2 != 0 {
			body = appendVarintField(body, 2, uint64(uint32(m.PingRequest.Val2)))
		}
		b = appendMessageField(b, fieldRemotePingRequest, body)
	case m.PingResponse != nil:
		var body []byte
		if m.PingResponse.Val1 != 0 {
			body = appendVarintField(body, 1, uint64(uint32(m.PingResponse.Val1)))
		}
		b = appendMessageField(b, fieldRemotePingResponse, body)
	case m.KeyInject != nil:
		var body []byte
		if m.KeyInject.KeyCode != 0 {
			body = appendVarintField(body, 1, uint64(uint32(m.KeyInject.KeyCode)))
		}
		if m.KeyInject.Direction != 0 {
			body = appendVarintField(body, 2, uint64(m.KeyInject.Direction))
		}
		b = appendMessageField(b, fieldRemoteKeyInject, body)
	case m.ImeKeyInject != nil:
		var body []byte
		if m.ImeKeyInject.AppInfo != nil {
			body = appendMessageField(body, 1, encodeRemoteAppInfo(m.ImeKeyInject.AppInfo))
		}
		b = appendMessageField(b, fieldRemoteImeKeyInject, body)
	case m.ImeBatchEdit != nil:
		b = appendMessageField(b, fieldRemoteImeBatchEdit, encodeRemoteImeBatchEdit(m.ImeBatchEdit))
	case m.ImeShowRequest != nil:
		b = appendMessageField(b, fieldRemoteImeShowRequest, nil)
	case m.VoiceBegin != nil:
		var body []byte
		if m.VoiceBegin.SessionID != 0 {
			body = appendVarintField(body, 1, uint64(m.VoiceBegin.SessionID))
		}
		b = appendMessageField(b, fieldRemoteVoiceBegin, body)
	case m.VoicePayload != nil:
		var body []byte
		if m.VoicePayload.SessionID != 0 {
			body = appendVarintField(body, 1, uint64(m.VoicePayload.SessionID))
		}
		if len(m.VoicePayload.Payload) > 0 {
			body = appendBytesField(body, 2, m.VoicePayload.Payload)
		}
		b = appendMessageField(b, fieldRemoteVoicePayload, body)
	case m.VoiceEnd != nil:
		var body []byte
		if m.VoiceEnd.SessionID != 0 {
			body = appendVarintField(body, 1, uint64(m.VoiceEnd.SessionID))
		}
		b = appendMessageField(b, fieldRemoteVoiceEnd, body)
	case m.SetVolumeLevel != nil:
		b = appendMessageField(b, fieldRemoteSetVolumeLevel, encodeRemoteSetVolumeLevel(m.SetVolumeLevel))
	case m.AdjustVolumeLevel != nil:
		b = appendMessageField(b, fieldRemoteAdjustVolume, nil)
	case m.Start != nil:
		var body []byte
		if m.Start.Started {
			body = appendVarintField(body, 1, 1)
		}
		b = appendMessageField(b, fieldRemoteStart, body)
	case m.AppLinkLaunchRequest != nil:
		var body []byte
		if m.AppLinkLaunchRequest.AppLink != "" {
			body = appendStringField(body, 1, m.AppLinkLaunchRequest.AppLink)
		}
		b = appendMessageField(b, fieldRemoteAppLinkLaunch, body)
	}
	return b, nil
}

func encodeRemoteConfigure(c *RemoteConfigure) []byte {
	var b []byte
	if c.Code1 != 0 {
		b = appendVarintField(b, 1, uint64(c.Code1))
	}
	if c.DeviceInfo != nil {
		b = appendMessageField(b, 2, encodeRemoteDeviceInfo(c.DeviceInfo))
	}
	return b
}

func encodeRemoteDeviceInfo(d *RemoteDeviceInfo) []byte {
	var b []byte
	if d.Model != "" {
		b = appendStringField(b, 1, d.Model)
	}
	if d.Vendor != "" {
		b = appendStringField(b, 2, d.Vendor)
	}
	if d.Unknown1 != 0 {
		b = appendVarintField(b, 3, uint64(d.Unknown1))
	}
	if d.Unknown2 != "" {
		b = appendStringField(b, 4, d.Unknown2)
	}
	if d.PackageName != "" {
		b = appendStringField(b, 5, d.PackageName)
	}
	if d.AppVersion != "" {
		b = appendStringField(b, 6, d.AppVersion)
	}
	return b
}

func encodeRemoteAppInfo(a *RemoteAppInfo) []byte {
	var b []byte
	if a.Counter != 0 {
		b = appendVarintField(b, 1, uint64(uint32(a.Counter)))
	}
	if a.AppPackage != "" {
		b = appendStringField(b, 2, a.AppPackage)
	}
	if a.Label != "" {
		b = appendStringField(b, 9, a.Label)
	}
	return b
}

func encodeRemoteImeBatchEdit(e *RemoteImeBatchEdit) []byte {
	var b []byte
	if e.ImeCounter != 0 {
		b = appendVarintField(b, 1, uint64(e.ImeCounter))
	}
	if e.FieldCounter != 0 {
		b = appendVarintField(b, 2, uint64(e.FieldCounter))
	}
	for _, info := range e.EditInfo {
		b = appendMessageField(b, 3, encodeRemoteEditInfo(info))
	}
	return b
}

func encodeRemoteEditInfo(e RemoteEditInfo) []byte {
	var b []byte
	if e.Insert != 0 {
		b = appendVarintField(b, 1, uint64(e.Insert))
	}
	if e.TextFieldStatus != nil {
		b = appendMessageField(b, 2, encodeRemoteTextFieldStatus(e.TextFieldStatus))
	}
	return b
}

func encodeRemoteTextFieldStatus(s *RemoteTextFieldStatus) []byte {
	var b []byte
	if s.Start != 0 {
		b = appendVarintField(b, 1, uint64(s.Start))
	}
	if s.End != 0 {
		b = appendVarintField(b, 2, uint64(s.End))
	}
	if s.Value != "" {
		b = appendStringField(b, 3, s.Value)
	}
	return b
}

func encodeRemoteSetVolumeLevel(v *RemoteSetVolumeLevel) []byte {
	var b []byte
	if v.PlayerModel != "" {
		b = appendStringField(b, 3, v.PlayerModel)
	}
	if v.VolumeMax != 0 {
		b = appendVarintField(b, 6, uint64(v.VolumeMax))
	}
	if v.VolumeLevel != 0 {
		b = appendVarintField(b, 7, uint64(v.VolumeLevel))
	}
	if v.VolumeMuted {
		b = appendVarintField(b, 8, 1)
	}
	return b
}

// DecodeRemoteMessage decodes protobuf bytes into a RemoteMessage.
// Unknown fields are skipped.
func DecodeRemoteMessage(data []byte) (*RemoteMessage, error) {
	m := &RemoteMessage{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		var body []byte
		if typ == protowire.BytesType {
			var err error
			var bn int
			body, bn, err = consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			data = data[bn:]
		} else {
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
			continue
		}

		var err error
		switch num {
		case fieldRemoteConfigure:
			m.Configure, err = decodeRemoteConfigure(body)
		case fieldRemoteSetActive:
			m.SetActive, err = decodeRemoteSetActive(body)
		case fieldRemoteError:
			m.Error, err = decodeRemoteError(body)
		case fieldRemotePingRequest:
			m.PingRequest, err = decodeRemotePingRequest(body)
		case fieldRemotePingResponse:
			m.PingResponse, err = decodeRemotePingResponse(body)
		case fieldRemoteKeyInject:
			m.KeyInject, err = decodeRemoteKeyInject(body)
		case fieldRemoteImeKeyInject:
			m.ImeKeyInject, err = decodeRemoteImeKeyInject(body)
		case fieldRemoteImeBatchEdit:
			m.ImeBatchEdit, err = decodeRemoteImeBatchEdit(body)
		case fieldRemoteImeShowRequest:
			m.ImeShowRequest = &RemoteImeShowRequest{}
		case fieldRemoteVoiceBegin:
			var id uint32
			id, err = decodeSessionID(body)
			m.VoiceBegin = &RemoteVoiceBegin{SessionID: id}
		case fieldRemoteVoicePayload:
			m.VoicePayload, err = decodeRemoteVoicePayload(body)
		case fieldRemoteVoiceEnd:
			var id uint32
			id, err = decodeSessionID(body)
			m.VoiceEnd = &RemoteVoiceEnd{SessionID: id}
		case fieldRemoteSetVolumeLevel:
			m.SetVolumeLevel, err = decodeRemoteSetVolumeLevel(body)
		case fieldRemoteAdjustVolume:
			m.AdjustVolumeLevel = &RemoteAdjustVolumeLevel{}
		case fieldRemoteStart:
			m.Start, err = decodeRemoteStart(body)
		case fieldRemoteAppLinkLaunch:
			m.AppLinkLaunchRequest, err = decodeRemoteAppLinkLaunch(body)
		default:
			// Unknown top-level variant, already consumed.
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeRemoteConfigure(data []byte) (*RemoteConfigure, error) {
	c := &RemoteConfigure{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			c.Code1 = Feature(v)
			data = data[n:]
		case 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			if c.DeviceInfo, err = decodeRemoteDeviceInfo(body); err != nil {
				return nil, err
			}
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

func decodeRemoteDeviceInfo(data []byte) (*RemoteDeviceInfo, error) {
	d := &RemoteDeviceInfo{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1, 2, 4, 5, 6:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			s := string(body)
			switch num {
			case 1:
				d.Model = s
			case 2:
				d.Vendor = s
			case 4:
				d.Unknown2 = s
			case 5:
				d.PackageName = s
			case 6:
				d.AppVersion = s
			}
			data = data[n:]
		case 3:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			d.Unknown1 = uint32(v)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return d, nil
}

func decodeRemoteSetActive(data []byte) (*RemoteSetActive, error) {
	a := &RemoteSetActive{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		if num == 1 {
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			a.Active = Feature(v)
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

func decodeRemoteError(data []byte) (*RemoteError, error) {
	e := &RemoteError{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			e.Value = v != 0
			data = data[n:]
		case 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			e.Message = append([]byte(nil), body...)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return e, nil
}

func decodeRemotePingRequest(data []byte) (*RemotePingRequest, error) {
	p := &RemotePingRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1, 2:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			if num == 1 {
				p.Val1 = int32(v)
			} else {
				p.Val2 = int32(v)
			}
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return p, nil
}

func decodeRemotePingResponse(data []byte) (*RemotePingResponse, error) {
	p := &RemotePingResponse{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		if num == 1 {
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			p.Val1 = int32(v)
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return p, nil
}

func decodeRemoteKeyInject(data []byte) (*RemoteKeyInject, error) {
	k := &RemoteKeyInject{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			k.KeyCode = int32(v)
			data = data[n:]
		case 2:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			k.Direction = Direction(v)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return k, nil
}

func decodeRemoteAppInfo(data []byte) (*RemoteAppInfo, error) {
	a := &RemoteAppInfo{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			a.Counter = int32(v)
			data = data[n:]
		case 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			a.AppPackage = string(body)
			data = data[n:]
		case 9:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			a.Label = string(body)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return a, nil
}

func decodeRemoteImeKeyInject(data []byte) (*RemoteImeKeyInject, error) {
	k := &RemoteImeKeyInject{}
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
			if k.AppInfo, err = decodeRemoteAppInfo(body); err != nil {
				return nil, err
			}
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return k, nil
}

func decodeRemoteTextFieldStatus(data []byte) (*RemoteTextFieldStatus, error) {
	s := &RemoteTextFieldStatus{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1, 2:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			if num == 1 {
				s.Start = uint32(v)
			} else {
				s.End = uint32(v)
			}
			data = data[n:]
		case 3:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			s.Value = string(body)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return s, nil
}

func decodeRemoteImeBatchEdit(data []byte) (*RemoteImeBatchEdit, error) {
	e := &RemoteImeBatchEdit{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1, 2:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			if num == 1 {
				e.ImeCounter = uint32(v)
			} else {
				e.FieldCounter = uint32(v)
			}
			data = data[n:]
		case 3:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			var info RemoteEditInfo
			if err := decodeRemoteEditInfoInto(&info, body); err != nil {
				return nil, err
			}
			e.EditInfo = append(e.EditInfo, info)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return e, nil
}

func decodeRemoteEditInfoInto(info *RemoteEditInfo, data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return err
			}
			info.Insert = uint32(v)
			data = data[n:]
		case 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return err
			}
			if info.TextFieldStatus, err = decodeRemoteTextFieldStatus(body); err != nil {
				return err
			}
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = data[n:]
		}
	}
	return nil
}

func decodeSessionID(data []byte) (uint32, error) {
	var id uint32
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, fieldErr(0, n)
		}
		data = data[n:]

		if num == 1 {
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return 0, err
			}
			id = uint32(v)
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return 0, err
		}
		data = data[n:]
	}
	return id, nil
}

func decodeRemoteVoicePayload(data []byte) (*RemoteVoicePayload, error) {
	p := &RemoteVoicePayload{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 1:
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			p.SessionID = uint32(v)
			data = data[n:]
		case 2:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			p.Payload = append([]byte(nil), body...)
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return p, nil
}

func decodeRemoteSetVolumeLevel(data []byte) (*RemoteSetVolumeLevel, error) {
	v := &RemoteSetVolumeLevel{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		switch num {
		case 3:
			body, n, err := consumeBytesField(num, data)
			if err != nil {
				return nil, err
			}
			v.PlayerModel = string(body)
			data = data[n:]
		case 6, 7, 8:
			val, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			switch num {
			case 6:
				v.VolumeMax = uint32(val)
			case 7:
				v.VolumeLevel = uint32(val)
			case 8:
				v.VolumeMuted = val != 0
			}
			data = data[n:]
		default:
			n, err := skipField(num, typ, data)
			if err != nil {
				return nil, err
			}
			data = data[n:]
		}
	}
	return v, nil
}

func decodeRemoteStart(data []byte) (*RemoteStart, error) {
	s := &RemoteStart{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fieldErr(0, n)
		}
		data = data[n:]

		if num == 1 {
			v, n, err := consumeVarintField(num, data)
			if err != nil {
				return nil, err
			}
			s.Started = v != 0
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return s, nil
}

func decodeRemoteAppLinkLaunch(data []byte) (*RemoteAppLinkLaunchRequest, error) {
	r := &RemoteAppLinkLaunchRequest{}
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
			r.AppLink = string(body)
			data = data[n:]
			continue
		}
		n, err := skipField(num, typ, data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return r, nil
}
