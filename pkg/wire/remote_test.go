package wire

import (
	"errors"
	"testing"
)

func TestRemoteConfigureRoundTrip(t *testing.T) {
	original := &RemoteMessage{
		Configure: &RemoteConfigure{
			Code1: FeaturePing | FeatureKey | FeatureIME | FeaturePower | FeatureVolume | FeatureAppLink,
			DeviceInfo: &RemoteDeviceInfo{
				Model:       "BRAVIA 4K",
				Vendor:      "Sony",
				Unknown1:    1,
				Unknown2:    "1",
				PackageName: "atvremote",
				AppVersion:  "1.0.0",
			},
		},
	}

	data, err := EncodeRemoteMessage(original)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}

	if decoded.Configure == nil {
		t.Fatal("Configure missing after round trip")
	}
	if decoded.Configure.Code1 != original.Configure.Code1 {
		t.Errorf("Code1 = %v, want %v", decoded.Configure.Code1, original.Configure.Code1)
	}
	info := decoded.Configure.DeviceInfo
	if info == nil {
		t.Fatal("DeviceInfo missing after round trip")
	}
	if info.Model != "BRAVIA 4K" || info.Vendor != "Sony" {
		t.Errorf("DeviceInfo = %+v", info)
	}
	if info.PackageName != "atvremote" || info.AppVersion != "1.0.0" {
		t.Errorf("DeviceInfo = %+v", info)
	}
}

func TestRemoteKeyInjectRoundTrip(t *testing.T) {
	original := &RemoteMessage{
		KeyInject: &RemoteKeyInject{KeyCode: 26, Direction: DirectionShort},
	}

	data, err := EncodeRemoteMessage(original)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}

	if decoded.KeyInject == nil {
		t.Fatal("KeyInject missing after round trip")
	}
	if decoded.KeyInject.KeyCode != 26 {
		t.Errorf("KeyCode = %d, want 26", decoded.KeyInject.KeyCode)
	}
	if decoded.KeyInject.Direction != DirectionShort {
		t.Errorf("Direction = %v, want SHORT", decoded.KeyInject.Direction)
	}
	if decoded.Kind() != "remote_key_inject" {
		t.Errorf("Kind() = %q, want %q", decoded.Kind(), "remote_key_inject")
	}
}

func TestRemotePingPongRoundTrip(t *testing.T) {
	ping := &RemoteMessage{PingRequest: &RemotePingRequest{Val1: 42}}
	data, err := EncodeRemoteMessage(ping)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}
	if decoded.PingRequest == nil || decoded.PingRequest.Val1 != 42 {
		t.Fatalf("PingRequest = %+v, want Val1=42", decoded.PingRequest)
	}

	pong := &RemoteMessage{PingResponse: &RemotePingResponse{Val1: decoded.PingRequest.Val1}}
	data, err = EncodeRemoteMessage(pong)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err = DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}
	if decoded.PingResponse == nil || decoded.PingResponse.Val1 != 42 {
		t.Errorf("PingResponse = %+v, want Val1=42", decoded.PingResponse)
	}
}

func TestRemoteImeBatchEditRoundTrip(t *testing.T) {
	original := &RemoteMessage{
		ImeBatchEdit: &RemoteImeBatchEdit{
			ImeCounter:   3,
			FieldCounter: 7,
			EditInfo: []RemoteEditInfo{
				{
					Insert: 1,
					TextFieldStatus: &RemoteTextFieldStatus{
						Start: 4,
						End:   4,
						Value: "hello",
					},
				},
			},
		},
	}

	data, err := EncodeRemoteMessage(original)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}

	edit := decoded.ImeBatchEdit
	if edit == nil {
		t.Fatal("ImeBatchEdit missing after round trip")
	}
	if edit.ImeCounter != 3 || edit.FieldCounter != 7 {
		t.Errorf("counters = (%d, %d), want (3, 7)", edit.ImeCounter, edit.FieldCounter)
	}
	if len(edit.EditInfo) != 1 {
		t.Fatalf("EditInfo len = %d, want 1", len(edit.EditInfo))
	}
	status := edit.EditInfo[0].TextFieldStatus
	if status == nil || status.Start != 4 || status.End != 4 || status.Value != "hello" {
		t.Errorf("TextFieldStatus = %+v", status)
	}
}

func TestRemoteSetVolumeLevelRoundTrip(t *testing.T) {
	original := &RemoteMessage{
		SetVolumeLevel: &RemoteSetVolumeLevel{
			PlayerModel: "BRAVIA",
			VolumeMax:   100,
			VolumeLevel: 35,
			VolumeMuted: true,
		},
	}

	data, err := EncodeRemoteMessage(original)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}

	v := decoded.SetVolumeLevel
	if v == nil {
		t.Fatal("SetVolumeLevel missing after round trip")
	}
	if v.VolumeMax != 100 || v.VolumeLevel != 35 || !v.VolumeMuted {
		t.Errorf("SetVolumeLevel = %+v", v)
	}
}

func TestRemoteStartRoundTrip(t *testing.T) {
	for _, started := range []bool{true, false} {
		original := &RemoteMessage{Start: &RemoteStart{Started: started}}
		data, err := EncodeRemoteMessage(original)
		if err != nil {
			t.Fatalf("EncodeRemoteMessage() error = %v", err)
		}
		decoded, err := DecodeRemoteMessage(data)
		if err != nil {
			t.Fatalf("DecodeRemoteMessage() error = %v", err)
		}
		if decoded.Start == nil {
			t.Fatal("Start missing after round trip")
		}
		if decoded.Start.Started != started {
			t.Errorf("Started = %v, want %v", decoded.Start.Started, started)
		}
	}
}

func TestRemoteAppLinkRoundTrip(t *testing.T) {
	original := &RemoteMessage{
		AppLinkLaunchRequest: &RemoteAppLinkLaunchRequest{
			AppLink: "https://www.netflix.com/title/80100172",
		},
	}

	data, err := EncodeRemoteMessage(original)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}

	if decoded.AppLinkLaunchRequest == nil {
		t.Fatal("AppLinkLaunchRequest missing after round trip")
	}
	if decoded.AppLinkLaunchRequest.AppLink != original.AppLinkLaunchRequest.AppLink {
		t.Errorf("AppLink = %q", decoded.AppLinkLaunchRequest.AppLink)
	}
}

func TestRemoteImeKeyInjectRoundTrip(t *testing.T) {
	original := &RemoteMessage{
		ImeKeyInject: &RemoteImeKeyInject{
			AppInfo: &RemoteAppInfo{AppPackage: "com.netflix.ninja"},
		},
	}

	data, err := EncodeRemoteMessage(original)
	if err != nil {
		t.Fatalf("EncodeRemoteMessage() error = %v", err)
	}
	decoded, err := DecodeRemoteMessage(data)
	if err != nil {
		t.Fatalf("DecodeRemoteMessage() error = %v", err)
	}

	if decoded.ImeKeyInject == nil || decoded.ImeKeyInject.AppInfo == nil {
		t.Fatal("ImeKeyInject missing after round trip")
	}
	if decoded.ImeKeyInject.AppInfo.AppPackage != "com.netflix.ninja" {
		t.Errorf("AppPackage = %q", decoded.ImeKeyInject.AppInfo.AppPackage)
	}
}

func TestDecodeRemoteMalformed(t *testing.T) {
	_, err := DecodeRemoteMessage([]byte{0x0a, 0x05, 0x08})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestFeatureHasAndString(t *testing.T) {
	f := FeaturePing | FeatureKey | FeatureVolume
	if !f.Has(FeaturePing) || !f.Has(FeatureKey|FeatureVolume) {
		t.Error("Has() = false for set bits")
	}
	if f.Has(FeatureAppLink) {
		t.Error("Has(FeatureAppLink) = true for unset bit")
	}
	if got := f.String(); got != "PING|KEY|VOLUME" {
		t.Errorf("String() = %q, want %q", got, "PING|KEY|VOLUME")
	}
	if got := Feature(0).String(); got != "NONE" {
		t.Errorf("Feature(0).String() = %q, want NONE", got)
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		direction Direction
		want      string
	}{
		{DirectionStartLong, "START_LONG"},
		{DirectionEndLong, "END_LONG"},
		{DirectionShort, "SHORT"},
		{Direction(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.direction.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.direction, got, tt.want)
		}
	}
}
