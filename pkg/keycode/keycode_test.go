package keycode

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want int32
	}{
		{"POWER", 26},
		{"power", 26},
		{"KEYCODE_POWER", 26},
		{"keycode_dpad_up", 19},
		{"DPAD_CENTER", 23},
		{"VOLUME_UP", 24},
		{"MEDIA_PLAY_PAUSE", 85},
		{" HOME ", 3},
	}

	for _, tt := range tests {
		got, err := Lookup(tt.name)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("NOT_A_KEY")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Lookup() error = %v, want ErrUnknownKey", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("Names() is empty")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}
