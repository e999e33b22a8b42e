package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func writeTestLog(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.atvlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	for _, ev := range events {
		logger.Log(ev)
	}
	logger.Close()
	return path
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader() error = %v", err)
	}
	defer reader.Close()

	var out []Event
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		out = append(out, ev)
	}
}

func TestReaderFilters(t *testing.T) {
	now := time.Now().UTC()
	events := []Event{
		{Timestamp: now, ConnectionID: "a", Direction: DirectionIn, Layer: LayerTransport, Channel: ChannelPairing},
		{Timestamp: now.Add(time.Second), ConnectionID: "a", Direction: DirectionOut, Layer: LayerWire, Channel: ChannelPairing},
		{Timestamp: now.Add(2 * time.Second), ConnectionID: "b", Direction: DirectionIn, Layer: LayerSession, Channel: ChannelRemote},
	}
	path := writeTestLog(t, events)

	if got := readAll(t, path, Filter{}); len(got) != 3 {
		t.Errorf("no filter: got %d events, want 3", len(got))
	}

	if got := readAll(t, path, Filter{ConnectionID: "a"}); len(got) != 2 {
		t.Errorf("ConnectionID filter: got %d events, want 2", len(got))
	}

	out := DirectionOut
	if got := readAll(t, path, Filter{Direction: &out}); len(got) != 1 {
		t.Errorf("Direction filter: got %d events, want 1", len(got))
	}

	remote := ChannelRemote
	if got := readAll(t, path, Filter{Channel: &remote}); len(got) != 1 {
		t.Errorf("Channel filter: got %d events, want 1", len(got))
	}

	start := now.Add(500 * time.Millisecond)
	end := now.Add(1500 * time.Millisecond)
	if got := readAll(t, path, Filter{TimeStart: &start, TimeEnd: &end}); len(got) != 1 {
		t.Errorf("time window filter: got %d events, want 1", len(got))
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "absent.atvlog")); err == nil {
		t.Error("NewReader() on missing file expected error, got nil")
	}
}
