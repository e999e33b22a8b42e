package transport

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// chunkReader returns at most one byte per Read call, simulating worst-case
// TCP segmentation.
type chunkReader struct {
	data []byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func frame(payload []byte) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(payload)))
	return append(buf, payload...)
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	writer := NewFrameWriter(&buf)

	payload := []byte{0x08, 0x02, 0x10, 0xc8, 0x01}
	if err := writer.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	reader := NewFrameReader(&buf)
	got, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadFrame() = %x, want %x", got, payload)
	}
}

func TestFrameRoundTripLargePayload(t *testing.T) {
	// 300 bytes forces a two-byte varint prefix.
	payload := bytes.Repeat([]byte{0xaa}, 300)

	var buf bytes.Buffer
	if err := NewFrameWriter(&buf).WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	prefix, n := binary.Uvarint(buf.Bytes())
	if n != 2 || prefix != 300 {
		t.Errorf("length prefix = %d (%d bytes), want 300 (2 bytes)", prefix, n)
	}

	got, err := NewFrameReader(&buf).ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("payload corrupted in round trip")
	}
}

func TestReadFramePartialDelivery(t *testing.T) {
	payloads := [][]byte{
		[]byte("first"),
		bytes.Repeat([]byte{0x42}, 200),
		[]byte{0x01},
	}
	var stream []byte
	for _, p := range payloads {
		stream = append(stream, frame(p)...)
	}

	reader := NewFrameReader(&chunkReader{data: stream})
	for i, want := range payloads {
		got, err := reader.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() frame %d error = %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d = %x, want %x", i, got, want)
		}
	}
	if _, err := reader.ReadFrame(); err != io.EOF {
		t.Errorf("ReadFrame() after stream end error = %v, want io.EOF", err)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	full := frame([]byte("complete payload"))

	// Every cut inside the frame must yield ErrFrameTruncated, except a
	// cut at zero bytes which is a clean EOF.
	for cut := 1; cut < len(full); cut++ {
		reader := NewFrameReader(bytes.NewReader(full[:cut]))
		_, err := reader.ReadFrame()
		if !errors.Is(err, ErrFrameTruncated) {
			t.Errorf("cut at %d: error = %v, want ErrFrameTruncated", cut, err)
		}
	}

	reader := NewFrameReader(bytes.NewReader(nil))
	if _, err := reader.ReadFrame(); err != io.EOF {
		t.Errorf("empty stream: error = %v, want io.EOF", err)
	}
}

func TestReadFrameTruncatedVarint(t *testing.T) {
	// 0x80 starts a multi-byte varint that never completes.
	reader := NewFrameReader(bytes.NewReader([]byte{0x80}))
	if _, err := reader.ReadFrame(); !errors.Is(err, ErrFrameTruncated) {
		t.Errorf("error = %v, want ErrFrameTruncated", err)
	}
}

func TestWriteFrameEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFrameWriter(&buf).WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("WriteFrame(nil) error = %v, want ErrMessageEmpty", err)
	}
}

func TestReadFrameEmpty(t *testing.T) {
	reader := NewFrameReader(bytes.NewReader([]byte{0x00}))
	if _, err := reader.ReadFrame(); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("error = %v, want ErrMessageEmpty", err)
	}
}

func TestFrameTooLarge(t *testing.T) {
	var buf bytes.Buffer
	writer := NewFrameWriterWithMaxSize(&buf, 16)
	if err := writer.WriteFrame(bytes.Repeat([]byte{0x01}, 17)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("WriteFrame() error = %v, want ErrMessageTooLarge", err)
	}

	reader := NewFrameReaderWithMaxSize(bytes.NewReader(frame(bytes.Repeat([]byte{0x01}, 17))), 16)
	if _, err := reader.ReadFrame(); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("ReadFrame() error = %v, want ErrMessageTooLarge", err)
	}
}

func TestFramerBackToBack(t *testing.T) {
	var buf bytes.Buffer
	framer := NewFramer(&buf)

	for i := byte(0); i < 10; i++ {
		if err := framer.WriteFrame([]byte{i + 1}); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}
	for i := byte(0); i < 10; i++ {
		got, err := framer.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() error = %v", err)
		}
		if len(got) != 1 || got[0] != i+1 {
			t.Errorf("frame %d = %x", i, got)
		}
	}
}
