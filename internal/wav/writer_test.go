package wav

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestWriterHeaderFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 2, 48000, 16)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	pcm := make([]byte, 960) // 240 stereo 16-bit frames
	if _, err := w.Write(pcm); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	hdr := buf.Bytes()
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint16(hdr[20:22]); got != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(hdr[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(hdr[24:28]); got != 48000 {
		t.Errorf("sample rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint32(hdr[28:32]); got != 48000*4 {
		t.Errorf("byte rate = %d, want %d", got, 48000*4)
	}
	if got := binary.LittleEndian.Uint16(hdr[32:34]); got != 4 {
		t.Errorf("block align = %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(hdr[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
}

func TestWriterPatchesSizesOnSeekableClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, f, err := Create(path, 1, 44100, 16)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pcm := make([]byte, 2000) // 1000 mono 16-bit samples
	if _, err := w.Write(pcm); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) != headerSize+2000 {
		t.Fatalf("file size = %d, want %d", len(data), headerSize+2000)
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != headerSize-8+2000 {
		t.Errorf("riff size = %d, want %d", got, headerSize-8+2000)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 2000 {
		t.Errorf("data size = %d, want 2000", got)
	}
}

func TestWriterNonSeekableKeepsPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 1, 8000, 8)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if _, err := w.Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// bytes.Buffer cannot seek, so the streaming placeholder stays.
	if got := binary.LittleEndian.Uint32(buf.Bytes()[40:44]); got != 0xFFFFFFFF-headerSize {
		t.Errorf("data size = %#x, want streaming placeholder", got)
	}
}

func TestWriterSampleAccounting(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 2, 44100, 16)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if _, err := w.Write(make([]byte, 400)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if w.BytesWritten() != 400 {
		t.Errorf("BytesWritten = %d, want 400", w.BytesWritten())
	}
	if w.Samples() != 100 {
		t.Errorf("Samples = %d, want 100 stereo frames", w.Samples())
	}
}

func TestWriterRejectsBadParameters(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name     string
		channels int
		rate     int
		bits     int
	}{
		{name: "zero channels", channels: 0, rate: 44100, bits: 16},
		{name: "too many channels", channels: 9, rate: 44100, bits: 16},
		{name: "zero rate", channels: 1, rate: 0, bits: 16},
		{name: "unsupported depth", channels: 1, rate: 44100, bits: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWriter(&buf, tt.channels, tt.rate, tt.bits); err == nil {
				t.Error("NewWriter accepted invalid parameters")
			}
		})
	}
}

func TestWriterWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 1, 44100, 16)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := w.Write([]byte{0, 0}); err == nil {
		t.Error("Write after Close should fail")
	}
	// Second Close is a no-op.
	if err := w.Close(); err != nil {
		t.Errorf("repeated Close failed: %v", err)
	}
}
