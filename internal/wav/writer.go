// Package wav writes PCM audio as RIFF/WAVE files.
//
// The writer streams samples as they arrive and patches the RIFF and
// data chunk sizes on Close when the destination supports seeking.
// Non-seekable destinations (HTTP responses, pipes) get a header with
// the maximum chunk sizes, which every common player accepts for
// streamed WAV.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const headerSize = 44

// Writer encodes little-endian PCM into a WAVE container.
type Writer struct {
	w          io.Writer
	channels   int
	sampleRate int
	bitsPerSmp int
	written    uint32
	closed     bool
}

// NewWriter writes a WAVE header for the given PCM parameters and
// returns a Writer ready to accept sample data.
func NewWriter(w io.Writer, channels, sampleRate, bitsPerSample int) (*Writer, error) {
	if channels < 1 || channels > 8 {
		return nil, fmt.Errorf("wav: invalid channel count %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}
	if bitsPerSample != 8 && bitsPerSample != 16 {
		return nil, fmt.Errorf("wav: unsupported bit depth %d", bitsPerSample)
	}

	wr := &Writer{
		w:          w,
		channels:   channels,
		sampleRate: sampleRate,
		bitsPerSmp: bitsPerSample,
	}
	// Placeholder sizes; patched on Close when w is seekable.
	if err := wr.writeHeader(0xFFFFFFFF-8, 0xFFFFFFFF-headerSize); err != nil {
		return nil, err
	}
	return wr, nil
}

// Create opens path for writing and returns a Writer over it.
func Create(path string, channels, sampleRate, bitsPerSample int) (*Writer, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("wav: create %s: %w", path, err)
	}
	w, err := NewWriter(f, channels, sampleRate, bitsPerSample)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, nil, err
	}
	return w, f, nil
}

func (w *Writer) writeHeader(riffSize, dataSize uint32) error {
	blockAlign := w.channels * w.bitsPerSmp / 8
	byteRate := w.sampleRate * blockAlign

	var hdr [headerSize]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], riffSize)
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(hdr[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(hdr[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(hdr[34:36], uint16(w.bitsPerSmp))
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataSize)

	if _, err := w.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	return nil
}

// Write appends raw PCM bytes to the data chunk.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("wav: write after close")
	}
	n, err := w.w.Write(p)
	w.written += uint32(n)
	if err != nil {
		return n, fmt.Errorf("wav: write data: %w", err)
	}
	return n, nil
}

// BytesWritten reports the size of the data chunk so far.
func (w *Writer) BytesWritten() uint32 {
	return w.written
}

// Samples reports the number of sample frames written so far.
func (w *Writer) Samples() uint64 {
	blockAlign := uint32(w.channels * w.bitsPerSmp / 8)
	if blockAlign == 0 {
		return 0
	}
	return uint64(w.written / blockAlign)
}

// Close finalizes the file. If the underlying writer is an io.WriteSeeker
// the RIFF and data chunk sizes are patched to the actual data length.
// Close does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	ws, ok := w.w.(io.WriteSeeker)
	if !ok {
		return nil
	}

	if _, err := ws.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("wav: seek riff size: %w", err)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], headerSize-8+w.written)
	if _, err := ws.Write(buf[:]); err != nil {
		return fmt.Errorf("wav: patch riff size: %w", err)
	}

	if _, err := ws.Seek(40, io.SeekStart); err != nil {
		return fmt.Errorf("wav: seek data size: %w", err)
	}
	binary.LittleEndian.PutUint32(buf[:], w.written)
	if _, err := ws.Write(buf[:]); err != nil {
		return fmt.Errorf("wav: patch data size: %w", err)
	}

	if _, err := ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("wav: seek end: %w", err)
	}
	return nil
}
