// Package capture records audio from OpenAL devices into WAV files and
// manages the lifecycle of named capture sessions.
package capture

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/smazurov/audionode/internal/metrics"
	"github.com/smazurov/audionode/pkg/openal"
)

// Source is the capture device surface the recorder drains.
// *openal.CaptureDevice satisfies it.
type Source interface {
	Name() string
	Format() openal.Format
	Frequency() int
	BufferSamples() int
	Start() error
	Stop() error
	Available() (int, error)
	Read(dst []byte, samples int) error
	Err() error
	Close() error
}

// pollInterval is how often the recorder checks the device ring buffer.
// At 44.1kHz with the default 4096-sample ring this drains the buffer
// roughly twice per fill.
const pollInterval = 20 * time.Millisecond

// Stats summarizes a finished recording.
type Stats struct {
	Samples  uint64
	Overruns uint64
	Errors   uint64
}

// Recorder drains one Source into a writer until its context ends.
type Recorder struct {
	sessionID string
	source    Source
	out       io.Writer
}

// NewRecorder creates a recorder for one session.
func NewRecorder(sessionID string, source Source, out io.Writer) *Recorder {
	return &Recorder{
		sessionID: sessionID,
		source:    source,
		out:       out,
	}
}

// Run starts the source and copies samples to the writer until ctx is
// cancelled, then performs a final drain so no captured audio is lost.
// The source is stopped but not closed; the caller owns it.
func (r *Recorder) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if err := r.source.Start(); err != nil {
		return stats, fmt.Errorf("start capture: %w", err)
	}
	// Start is fire-and-forget at the native layer; poll for the real
	// outcome before reporting the session as running.
	if err := r.source.Err(); err != nil {
		return stats, fmt.Errorf("capture did not start: %w", err)
	}

	ringSize := r.source.BufferSamples()
	sampleSize := r.source.Format().SampleSize()
	buf := make([]byte, ringSize*sampleSize)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stopErr := r.source.Stop()
			// Samples accumulated before the stop remain readable.
			if err := r.drain(buf, ringSize, &stats); err != nil {
				return stats, err
			}
			if stopErr != nil {
				return stats, stopErr
			}
			return stats, ctx.Err()

		case <-ticker.C:
			if err := r.drain(buf, ringSize, &stats); err != nil {
				return stats, err
			}
		}
	}
}

func (r *Recorder) drain(buf []byte, ringSize int, stats *Stats) error {
	available, err := r.source.Available()
	if err != nil {
		return err
	}
	if available <= 0 {
		return nil
	}
	if available >= ringSize {
		// Ring filled up between polls; older samples were dropped by
		// the native layer.
		stats.Overruns++
		metrics.IncOverrun(r.sessionID)
		available = ringSize
	}

	if err := r.source.Read(buf[:available*r.source.Format().SampleSize()], available); err != nil {
		return err
	}
	if err := r.source.Err(); err != nil {
		stats.Errors++
		metrics.IncReadError(r.sessionID)
		return err
	}

	n := available * r.source.Format().SampleSize()
	if _, err := r.out.Write(buf[:n]); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}

	stats.Samples += uint64(available)
	metrics.AddSamplesRead(r.sessionID, float64(available))
	return nil
}
