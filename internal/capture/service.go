package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/smazurov/audionode/internal/events"
	"github.com/smazurov/audionode/internal/logging"
	"github.com/smazurov/audionode/internal/metrics"
	"github.com/smazurov/audionode/internal/wav"
	"github.com/smazurov/audionode/pkg/openal"
)

// State describes where a session is in its lifecycle.
type State string

// Session states.
const (
	StateStarting  State = "starting"
	StateRecording State = "recording"
	StateStopped   State = "stopped"
	StateFailed    State = "failed"
)

// Stop reasons reported in CaptureStoppedEvent.
const (
	ReasonStopped   = "stopped"
	ReasonCompleted = "completed"
	ReasonError     = "error"
)

var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{0,63}$`)

// SessionInfo is a snapshot of one capture session.
type SessionInfo struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	Frequency int       `json:"frequency"`
	Format    string    `json:"format"`
	State     State     `json:"state"`
	Path      string    `json:"path"`
	StartedAt time.Time `json:"started_at"`
	StoppedAt time.Time `json:"stopped_at,omitzero"`
	Samples   uint64    `json:"samples"`
	Error     string    `json:"error,omitempty"`
}

// StartRequest carries the parameters for a new session. Zero values
// fall back to 44.1kHz mono16 with a 4096-sample ring.
type StartRequest struct {
	ID            string
	Device        string
	Frequency     int
	Format        string
	BufferSamples int
	MaxDuration   time.Duration
}

// OpenFunc opens a capture source. Production wiring uses OpenALSource;
// tests substitute fakes.
type OpenFunc func(device string, frequency int, format openal.Format, bufferSamples int) (Source, error)

// OpenALSource adapts openal.OpenCapture to the OpenFunc signature.
func OpenALSource(device string, frequency int, format openal.Format, bufferSamples int) (Source, error) {
	return openal.OpenCapture(device, frequency, format, bufferSamples)
}

type session struct {
	info   SessionInfo
	cancel context.CancelFunc
	done   chan struct{}
}

// Service manages capture sessions and their output files.
type Service struct {
	dir  string
	bus  *events.Bus
	open OpenFunc

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a session manager writing WAV files into dir.
func NewService(dir string, bus *events.Bus, open OpenFunc) *Service {
	if open == nil {
		open = OpenALSource
	}
	return &Service{
		dir:      dir,
		bus:      bus,
		open:     open,
		sessions: make(map[string]*session),
	}
}

// StartSession opens the requested device and begins recording into
// <dir>/<id>.wav. It returns once recording is running; the session
// outlives the request that started it and continues until StopSession,
// MaxDuration, or a device error.
func (s *Service) StartSession(req StartRequest) (SessionInfo, error) {
	logger := logging.GetLogger("capture").With("session_id", req.ID)

	if !sessionIDPattern.MatchString(req.ID) {
		return SessionInfo{}, fmt.Errorf("invalid session id %q", req.ID)
	}
	if req.Frequency == 0 {
		req.Frequency = 44100
	}
	if req.Format == "" {
		req.Format = "mono16"
	}
	if req.BufferSamples == 0 {
		req.BufferSamples = 4096
	}

	format, err := openal.ParseFormat(req.Format)
	if err != nil {
		return SessionInfo{}, err
	}

	runCtx := context.Background()
	var cancel context.CancelFunc
	if req.MaxDuration > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, req.MaxDuration)
	} else {
		runCtx, cancel = context.WithCancel(runCtx)
	}

	path := filepath.Join(s.dir, req.ID+".wav")
	sess := &session{
		info: SessionInfo{
			ID:        req.ID,
			Device:    req.Device,
			Frequency: req.Frequency,
			Format:    format.String(),
			State:     StateStarting,
			Path:      path,
			StartedAt: time.Now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// Reserve the id before releasing the lock. Two concurrent starts
	// with the same id must not both pass the duplicate check; the
	// loser would truncate the winner's file and orphan its recorder.
	s.mu.Lock()
	prev, replaced := s.sessions[req.ID]
	if replaced && (prev.info.State == StateRecording || prev.info.State == StateStarting) {
		s.mu.Unlock()
		cancel()
		return SessionInfo{}, fmt.Errorf("session %q is already recording", req.ID)
	}
	s.sessions[req.ID] = sess
	s.mu.Unlock()

	// fail undoes the reservation, restoring any finished session the
	// placeholder displaced, and releases waiters blocked on done.
	fail := func(err error) (SessionInfo, error) {
		s.mu.Lock()
		if replaced {
			s.sessions[req.ID] = prev
		} else {
			delete(s.sessions, req.ID)
		}
		s.mu.Unlock()
		cancel()
		close(sess.done)
		return SessionInfo{}, err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fail(fmt.Errorf("create capture directory: %w", err))
	}

	source, err := s.open(req.Device, req.Frequency, format, req.BufferSamples)
	if err != nil {
		events.Publish(s.bus, events.CaptureErrorEvent{
			SessionID: req.ID,
			Device:    req.Device,
			Error:     err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return fail(err)
	}

	writer, file, err := wav.Create(path, format.Channels(), req.Frequency, format.BitsPerSample())
	if err != nil {
		source.Close()
		return fail(err)
	}

	s.mu.Lock()
	sess.info.Device = source.Name()
	sess.info.State = StateRecording
	info := sess.info
	s.mu.Unlock()

	metrics.SessionStarted()
	now := time.Now().Format(time.RFC3339)
	events.Publish(s.bus, events.CaptureStartedEvent{
		SessionID: req.ID,
		Device:    info.Device,
		Frequency: req.Frequency,
		Format:    format.String(),
		Timestamp: now,
	})
	events.Publish(s.bus, events.CaptureStateChangedEvent{
		SessionID: req.ID,
		Active:    true,
		Timestamp: now,
	})

	logger.Info("Capture session started",
		"device", info.Device,
		"frequency", req.Frequency,
		"format", format.String(),
		"path", path)

	go s.record(runCtx, sess, source, writer, file, logger)

	return info, nil
}

// record runs the recorder and finalizes the session when it ends.
func (s *Service) record(ctx context.Context, sess *session, source Source, writer *wav.Writer, file *os.File, logger logging.Logger) {
	defer close(sess.done)

	recorder := NewRecorder(sess.info.ID, source, writer)
	stats, runErr := recorder.Run(ctx)

	if err := writer.Close(); err != nil {
		logger.Warn("Failed to finalize WAV file", "error", err)
	}
	if err := file.Close(); err != nil {
		logger.Warn("Failed to close capture file", "error", err)
	}
	if err := source.Close(); err != nil {
		logger.Warn("Failed to close capture device", "error", err)
	}

	reason := ReasonStopped
	var failure error
	switch {
	case runErr == nil || errors.Is(runErr, context.Canceled):
		// Explicit stop.
	case errors.Is(runErr, context.DeadlineExceeded):
		reason = ReasonCompleted
	default:
		reason = ReasonError
		failure = runErr
	}

	now := time.Now()

	s.mu.Lock()
	sess.info.Samples = stats.Samples
	sess.info.StoppedAt = now
	if failure != nil {
		sess.info.State = StateFailed
		sess.info.Error = failure.Error()
	} else {
		sess.info.State = StateStopped
	}
	s.mu.Unlock()

	metrics.SessionStopped()
	timestamp := now.Format(time.RFC3339)
	if failure != nil {
		logger.Error("Capture session failed", "error", failure, "samples", stats.Samples)
		events.Publish(s.bus, events.CaptureErrorEvent{
			SessionID: sess.info.ID,
			Device:    sess.info.Device,
			Error:     failure.Error(),
			Timestamp: timestamp,
		})
	} else {
		logger.Info("Capture session ended",
			"reason", reason,
			"samples", stats.Samples,
			"overruns", stats.Overruns)
	}
	events.Publish(s.bus, events.CaptureStoppedEvent{
		SessionID: sess.info.ID,
		Samples:   stats.Samples,
		Reason:    reason,
		Timestamp: timestamp,
	})
	events.Publish(s.bus, events.CaptureStateChangedEvent{
		SessionID: sess.info.ID,
		Active:    false,
		Timestamp: timestamp,
	})
}

// StopSession stops a recording session and waits for its file to be
// finalized.
func (s *Service) StopSession(id string) (SessionInfo, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return SessionInfo{}, fmt.Errorf("session %q not found", id)
	}

	sess.cancel()
	<-sess.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return sess.info, nil
}

// GetSession returns a snapshot of one session.
func (s *Service) GetSession(id string) (SessionInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return SessionInfo{}, false
	}
	return sess.info, true
}

// ListSessions returns snapshots of all known sessions.
func (s *Service) ListSessions() []SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.info)
	}
	return out
}

// RemoveSession forgets a finished session and deletes its file.
// Recording sessions must be stopped first.
func (s *Service) RemoveSession(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("session %q not found", id)
	}
	if sess.info.State == StateRecording || sess.info.State == StateStarting {
		s.mu.Unlock()
		return fmt.Errorf("session %q is recording, stop it first", id)
	}
	delete(s.sessions, id)
	path := sess.info.Path
	s.mu.Unlock()

	metrics.DeleteSessionMetrics(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove capture file: %w", err)
	}
	return nil
}

// StopAll stops every recording session. Used during shutdown.
func (s *Service) StopAll() {
	s.mu.Lock()
	var running []*session
	for _, sess := range s.sessions {
		if sess.info.State == StateRecording || sess.info.State == StateStarting {
			running = append(running, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range running {
		sess.cancel()
		<-sess.done
	}
}
