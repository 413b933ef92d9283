package events

// Event type constants for kelindar/event.
const (
	TypeDeviceDiscovery uint32 = iota + 1
	TypeCaptureStarted
	TypeCaptureStopped
	TypeCaptureError
	TypeCaptureStateChanged
	TypeLogEntry
	TypeSessionMetrics
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// DeviceDiscoveryEvent represents audio device hotplug events.
type DeviceDiscoveryEvent struct {
	DeviceName string `json:"device_name" example:"USB Audio Device" doc:"OpenAL device name"`
	Action     string `json:"action" example:"added" doc:"Action type: added, removed"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceDiscoveryEvent.
func (e DeviceDiscoveryEvent) Type() uint32 { return TypeDeviceDiscovery }

// CaptureStartedEvent is published when a capture session begins.
type CaptureStartedEvent struct {
	SessionID string `json:"session_id" example:"mic-check" doc:"Capture session identifier"`
	Device    string `json:"device" example:"Built-in Microphone" doc:"Device the session opened"`
	Frequency int    `json:"frequency" example:"44100" doc:"Sample rate in Hz"`
	Format    string `json:"format" example:"mono16" doc:"Sample format"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CaptureStartedEvent.
func (e CaptureStartedEvent) Type() uint32 { return TypeCaptureStarted }

// CaptureStoppedEvent is published when a capture session ends.
type CaptureStoppedEvent struct {
	SessionID string `json:"session_id" example:"mic-check" doc:"Capture session identifier"`
	Samples   uint64 `json:"samples" example:"441000" doc:"Total samples recorded"`
	Reason    string `json:"reason" example:"stopped" doc:"Why the session ended: stopped, completed, error"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CaptureStoppedEvent.
func (e CaptureStoppedEvent) Type() uint32 { return TypeCaptureStopped }

// CaptureErrorEvent represents a failed capture operation.
type CaptureErrorEvent struct {
	SessionID string `json:"session_id" example:"mic-check" doc:"Capture session identifier"`
	Device    string `json:"device" example:"Built-in Microphone" doc:"Device name"`
	Error     string `json:"error" example:"openal: device unavailable" doc:"Detailed error description"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CaptureErrorEvent.
func (e CaptureErrorEvent) Type() uint32 { return TypeCaptureError }

// CaptureStateChangedEvent represents a change in a session's recording
// state. Used for LED control and other reactive subsystems.
type CaptureStateChangedEvent struct {
	SessionID string `json:"session_id" example:"mic-check" doc:"Capture session identifier"`
	Active    bool   `json:"active" example:"true" doc:"Whether the session is recording"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for CaptureStateChangedEvent.
func (e CaptureStateChangedEvent) Type() uint32 { return TypeCaptureStateChanged }

// GetSessionID implements the CaptureStateEvent interface for the LED manager.
func (e CaptureStateChangedEvent) GetSessionID() string {
	return e.SessionID
}

// IsActive implements the CaptureStateEvent interface for the LED manager.
func (e CaptureStateChangedEvent) IsActive() bool {
	return e.Active
}

// LogEntryEvent represents a log entry for SSE streaming.
type LogEntryEvent struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number for deduplication"`
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"api" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }

// SessionMetricsEvent carries periodic capture counters for SSE clients.
type SessionMetricsEvent struct {
	SessionID   string `json:"session_id" example:"mic-check" doc:"Capture session identifier"`
	SamplesRead string `json:"samples_read" example:"441000" doc:"Total sample frames read"`
	ReadErrors  string `json:"read_errors" example:"0" doc:"Device errors observed while reading"`
	Overruns    string `json:"overruns" example:"1" doc:"Ring buffer overruns"`
}

// Type returns the event type identifier for SessionMetricsEvent.
func (e SessionMetricsEvent) Type() uint32 { return TypeSessionMetrics }
