package models

import "time"

// SessionData is the API view of a capture session.
type SessionData struct {
	ID        string    `json:"id" example:"take1" doc:"Session identifier"`
	Device    string    `json:"device" example:"USB Audio Device" doc:"Device the session opened"`
	Frequency int       `json:"frequency" example:"44100" doc:"Sample rate in Hz"`
	Format    string    `json:"format" example:"mono16" doc:"Sample format"`
	State     string    `json:"state" example:"recording" doc:"Session state: recording, stopped, failed"`
	Path      string    `json:"path" example:"captures/take1.wav" doc:"Capture file path on the node"`
	StartedAt time.Time `json:"started_at" doc:"When recording began"`
	StoppedAt time.Time `json:"stopped_at,omitzero" doc:"When recording ended"`
	Samples   uint64    `json:"samples" example:"441000" doc:"Sample frames written"`
	Error     string    `json:"error,omitempty" doc:"Failure detail when state is failed"`
}

type SessionResponse struct {
	Body SessionData
}

type SessionsData struct {
	Sessions []SessionData `json:"sessions" doc:"Known capture sessions"`
	Count    int           `json:"count" example:"1" doc:"Number of sessions"`
}

type SessionsResponse struct {
	Body SessionsData
}

// StartCaptureBody carries parameters for a new capture session.
// Omitted fields fall back to 44.1kHz mono16 with a 4096-sample ring.
type StartCaptureBody struct {
	ID            string `json:"id" example:"take1" doc:"Session identifier, also the output file name"`
	Device        string `json:"device,omitempty" example:"USB Audio Device" doc:"OpenAL device name, empty for default"`
	Frequency     int    `json:"frequency,omitempty" example:"48000" doc:"Sample rate in Hz"`
	Format        string `json:"format,omitempty" example:"stereo16" doc:"Sample format: mono8, mono16, stereo8, stereo16"`
	BufferSamples int    `json:"buffer_samples,omitempty" example:"4096" doc:"Capture ring size in sample frames"`
	MaxDuration   int    `json:"max_duration,omitempty" example:"60" doc:"Stop automatically after this many seconds, 0 for unlimited"`
}
