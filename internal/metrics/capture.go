// Package metrics provides Prometheus metrics for capture sessions.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	captureActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "audionode",
		Subsystem: "capture",
		Name:      "active_sessions",
		Help:      "Number of capture sessions currently recording",
	})

	captureSamplesRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audionode",
		Subsystem: "capture",
		Name:      "samples_read_total",
		Help:      "Total sample frames read from capture devices",
	}, []string{"session_id"})

	captureReadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audionode",
		Subsystem: "capture",
		Name:      "read_errors_total",
		Help:      "Total device errors observed while reading",
	}, []string{"session_id"})

	captureOverruns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audionode",
		Subsystem: "capture",
		Name:      "buffer_overruns_total",
		Help:      "Times the device ring buffer filled before a read drained it",
	}, []string{"session_id"})

	// Local cache for SSE exporter access.
	captureCache   = make(map[string]*CaptureSessionMetrics)
	captureCacheMu sync.RWMutex
)

// CaptureSessionMetrics holds current metric values for a session.
type CaptureSessionMetrics struct {
	SamplesRead float64
	ReadErrors  float64
	Overruns    float64
}

// SessionStarted increments the active session gauge.
func SessionStarted() {
	captureActive.Inc()
}

// SessionStopped decrements the active session gauge.
func SessionStopped() {
	captureActive.Dec()
}

// AddSamplesRead records sample frames read for a session.
func AddSamplesRead(sessionID string, samples float64) {
	captureSamplesRead.WithLabelValues(sessionID).Add(samples)
	updateCache(sessionID, func(m *CaptureSessionMetrics) { m.SamplesRead += samples })
}

// IncReadError records a device error during reading for a session.
func IncReadError(sessionID string) {
	captureReadErrors.WithLabelValues(sessionID).Inc()
	updateCache(sessionID, func(m *CaptureSessionMetrics) { m.ReadErrors++ })
}

// IncOverrun records a ring buffer overrun for a session.
func IncOverrun(sessionID string) {
	captureOverruns.WithLabelValues(sessionID).Inc()
	updateCache(sessionID, func(m *CaptureSessionMetrics) { m.Overruns++ })
}

// DeleteSessionMetrics removes all metrics for a session.
func DeleteSessionMetrics(sessionID string) {
	captureSamplesRead.DeleteLabelValues(sessionID)
	captureReadErrors.DeleteLabelValues(sessionID)
	captureOverruns.DeleteLabelValues(sessionID)

	captureCacheMu.Lock()
	delete(captureCache, sessionID)
	captureCacheMu.Unlock()
}

// GetAllSessionMetrics returns a snapshot of cached values for every
// session with recorded activity.
func GetAllSessionMetrics() map[string]CaptureSessionMetrics {
	captureCacheMu.RLock()
	defer captureCacheMu.RUnlock()
	out := make(map[string]CaptureSessionMetrics, len(captureCache))
	for id, m := range captureCache {
		out[id] = *m
	}
	return out
}

// GetSessionMetrics returns a snapshot of the cached values for a session.
func GetSessionMetrics(sessionID string) (CaptureSessionMetrics, bool) {
	captureCacheMu.RLock()
	defer captureCacheMu.RUnlock()
	m, ok := captureCache[sessionID]
	if !ok {
		return CaptureSessionMetrics{}, false
	}
	return *m, true
}

func updateCache(sessionID string, fn func(*CaptureSessionMetrics)) {
	captureCacheMu.Lock()
	defer captureCacheMu.Unlock()
	m, ok := captureCache[sessionID]
	if !ok {
		m = &CaptureSessionMetrics{}
		captureCache[sessionID] = m
	}
	fn(m)
}
