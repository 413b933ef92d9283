package exporters

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/smazurov/audionode/internal/events"
	"github.com/smazurov/audionode/internal/metrics"
)

// SSEExporter exports capture session metrics via Server-Sent Events.
type SSEExporter struct {
	bus      *events.Bus
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewSSEExporter creates a new SSE exporter.
func NewSSEExporter(bus *events.Bus) *SSEExporter {
	return &SSEExporter{
		bus:      bus,
		interval: 1 * time.Second,
	}
}

// Start begins the SSE export loop.
func (s *SSEExporter) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run()
}

// Stop stops the SSE exporter and waits for the goroutine to finish.
func (s *SSEExporter) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *SSEExporter) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.publishMetrics()
		}
	}
}

func (s *SSEExporter) publishMetrics() {
	for sessionID, m := range metrics.GetAllSessionMetrics() {
		events.Publish(s.bus, events.SessionMetricsEvent{
			SessionID:   sessionID,
			SamplesRead: strconv.FormatFloat(m.SamplesRead, 'f', 0, 64),
			ReadErrors:  strconv.FormatFloat(m.ReadErrors, 'f', 0, 64),
			Overruns:    strconv.FormatFloat(m.Overruns, 'f', 0, 64),
		})
	}
}
