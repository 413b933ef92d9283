package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/audionode/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	// Register SSE endpoint with event type mapping
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time event stream for capture sessions, device changes, and errors",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"device-discovery":      events.DeviceDiscoveryEvent{},
		"capture-started":       events.CaptureStartedEvent{},
		"capture-stopped":       events.CaptureStoppedEvent{},
		"capture-error":         events.CaptureErrorEvent{},
		"capture-state-changed": events.CaptureStateChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Create event channel for this connection
		eventCh := make(chan any, 10)

		// Subscribe to all event types using event bus
		unsubscribers := []func(){
			events.SubscribeToChannel[events.DeviceDiscoveryEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CaptureStartedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CaptureStoppedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CaptureErrorEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CaptureStateChangedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Send the current device list so clients start from a known state
		if devices, err := s.detector.ListDevices(); err == nil {
			now := time.Now().Format(time.RFC3339)
			for _, device := range devices {
				if err := send.Data(events.DeviceDiscoveryEvent{
					DeviceName: device.Name,
					Action:     "added",
					Timestamp:  now,
				}); err != nil {
					return
				}
			}
		}

		// Keep connection alive and forward events
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				// Send event using Huma's SSE sender with error handling
				if err := send.Data(event); err != nil {
					// Connection failed, clean up and exit
					return
				}
			}
		}
	})
}
