//go:build !linux

package audio

import (
	"context"

	"github.com/smazurov/audionode/internal/events"
	"github.com/smazurov/audionode/internal/logging"
)

// Monitor is a no-op on platforms without netlink hotplug events.
// The device list is still populated once at startup.
type Monitor struct {
	detector Detector
	bus      *events.Bus
}

// NewMonitor creates a monitor that only performs the initial scan.
func NewMonitor(detector Detector, bus *events.Bus) *Monitor {
	return &Monitor{detector: detector, bus: bus}
}

// Start publishes discovery events for the devices present at startup.
func (m *Monitor) Start(_ context.Context) error {
	logger := logging.GetLogger("audio")

	devices, err := m.detector.ListDevices()
	if err != nil {
		logger.Warn("Failed to get initial device list", "error", err)
		return nil
	}
	for _, device := range devices {
		events.Publish(m.bus, events.DeviceDiscoveryEvent{
			DeviceName: device.Name,
			Action:     "added",
		})
	}
	logger.Info("Initialized with capture devices", "count", len(devices))
	return nil
}

// Stop is a no-op.
func (m *Monitor) Stop() {}
