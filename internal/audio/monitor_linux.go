//go:build linux

package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/smazurov/audionode/internal/events"
	"github.com/smazurov/audionode/internal/hotplug"
	"github.com/smazurov/audionode/internal/logging"
	"github.com/smazurov/audionode/pkg/openal"
)

// settleDelay gives the kernel and the OpenAL runtime time to register
// a newly plugged card before the device list is rescanned.
const settleDelay = 1 * time.Second

// Monitor watches for sound card hotplug events and keeps the capture
// device list fresh, publishing DeviceDiscoveryEvent on changes.
type Monitor struct {
	detector Detector
	bus      *events.Bus

	mu          sync.Mutex
	lastDevices map[string]Device
	cancel      context.CancelFunc
}

// NewMonitor creates a hotplug monitor over the given detector.
func NewMonitor(detector Detector, bus *events.Bus) *Monitor {
	return &Monitor{
		detector:    detector,
		bus:         bus,
		lastDevices: make(map[string]Device),
	}
}

// Start performs an initial scan and begins listening for sound card
// hotplug events. It returns after the listener goroutines are running.
func (m *Monitor) Start(ctx context.Context) error {
	logger := logging.GetLogger("audio")

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, m.cancel = context.WithCancel(ctx)

	// Initialize with current devices
	devices, err := m.detector.ListDevices()
	if err != nil {
		logger.Warn("Failed to get initial device list", "error", err)
	} else {
		for _, device := range devices {
			m.lastDevices[device.Name] = device
			events.Publish(m.bus, events.DeviceDiscoveryEvent{
				DeviceName: device.Name,
				Action:     "added",
				Timestamp:  time.Now().Format(time.RFC3339),
			})
		}
		logger.Info("Initialized with capture devices", "count", len(devices))
	}

	mon, err := hotplug.NewMonitor()
	if err != nil {
		return fmt.Errorf("failed to create hotplug monitor: %w", err)
	}
	mon.AddSubsystemFilter(hotplug.SubsystemSound)

	eventCh := make(chan hotplug.Event, 16)

	go func() {
		if runErr := mon.Run(ctx, eventCh); runErr != nil && ctx.Err() == nil {
			logger.Error("Hotplug monitor stopped", "error", runErr)
		}
		mon.Close()
	}()

	go func() {
		logger.Info("Hotplug monitoring started for sound devices")
		for {
			select {
			case <-ctx.Done():
				logger.Info("Hotplug monitor stopped")
				return
			case ev, ok := <-eventCh:
				if !ok {
					return
				}
				if !ev.IsSoundCard() {
					continue
				}
				if ev.Action != hotplug.ActionAdd && ev.Action != hotplug.ActionRemove {
					continue
				}

				logger.Debug("Hotplug event", "action", ev.Action, "kobj", ev.KObj)

				// Give the runtime time to pick up new cards
				if ev.Action == hotplug.ActionAdd {
					time.Sleep(settleDelay)
				}

				m.rescan(logger)
			}
		}
	}()

	return nil
}

// Stop stops the monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// rescan diffs the current device list against the last seen one and
// publishes discovery events for additions and removals.
func (m *Monitor) rescan(logger logging.Logger) {
	// Enumeration results are cached per process, so force a refresh
	// before diffing.
	openal.RefreshDeviceLists()

	devices, err := m.detector.ListDevices()
	if err != nil {
		logger.Warn("Device rescan failed", "error", err)
		return
	}

	current := make(map[string]Device, len(devices))
	for _, device := range devices {
		current[device.Name] = device
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().Format(time.RFC3339)

	for name := range m.lastDevices {
		if _, ok := current[name]; !ok {
			logger.Info("Capture device removed", "device", name)
			events.Publish(m.bus, events.DeviceDiscoveryEvent{
				DeviceName: name,
				Action:     "removed",
				Timestamp:  now,
			})
		}
	}

	for name := range current {
		if _, ok := m.lastDevices[name]; !ok {
			logger.Info("Capture device added", "device", name)
			events.Publish(m.bus, events.DeviceDiscoveryEvent{
				DeviceName: name,
				Action:     "added",
				Timestamp:  now,
			})
		}
	}

	m.lastDevices = current
}
