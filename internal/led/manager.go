package led

import (
	"log/slog"
	"sync"

	"github.com/smazurov/audionode/internal/events"
)

// Manager subscribes to capture events and controls the system LED
// based on aggregate recording state: solid while any session records,
// blink while idle.
type Manager struct {
	controller       Controller
	eventBus         *events.Bus
	unsubscribe      func()
	stopChan         chan struct{}
	logger           *slog.Logger
	sessionStates    map[string]bool // sessionID -> recording state
	sessionStatesMux sync.RWMutex
}

// NewManager creates a new LED manager that reacts to capture state changes
func NewManager(controller Controller, eventBus *events.Bus, logger *slog.Logger) *Manager {
	return &Manager{
		controller:    controller,
		eventBus:      eventBus,
		stopChan:      make(chan struct{}),
		logger:        logger,
		sessionStates: make(map[string]bool),
	}
}

// Start begins listening for capture state change events
func (m *Manager) Start() {
	m.unsubscribe = events.Subscribe(m.eventBus, func(e events.CaptureStateChangedEvent) {
		m.handleEvent(e)
	})
	m.logger.Info("LED manager started")
}

// Stop stops the LED manager and unsubscribes from events
func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	close(m.stopChan)
	m.logger.Info("LED manager stopped")
}

// handleEvent processes a single capture state changed event
func (m *Manager) handleEvent(event events.CaptureStateChangedEvent) {
	sessionID := event.GetSessionID()
	active := event.IsActive()

	m.sessionStatesMux.Lock()
	if active {
		m.sessionStates[sessionID] = true
	} else {
		delete(m.sessionStates, sessionID)
	}
	m.sessionStatesMux.Unlock()

	m.logger.Debug("Capture state changed",
		"session_id", sessionID,
		"active", active)

	m.updateSystemLED()
}

// updateSystemLED sets the system LED pattern based on whether any
// session is recording
func (m *Manager) updateSystemLED() {
	m.sessionStatesMux.RLock()
	recording := len(m.sessionStates) > 0
	m.sessionStatesMux.RUnlock()

	if recording {
		// Recording in progress - solid LED
		if err := m.controller.Set("system", true, "solid"); err != nil {
			m.logger.Warn("Failed to set system LED to solid", "error", err)
		}
		m.logger.Debug("Recording active, system LED set to solid")
	} else {
		// Idle - blinking LED
		if err := m.controller.Set("system", true, "blink"); err != nil {
			m.logger.Warn("Failed to set system LED to blink", "error", err)
		}
		m.logger.Debug("No active sessions, system LED set to blink")
	}
}

// GetController returns the underlying LED controller for direct API access
func (m *Manager) GetController() Controller {
	return m.controller
}
