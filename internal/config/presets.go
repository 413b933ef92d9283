package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// PresetConfig represents a saved capture configuration that can be
// started by name without respecifying device parameters.
type PresetConfig struct {
	ID      string `toml:"id" json:"id"`
	Name    string `toml:"name" json:"name"`
	Device  string `toml:"device" json:"device"` // OpenAL capture device name, empty for default
	Enabled bool   `toml:"enabled" json:"enabled"`

	// Capture settings
	Frequency     int    `toml:"frequency,omitempty" json:"frequency,omitempty"`
	Format        string `toml:"format,omitempty" json:"format,omitempty"`
	BufferSamples int    `toml:"buffer_samples,omitempty" json:"buffer_samples,omitempty"`

	// Maximum capture duration in seconds, 0 means unlimited
	MaxDuration int `toml:"max_duration,omitempty" json:"max_duration,omitempty"`

	// Metadata
	CreatedAt time.Time `toml:"created_at" json:"created_at"`
	UpdatedAt time.Time `toml:"updated_at" json:"updated_at"`
}

// PresetsConfig represents the complete presets configuration file
type PresetsConfig struct {
	Version int                     `toml:"version" json:"version"`
	Presets map[string]PresetConfig `toml:"presets" json:"presets"`
}

// LoadPresetsFile parses a presets TOML file. A missing file yields an
// empty config. Used directly and as the config watcher loader.
func LoadPresetsFile(path string) (*PresetsConfig, error) {
	cfg := &PresetsConfig{
		Version: 1,
		Presets: make(map[string]PresetConfig),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read presets config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse presets config: %w", err)
	}

	if cfg.Presets == nil {
		cfg.Presets = make(map[string]PresetConfig)
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	return cfg, nil
}

// PresetManager manages capture preset configurations.
// Safe for concurrent use by API handlers and the config watcher.
type PresetManager struct {
	configPath string
	mu         sync.RWMutex
	config     *PresetsConfig
}

// NewPresetManager creates a new preset manager
func NewPresetManager(configPath string) *PresetManager {
	if configPath == "" {
		configPath = "presets.toml"
	}

	return &PresetManager{
		configPath: configPath,
		config: &PresetsConfig{
			Version: 1,
			Presets: make(map[string]PresetConfig),
		},
	}
}

// Load loads the presets configuration from file
func (pm *PresetManager) Load() error {
	cfg, err := LoadPresetsFile(pm.configPath)
	if err != nil {
		return err
	}

	pm.mu.Lock()
	pm.config = cfg
	pm.mu.Unlock()
	return nil
}

// Apply replaces the in-memory presets with cfg. Called by the config
// watcher when the presets file changes on disk.
func (pm *PresetManager) Apply(cfg *PresetsConfig) {
	if cfg == nil {
		return
	}
	pm.mu.Lock()
	pm.config = cfg
	pm.mu.Unlock()
}

// Save saves the presets configuration to file
func (pm *PresetManager) Save() error {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.save()
}

// save writes the config to disk. Callers must hold at least a read lock.
func (pm *PresetManager) save() error {
	dir := filepath.Dir(pm.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(pm.config)
	if err != nil {
		return fmt.Errorf("failed to marshal presets config: %w", err)
	}

	if err := os.WriteFile(pm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets config: %w", err)
	}

	return nil
}

// AddPreset adds a new preset to the configuration
func (pm *PresetManager) AddPreset(preset PresetConfig) error {
	if preset.ID == "" {
		return fmt.Errorf("preset ID cannot be empty")
	}

	if preset.Name == "" {
		preset.Name = preset.ID
	}

	if preset.Frequency <= 0 {
		preset.Frequency = 44100
	}
	if preset.Format == "" {
		preset.Format = "mono16"
	}
	if preset.BufferSamples <= 0 {
		preset.BufferSamples = 4096
	}

	now := time.Now()
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = now
	}
	preset.UpdatedAt = now

	if !preset.Enabled {
		preset.Enabled = true
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.config.Presets[preset.ID] = preset
	return pm.save()
}

// UpdatePreset updates an existing preset configuration
func (pm *PresetManager) UpdatePreset(id string, updates PresetConfig) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	existing, exists := pm.config.Presets[id]
	if !exists {
		return fmt.Errorf("preset %s not found", id)
	}

	// Preserve creation time and ID
	updates.ID = existing.ID
	updates.CreatedAt = existing.CreatedAt
	updates.UpdatedAt = time.Now()

	// Use existing values if not provided
	if updates.Name == "" {
		updates.Name = existing.Name
	}
	if updates.Device == "" {
		updates.Device = existing.Device
	}
	if updates.Frequency == 0 {
		updates.Frequency = existing.Frequency
	}
	if updates.Format == "" {
		updates.Format = existing.Format
	}
	if updates.BufferSamples == 0 {
		updates.BufferSamples = existing.BufferSamples
	}

	pm.config.Presets[id] = updates
	return pm.save()
}

// RemovePreset removes a preset from the configuration
func (pm *PresetManager) RemovePreset(id string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, exists := pm.config.Presets[id]; !exists {
		return fmt.Errorf("preset %s not found", id)
	}

	delete(pm.config.Presets, id)
	return pm.save()
}

// GetPreset retrieves a preset by ID
func (pm *PresetManager) GetPreset(id string) (PresetConfig, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	preset, exists := pm.config.Presets[id]
	return preset, exists
}

// GetPresets returns a snapshot of all presets
func (pm *PresetManager) GetPresets() map[string]PresetConfig {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	presets := make(map[string]PresetConfig, len(pm.config.Presets))
	for id, preset := range pm.config.Presets {
		presets[id] = preset
	}
	return presets
}

// GetEnabledPresets returns only enabled presets
func (pm *PresetManager) GetEnabledPresets() map[string]PresetConfig {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	enabled := make(map[string]PresetConfig)
	for id, preset := range pm.config.Presets {
		if preset.Enabled {
			enabled[id] = preset
		}
	}
	return enabled
}
