package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/audionode/cmd"
	"github.com/smazurov/audionode/internal/api"
	"github.com/smazurov/audionode/internal/capture"
	"github.com/smazurov/audionode/internal/config"
	"github.com/smazurov/audionode/internal/events"
	"github.com/smazurov/audionode/internal/led"
	"github.com/smazurov/audionode/internal/logging"
	"github.com/smazurov/audionode/internal/metrics/exporters"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Capture settings
	CaptureDir string `help:"Directory for capture files" default:"captures" toml:"capture.dir" env:"CAPTURE_DIR"`

	// Presets settings
	PresetsConfigFile string `help:"Preset definitions file" default:"presets.toml" toml:"presets.config_file" env:"PRESETS_CONFIG_FILE"`

	// Metrics settings
	MetricsPrometheusEnabled bool `help:"Enable Prometheus endpoint" default:"true" toml:"metrics.prometheus_enabled" env:"METRICS_PROMETHEUS_ENABLED"`
	MetricsSSEEnabled        bool `help:"Enable metrics SSE export" default:"true" toml:"metrics.sse_enabled" env:"METRICS_SSE_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Features settings
	FeaturesLEDControl bool `help:"Enable LED control" default:"false" toml:"features.led_control_enabled" env:"FEATURES_LED_CONTROL"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCapture string `help:"Capture logging level" default:"info" toml:"logging.capture" env:"LOGGING_CAPTURE"`
	LoggingAudio   string `help:"Audio device logging level" default:"info" toml:"logging.audio" env:"LOGGING_AUDIO"`
	LoggingOpenAL  string `help:"OpenAL runtime logging level" default:"info" toml:"logging.openal" env:"LOGGING_OPENAL"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		loggingConfig := logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"capture": opts.LoggingCapture,
				"audio":   opts.LoggingAudio,
				"openal":  opts.LoggingOpenAL,
				"api":     opts.LoggingAPI,
			},
		}
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")

		// Create event bus for in-process event handling
		eventBus := events.New()

		// Publish log entries to the bus for SSE streaming
		logging.SetLogCallback(func(entry logging.LogEntry) {
			events.Publish(eventBus, events.LogEntryEvent{
				Seq:        entry.Seq,
				Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
				Level:      entry.Level,
				Module:     entry.Module,
				Message:    entry.Message,
				Attributes: entry.Attributes,
			})
		})

		// Initialize LED control if enabled
		var ledManager *led.Manager
		var ledController led.Controller
		if opts.FeaturesLEDControl {
			logger.Info("LED control enabled, initializing")
			ledController = led.New(logger)

			// Create LED manager that subscribes to capture state changes
			ledManager = led.NewManager(ledController, eventBus, logger)
		}

		// Load presets and watch the file for edits
		presetManager := config.NewPresetManager(opts.PresetsConfigFile)
		if loadErr := presetManager.Load(); loadErr != nil {
			logger.Warn("Failed to load presets", "error", loadErr)
		}
		presetsWatcher := config.NewConfigWatcher(
			opts.PresetsConfigFile,
			config.LoadPresetsFile,
			logging.GetLogger("config"),
		)
		presetsWatcher.OnReload(func(cfg *config.PresetsConfig) {
			presetManager.Apply(cfg)
			logger.Info("Presets reloaded", "count", len(cfg.Presets))
		})

		// Create capture service
		captureService := capture.NewService(opts.CaptureDir, eventBus, nil)

		apiOpts := &api.Options{
			AuthUsername:   opts.AuthUsername,
			AuthPassword:   opts.AuthPassword,
			CaptureService: captureService,
			PresetManager:  presetManager,
			EventBus:       eventBus,
		}

		// Add Prometheus handler if enabled
		if opts.MetricsPrometheusEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}

		// Add LED controller if available
		if ledController != nil {
			apiOpts.LEDController = ledController
		}

		server := api.NewServer(apiOpts)

		// Wire up SSE metrics exporter if enabled
		var sseExporter *exporters.SSEExporter
		if opts.MetricsSSEEnabled {
			sseExporter = exporters.NewSSEExporter(eventBus)
		}

		hooks.OnStart(func() {
			if sseExporter != nil {
				sseExporter.Start(context.Background())
			}

			// Watcher needs the file to exist; skip quietly when it doesn't
			if watchErr := presetsWatcher.Start(); watchErr != nil {
				logger.Debug("Presets watcher not started", "error", watchErr)
			}

			// Start LED manager if enabled
			if ledManager != nil {
				ledManager.Start()
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			// Stop recordings after the HTTP server stops accepting
			// requests so every WAV file gets finalized
			captureService.StopAll()

			if stopErr := presetsWatcher.Stop(); stopErr != nil {
				logger.Warn("Error stopping presets watcher", "error", stopErr)
			}
			if sseExporter != nil {
				sseExporter.Stop()
			}
			if ledManager != nil {
				ledManager.Stop()
			}
		})
	})

	// Add record command
	recordCmd := cmd.CreateRecordCmd()
	cli.Root().AddCommand(recordCmd)

	// Add devices command
	devicesCmd := cmd.CreateDevicesCmd()
	cli.Root().AddCommand(devicesCmd)

	// Run the CLI
	cli.Run()
}
