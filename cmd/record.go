package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smazurov/audionode/internal/capture"
	"github.com/smazurov/audionode/internal/events"
	"github.com/smazurov/audionode/internal/logging"
	"github.com/spf13/cobra"
)

// CreateRecordCmd creates the record command.
func CreateRecordCmd() *cobra.Command {
	var device string
	var frequency int
	var format string
	var bufferSamples int
	var duration time.Duration
	var outputDir string
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "record [session-id]",
		Short: "Record a capture session to a WAV file",
		Long: `Opens an OpenAL capture device and records into <output-dir>/<session-id>.wav ` +
			`until interrupted or --duration elapses. Runs without the API server.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			sessionID := args[0]

			// Initialize minimal logging
			loggingConfig := logging.Config{
				Level:  "info",
				Format: "text",
			}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			// Create logger with session_id context for journal integration
			logger := logging.GetLogger("record").With("session_id", sessionID)

			logger.Info("Starting capture", "output_dir", outputDir)

			bus := events.New()
			service := capture.NewService(outputDir, bus, nil)

			done := make(chan events.CaptureStoppedEvent, 1)
			unsubscribe := events.Subscribe(bus, func(e events.CaptureStoppedEvent) {
				if e.SessionID == sessionID {
					done <- e
				}
			})
			defer unsubscribe()

			info, err := service.StartSession(capture.StartRequest{
				ID:            sessionID,
				Device:        device,
				Frequency:     frequency,
				Format:        format,
				BufferSamples: bufferSamples,
				MaxDuration:   duration,
			})
			if err != nil {
				logger.Error("Failed to start capture", "error", err)
				os.Exit(1)
			}
			logger.Info("Recording",
				"device", info.Device,
				"frequency", info.Frequency,
				"format", info.Format,
				"path", info.Path)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logger.Info("Received signal, stopping", "signal", sig.String())
				if _, stopErr := service.StopSession(sessionID); stopErr != nil {
					logger.Error("Failed to stop capture", "error", stopErr)
					os.Exit(1)
				}
				<-done
			case ev := <-done:
				if ev.Reason == capture.ReasonError {
					final, _ := service.GetSession(sessionID)
					logger.Error("Capture failed", "error", final.Error)
					os.Exit(1)
				}
			}

			final, _ := service.GetSession(sessionID)
			logger.Info("Capture finished",
				"samples", final.Samples,
				"path", final.Path)
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "OpenAL capture device name (default device if empty)")
	cmd.Flags().IntVarP(&frequency, "frequency", "f", 44100, "Sample rate in Hz")
	cmd.Flags().StringVar(&format, "format", "mono16", "Sample format (mono8, mono16, stereo8, stereo16)")
	cmd.Flags().IntVar(&bufferSamples, "buffer-samples", 4096, "Capture ring size in sample frames")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop automatically after this duration (0 = until interrupted)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "captures", "Directory for capture files")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	return cmd
}
