package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/audionode/internal/api/models"
	"github.com/smazurov/audionode/internal/audio"
	"github.com/smazurov/audionode/pkg/openal"
)

// ProbeDeviceInput identifies the device to probe. The device name goes
// in a query parameter because OpenAL names contain spaces and slashes.
type ProbeDeviceInput struct {
	Device string `query:"device" example:"USB Audio Device" doc:"OpenAL device name, empty for the default device"`
}

// registerDeviceRoutes registers audio device discovery endpoints
func (s *Server) registerDeviceRoutes() {
	// List capture devices
	huma.Register(s.api, huma.Operation{
		OperationID: "list-audio-devices",
		Method:      http.MethodGet,
		Path:        "/api/audio/devices",
		Summary:     "List Audio Devices",
		Description: "List all available OpenAL capture devices",
		Tags:        []string{"audio"},
		Errors:      []int{401, 503},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.AudioDevicesResponse, error) {
		devices, err := s.detector.ListDevices()
		if err != nil {
			return nil, huma.Error503ServiceUnavailable("Audio runtime unavailable", err)
		}

		resp := &models.AudioDevicesResponse{}
		resp.Body.Devices = make([]models.AudioDevice, 0, len(devices))
		for _, device := range devices {
			resp.Body.Devices = append(resp.Body.Devices, toAPIDevice(device))
			if device.Default {
				resp.Body.Default = device.Name
			}
		}
		resp.Body.Count = len(devices)
		return resp, nil
	})

	// Probe device capabilities
	huma.Register(s.api, huma.Operation{
		OperationID: "probe-audio-device",
		Method:      http.MethodGet,
		Path:        "/api/audio/devices/probe",
		Summary:     "Probe Device Capabilities",
		Description: "Open the device at common sample rates and formats to determine what it supports",
		Tags:        []string{"audio"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *ProbeDeviceInput) (*models.AudioDeviceResponse, error) {
		device, err := s.detector.Probe(input.Device)
		if err != nil {
			return nil, huma.Error404NotFound("Device could not be opened", err)
		}
		return &models.AudioDeviceResponse{Body: toAPIDevice(device)}, nil
	})

	// List runtime capabilities
	huma.Register(s.api, huma.Operation{
		OperationID: "list-audio-extensions",
		Method:      http.MethodGet,
		Path:        "/api/audio/extensions",
		Summary:     "List Runtime Capabilities",
		Description: "List OpenAL extensions and capabilities and whether the runtime reports them",
		Tags:        []string{"audio"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.ExtensionsResponse, error) {
		names := openal.CapabilityNames()
		resp := &models.ExtensionsResponse{}
		resp.Body.Extensions = make([]models.ExtensionData, 0, len(names))
		for _, name := range names {
			resp.Body.Extensions = append(resp.Body.Extensions, models.ExtensionData{
				Name:    name,
				Present: openal.HasCapability(name),
			})
		}
		resp.Body.Count = len(names)
		return resp, nil
	})

	s.logger.Info("Audio device routes registered")
}

func toAPIDevice(device audio.Device) models.AudioDevice {
	return models.AudioDevice{
		Name:             device.Name,
		Default:          device.Default,
		SupportedRates:   device.SupportedRates,
		SupportedFormats: device.SupportedFormats,
		MaxChannels:      device.MaxChannels,
	}
}
