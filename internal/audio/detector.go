// Package audio enumerates capture devices through OpenAL and probes
// their capabilities. On Linux a netlink hotplug monitor keeps the
// device list fresh as sound cards come and go.
package audio

import (
	"github.com/smazurov/audionode/pkg/openal"
)

// Device describes an audio capture device and its probed capabilities.
type Device struct {
	Name             string   `json:"name"`
	Default          bool     `json:"default"`
	SupportedRates   []int    `json:"supported_rates,omitempty"`
	SupportedFormats []string `json:"supported_formats,omitempty"`
	MaxChannels      int      `json:"max_channels,omitempty"`
}

// Detector enumerates capture devices.
type Detector interface {
	// ListDevices returns all currently available capture devices.
	// Capabilities are not probed; use Probe for that.
	ListDevices() ([]Device, error)

	// Probe opens the named device at common sample rates and formats
	// to determine what it actually supports.
	Probe(name string) (Device, error)
}

// NewDetector creates a detector backed by the OpenAL runtime.
func NewDetector() Detector {
	return &openalDetector{}
}

// probeBufferSamples is the internal ring size used for probe opens.
// Small on purpose; the device is closed immediately after the open
// succeeds.
const probeBufferSamples = 1024

type openalDetector struct{}

func (d *openalDetector) ListDevices() ([]Device, error) {
	if !openal.Supported() {
		return nil, openal.ErrDeviceUnavailable
	}

	names := openal.CaptureDeviceNames()
	defaultName := openal.DefaultCaptureDeviceName()

	devices := make([]Device, 0, len(names))
	for _, name := range names {
		devices = append(devices, Device{
			Name:    name,
			Default: name == defaultName,
		})
	}
	return devices, nil
}

func (d *openalDetector) Probe(name string) (Device, error) {
	device := Device{
		Name:    name,
		Default: name == openal.DefaultCaptureDeviceName(),
	}

	for _, rate := range openal.CommonSampleRates {
		if tryOpen(name, rate, openal.FormatMono16) {
			device.SupportedRates = append(device.SupportedRates, rate)
		}
	}
	if len(device.SupportedRates) == 0 {
		return device, openal.ErrDeviceUnavailable
	}

	// Format probing uses the first rate the device accepted.
	rate := device.SupportedRates[0]
	formats := []openal.Format{
		openal.FormatMono8,
		openal.FormatMono16,
		openal.FormatStereo8,
		openal.FormatStereo16,
	}
	for _, format := range formats {
		if tryOpen(name, rate, format) {
			device.SupportedFormats = append(device.SupportedFormats, format.String())
			if format.Channels() > device.MaxChannels {
				device.MaxChannels = format.Channels()
			}
		}
	}

	return device, nil
}

func tryOpen(name string, frequency int, format openal.Format) bool {
	dev, err := openal.OpenCapture(name, frequency, format, probeBufferSamples)
	if err != nil {
		return false
	}
	// OpenCapture falls back to the default device when the named one
	// refuses to open. A fallback open says nothing about the device
	// being probed, so require the name to match.
	match := name == "" || dev.Name() == name
	dev.Close()
	return match
}
