package models

// AudioDevice represents an OpenAL capture device and its probed
// capabilities.
type AudioDevice struct {
	Name             string   `json:"name" example:"USB Audio Device" doc:"OpenAL device name"`
	Default          bool     `json:"default" example:"false" doc:"Whether this is the system default capture device"`
	SupportedRates   []int    `json:"supported_rates,omitempty" example:"44100,48000" doc:"Sample rates the device opened at"`
	SupportedFormats []string `json:"supported_formats,omitempty" example:"mono16,stereo16" doc:"Sample formats the device opened with"`
	MaxChannels      int      `json:"max_channels,omitempty" example:"2" doc:"Maximum channel count observed"`
}

// AudioDevicesData is the list payload for device enumeration.
type AudioDevicesData struct {
	Devices []AudioDevice `json:"devices" doc:"Available capture devices"`
	Default string        `json:"default,omitempty" example:"Built-in Microphone" doc:"System default capture device name"`
	Count   int           `json:"count" example:"2" doc:"Number of devices"`
}

type AudioDevicesResponse struct {
	Body AudioDevicesData
}

type AudioDeviceResponse struct {
	Body AudioDevice
}

// ExtensionData describes one runtime capability probe result.
type ExtensionData struct {
	Name    string `json:"name" example:"ALC_EXT_CAPTURE" doc:"Extension or capability name"`
	Present bool   `json:"present" example:"true" doc:"Whether the runtime reports it"`
}

type ExtensionsData struct {
	Extensions []ExtensionData `json:"extensions" doc:"Probed runtime capabilities"`
	Count      int             `json:"count" example:"12" doc:"Number of registered capabilities"`
}

type ExtensionsResponse struct {
	Body ExtensionsData
}
