package openal

/*
#include <AL/al.h>
#include <AL/alc.h>
*/
import "C"

import (
	"sync"
)

// Device enumeration is expensive, so the lists are computed once on
// first use and only read afterwards. The OpenAL runtime itself never
// reports hotplug; callers observing device changes through the OS can
// force a re-query with RefreshDeviceLists.
type deviceLists struct {
	supported       bool
	captureNames    []string
	defaultCapture  string
	playbackNames   []string
	defaultPlayback string
}

var (
	enumOnce sync.Once
	enumMu   sync.RWMutex
	enum     deviceLists
)

func enumerate() {
	enumOnce.Do(func() {
		enumMu.Lock()
		enum = queryDeviceLists()
		enumMu.Unlock()
	})
}

func queryDeviceLists() deviceLists {
	var lists deviceLists

	lists.supported = alcHasExtension("ALC_ENUMERATION_EXT")

	lists.captureNames = alcStringList(nil, C.ALC_CAPTURE_DEVICE_SPECIFIER)
	lists.defaultCapture = alcString(nil, C.ALC_CAPTURE_DEFAULT_DEVICE_SPECIFIER)

	// ALC_ENUMERATE_ALL_EXT exposes the full playback device list;
	// without it only the basic specifier is readable.
	if alcHasExtension("ALC_ENUMERATE_ALL_EXT") {
		lists.playbackNames = alcStringList(nil, C.ALC_ALL_DEVICES_SPECIFIER)
		lists.defaultPlayback = alcString(nil, C.ALC_DEFAULT_ALL_DEVICES_SPECIFIER)
	} else {
		lists.playbackNames = alcStringList(nil, C.ALC_DEVICE_SPECIFIER)
		lists.defaultPlayback = alcString(nil, C.ALC_DEFAULT_DEVICE_SPECIFIER)
	}

	// Enumeration itself may gesture an error; drain it so later
	// callers do not observe stale state.
	alcLastError(nil)

	return lists
}

// RefreshDeviceLists re-queries the runtime's device lists. Intended
// for hotplug observers that know the hardware changed.
func RefreshDeviceLists() {
	enumerate()
	lists := queryDeviceLists()
	enumMu.Lock()
	enum = lists
	enumMu.Unlock()
}

// Supported reports whether a usable OpenAL runtime is present: either
// the enumeration extension answers, or a default device is known.
func Supported() bool {
	enumerate()
	enumMu.RLock()
	defer enumMu.RUnlock()
	return enum.supported || enum.defaultCapture != "" || enum.defaultPlayback != ""
}

// CaptureDeviceNames returns the enumerated capture device names.
func CaptureDeviceNames() []string {
	enumerate()
	enumMu.RLock()
	defer enumMu.RUnlock()
	out := make([]string, len(enum.captureNames))
	copy(out, enum.captureNames)
	return out
}

// DefaultCaptureDeviceName returns the name of the system default
// recording device, or "" when none is known.
func DefaultCaptureDeviceName() string {
	enumerate()
	enumMu.RLock()
	defer enumMu.RUnlock()
	return enum.defaultCapture
}

// PlaybackDeviceNames returns the enumerated playback device names.
func PlaybackDeviceNames() []string {
	enumerate()
	enumMu.RLock()
	defer enumMu.RUnlock()
	out := make([]string, len(enum.playbackNames))
	copy(out, enum.playbackNames)
	return out
}

// DefaultPlaybackDeviceName returns the name of the system default
// playback device, or "" when none is known.
func DefaultPlaybackDeviceName() string {
	enumerate()
	enumMu.RLock()
	defer enumMu.RUnlock()
	return enum.defaultPlayback
}
