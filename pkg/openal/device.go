package openal

/*
#include <AL/al.h>
#include <AL/alc.h>
*/
import "C"

import (
	"fmt"
	"runtime"
)

// Device is a playback device handle. It exists so callers can open a
// device, probe its extensions and versions, and close it again; no
// context or source management is provided here.
type Device struct {
	handle *C.ALCdevice
	name   string
	closed bool
}

// Open opens a playback device by name. An empty name requests the
// platform default.
func Open(deviceName string) (*Device, error) {
	cName := cString(deviceName)
	defer freeCString(cName)

	handle := C.alcOpenDevice(cName)
	if handle == nil {
		return nil, fmt.Errorf("%w: playback open failed for %q (%s)",
			ErrDeviceUnavailable, deviceName, alcLastError(nil))
	}

	name := alcString(handle, C.ALC_DEVICE_SPECIFIER)
	if code := alcLastError(handle); code != ErrNone {
		C.alcCloseDevice(handle)
		return nil, deviceError(code, name)
	}

	d := &Device{handle: handle, name: name}
	runtime.SetFinalizer(d, func(d *Device) { _ = d.Close() })
	return d, nil
}

// Name returns the device name reported by the native layer.
func (d *Device) Name() string { return d.name }

// Closed reports whether the device has been closed.
func (d *Device) Closed() bool { return d.closed }

// IsExtensionPresent probes an ALC extension against this device.
func (d *Device) IsExtensionPresent(name string) bool {
	if d.closed {
		return false
	}
	cName := cString(name)
	defer freeCString(cName)
	return C.alcIsExtensionPresent(d.handle, cName) == C.ALC_TRUE
}

// Version returns the ALC major and minor version for this device.
func (d *Device) Version() (major, minor int, err error) {
	if d.closed {
		return 0, 0, ErrDeviceClosed
	}
	var maj, min C.ALCint
	C.alcGetIntegerv(d.handle, C.ALC_MAJOR_VERSION, 1, &maj)
	C.alcGetIntegerv(d.handle, C.ALC_MINOR_VERSION, 1, &min)
	return int(maj), int(min), nil
}

// Err drains and returns the device's native error state.
func (d *Device) Err() error {
	if d.closed {
		return ErrDeviceClosed
	}
	return deviceError(alcLastError(d.handle), d.name)
}

// Close releases the native handle. Idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	if d.handle != nil {
		C.alcCloseDevice(d.handle)
		d.handle = nil
	}
	d.closed = true
	runtime.SetFinalizer(d, nil)
	return nil
}
