package openal

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the binding layer before any native call
// is made, or for lifecycle violations.
var (
	// ErrInvalidArgument reports a bad parameter (non-positive
	// frequency or buffer size, empty destination buffer).
	ErrInvalidArgument = errors.New("openal: invalid argument")

	// ErrOutOfRange reports a destination buffer too small for the
	// requested sample count.
	ErrOutOfRange = errors.New("openal: destination buffer too small")

	// ErrDeviceUnavailable reports that no device could be opened
	// after all fallback candidates were exhausted.
	ErrDeviceUnavailable = errors.New("openal: device unavailable")

	// ErrDeviceClosed reports an operation on a closed device handle.
	ErrDeviceClosed = errors.New("openal: device closed")
)

// ErrorCode is an ALC error value as returned by alcGetError.
type ErrorCode int32

// ALC error codes from AL/alc.h.
const (
	ErrNone           ErrorCode = 0
	ErrInvalidDevice  ErrorCode = 0xA001
	ErrInvalidContext ErrorCode = 0xA002
	ErrInvalidEnum    ErrorCode = 0xA003
	ErrInvalidValue   ErrorCode = 0xA004
	ErrOutOfMemory    ErrorCode = 0xA005
)

// String returns the ALC error name for the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "ALC_NO_ERROR"
	case ErrInvalidDevice:
		return "ALC_INVALID_DEVICE"
	case ErrInvalidContext:
		return "ALC_INVALID_CONTEXT"
	case ErrInvalidEnum:
		return "ALC_INVALID_ENUM"
	case ErrInvalidValue:
		return "ALC_INVALID_VALUE"
	case ErrOutOfMemory:
		return "ALC_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("ALC_ERROR(0x%X)", int32(c))
	}
}

// DeviceError is an error reported by the native layer for a specific
// device, surfaced verbatim from alcGetError.
type DeviceError struct {
	Code   ErrorCode
	Device string
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("openal: %s", e.Code)
	}
	return fmt.Sprintf("openal: %s (device %q)", e.Code, e.Device)
}

// deviceError wraps a non-zero ALC error code, or returns nil.
func deviceError(code ErrorCode, device string) error {
	if code == ErrNone {
		return nil
	}
	return &DeviceError{Code: code, Device: device}
}
