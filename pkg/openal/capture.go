package openal

/*
#include <AL/al.h>
#include <AL/alc.h>
*/
import "C"

import (
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"
)

// CaptureDevice owns one native audio capture handle. The lifecycle is
// strictly forward: open, start/stop any number of times, close. A
// closed device rejects every operation except repeated Close.
//
// A CaptureDevice is not safe for concurrent use; callers invoking
// Start, Stop, Read or Close from multiple goroutines must provide
// their own synchronization.
type CaptureDevice struct {
	handle     unsafe.Pointer // *C.ALCdevice
	name       string
	format     Format
	frequency  int
	bufferSize int
	running    bool
	closed     bool
}

// The capture entry points are reached through package-level function
// variables so the fallback and lifecycle logic is exercisable without
// a native runtime. Production keeps the cgo bindings assigned below.
var (
	captureOpen          = alcCaptureOpen
	captureClose         = alcCaptureClose
	captureStart         = alcCaptureStart
	captureStop          = alcCaptureStop
	captureName          = alcCaptureName
	captureError         = alcCaptureError
	defaultCaptureDevice = DefaultCaptureDeviceName
)

// OpenCapture opens an audio capture device. The native runtime is
// asked for bufferSamples of internal ring buffer; samples accumulate
// there until Read drains them.
//
// Device selection falls back through three candidates in order: the
// requested name, the platform default (NULL device name), and the
// enumerated default capture device. Each failed attempt is logged
// with its parameters and the readable native error. If all three
// fail, ErrDeviceUnavailable is returned and no resource is held.
func OpenCapture(deviceName string, frequency int, format Format, bufferSamples int) (*CaptureDevice, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: frequency must be positive, got %d", ErrInvalidArgument, frequency)
	}
	if bufferSamples <= 0 {
		return nil, fmt.Errorf("%w: ring buffer size must be positive, got %d", ErrInvalidArgument, bufferSamples)
	}

	logger := slog.With("component", "openal")

	handle := captureOpen(deviceName, frequency, format, bufferSamples)
	if handle == nil {
		logger.Warn("Capture open failed, retrying with platform default",
			"device", deviceName,
			"frequency", frequency,
			"format", format.String(),
			"buffer_samples", bufferSamples,
			"alc_error", captureError(nil).String())
		handle = captureOpen("", frequency, format, bufferSamples)
	}
	if handle == nil {
		fallback := defaultCaptureDevice()
		logger.Warn("Capture open failed, retrying with enumerated default",
			"device", fallback,
			"frequency", frequency,
			"format", format.String(),
			"buffer_samples", bufferSamples,
			"alc_error", captureError(nil).String())
		handle = captureOpen(fallback, frequency, format, bufferSamples)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: all capture open attempts failed (requested %q, frequency %d, format %s, buffer %d)",
			ErrDeviceUnavailable, deviceName, frequency, format, bufferSamples)
	}

	name := captureName(handle)

	// The native layer may gesture an error even though it handed out
	// a handle. Surface it instead of continuing with a device in an
	// unknown state.
	if code := captureError(handle); code != ErrNone {
		captureClose(handle)
		return nil, deviceError(code, name)
	}

	d := &CaptureDevice{
		handle:     handle,
		name:       name,
		format:     format,
		frequency:  frequency,
		bufferSize: bufferSamples,
	}

	// Safety net for callers that never reach Close. The finalizer
	// path must not raise; Close is idempotent and error-free here.
	runtime.SetFinalizer(d, func(d *CaptureDevice) { _ = d.Close() })

	return d, nil
}

func alcCaptureOpen(name string, frequency int, format Format, bufferSamples int) unsafe.Pointer {
	cName := cString(name)
	defer freeCString(cName)
	return unsafe.Pointer(C.alcCaptureOpenDevice(cName, C.ALCuint(frequency), C.ALCenum(format), C.ALCsizei(bufferSamples)))
}

func alcCaptureClose(handle unsafe.Pointer) {
	C.alcCaptureCloseDevice((*C.ALCdevice)(handle))
}

func alcCaptureStart(handle unsafe.Pointer) {
	C.alcCaptureStart((*C.ALCdevice)(handle))
}

func alcCaptureStop(handle unsafe.Pointer) {
	C.alcCaptureStop((*C.ALCdevice)(handle))
}

func alcCaptureName(handle unsafe.Pointer) string {
	return alcString((*C.ALCdevice)(handle), C.ALC_CAPTURE_DEVICE_SPECIFIER)
}

func alcCaptureError(handle unsafe.Pointer) ErrorCode {
	return alcLastError((*C.ALCdevice)(handle))
}

// Name returns the device name the native layer reported for the
// handle that was actually opened, which differs from the requested
// name when a fallback candidate succeeded.
func (d *CaptureDevice) Name() string { return d.name }

// Format returns the sample format fixed at open time.
func (d *CaptureDevice) Format() Format { return d.format }

// Frequency returns the sample rate in Hz fixed at open time.
func (d *CaptureDevice) Frequency() int { return d.frequency }

// BufferSamples returns the ring buffer size requested at open time.
func (d *CaptureDevice) BufferSamples() int { return d.bufferSize }

// Running reports whether capture is active.
func (d *CaptureDevice) Running() bool { return d.running }

// Closed reports whether the device has been closed.
func (d *CaptureDevice) Closed() bool { return d.closed }

// Start begins accumulating samples into the native ring buffer. The
// native call result is not checked; callers wanting certainty poll
// Err afterwards.
func (d *CaptureDevice) Start() error {
	if d.closed {
		return ErrDeviceClosed
	}
	captureStart(d.handle)
	d.running = true
	return nil
}

// Stop halts capture. Samples already accumulated remain readable.
func (d *CaptureDevice) Stop() error {
	if d.closed {
		return ErrDeviceClosed
	}
	captureStop(d.handle)
	d.running = false
	return nil
}

// Available returns the number of captured samples ready to read. The
// native layer is queried on every call.
func (d *CaptureDevice) Available() (int, error) {
	if d.closed {
		return 0, ErrDeviceClosed
	}
	var n C.ALCint
	C.alcGetIntegerv((*C.ALCdevice)(d.handle), C.ALC_CAPTURE_SAMPLES, 1, &n)
	return int(n), nil
}

// Read copies samples captured samples into dst without blocking. It
// is the caller's responsibility that samples does not exceed what
// Available reported; the native layer's behavior on over-reads is
// undefined.
//
// The capacity check uses Format.SampleSize, which reports 1 byte for
// compressed formats; oversized requests in those formats are not
// reliably detected.
func (d *CaptureDevice) Read(dst []byte, samples int) error {
	if d.closed {
		return ErrDeviceClosed
	}
	if err := checkReadCapacity(d.format, samples, len(dst)); err != nil {
		return err
	}
	C.alcCaptureSamples((*C.ALCdevice)(d.handle), unsafe.Pointer(&dst[0]), C.ALCsizei(samples))
	return nil
}

// ReadInt16 is Read for 16-bit destinations.
func (d *CaptureDevice) ReadInt16(dst []int16, samples int) error {
	if d.closed {
		return ErrDeviceClosed
	}
	if err := checkReadCapacity(d.format, samples, len(dst)*2); err != nil {
		return err
	}
	C.alcCaptureSamples((*C.ALCdevice)(d.handle), unsafe.Pointer(&dst[0]), C.ALCsizei(samples))
	return nil
}

// checkReadCapacity validates a destination buffer against a requested
// sample count. The byte requirement comes from Format.SampleSize, so
// compressed formats (reported as 1 byte) under-detect; that gap is
// accepted and documented on Read.
func checkReadCapacity(format Format, samples, capacityBytes int) error {
	if capacityBytes == 0 {
		return fmt.Errorf("%w: destination buffer is empty", ErrInvalidArgument)
	}
	if need := samples * format.SampleSize(); need > capacityBytes {
		return fmt.Errorf("%w: %d samples of %s need %d bytes, destination holds %d",
			ErrOutOfRange, samples, format, need, capacityBytes)
	}
	return nil
}

// Err drains and returns the device's native error state. Start, Stop
// and Read do not check it themselves.
func (d *CaptureDevice) Err() error {
	if d.closed {
		return ErrDeviceClosed
	}
	return deviceError(captureError(d.handle), d.name)
}

// Close stops capture if running and releases the native handle. It is
// idempotent: the native close happens exactly once, and later calls
// return nil.
func (d *CaptureDevice) Close() error {
	if d.closed {
		return nil
	}
	if d.running {
		captureStop(d.handle)
		d.running = false
	}
	if d.handle != nil {
		captureClose(d.handle)
		d.handle = nil
	}
	d.closed = true
	runtime.SetFinalizer(d, nil)
	return nil
}
