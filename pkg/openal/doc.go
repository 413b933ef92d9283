// Package openal provides Go bindings to the OpenAL (and OpenAL Soft)
// native audio API for device enumeration, playback device handles, and
// audio capture.
//
// The package links against the system OpenAL runtime via cgo. All
// constants are transcribed from AL/al.h and AL/alc.h so that the pure
// Go surface (formats, error codes, device list parsing) stays usable
// in tests without touching the native library.
//
// # Capture
//
// Use OpenCapture to obtain a recording device handle:
//
//	dev, err := openal.OpenCapture("", 44100, openal.FormatMono16, 4096)
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	dev.Start()
//	n, _ := dev.Available()
//	buf := make([]byte, n*dev.Format().SampleSize())
//	dev.Read(buf, n)
//
// Read is non-blocking; callers must not request more samples than
// Available reports. A device handle is owned by a single goroutine:
// no internal locking is performed.
//
// # Device enumeration
//
// Device names are enumerated once per process and cached:
//
//	for _, name := range openal.CaptureDeviceNames() {
//	    fmt.Println(name)
//	}
package openal
