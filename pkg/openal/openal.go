package openal

/*
#cgo pkg-config: openal
#include <AL/al.h>
#include <AL/alc.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// cString converts a Go string into an ALCchar pointer. The caller
// must free the result. An empty string maps to NULL, which the ALC
// entry points interpret as "use the default device".
func cString(s string) *C.ALCchar {
	if s == "" {
		return nil
	}
	return (*C.ALCchar)(unsafe.Pointer(C.CString(s)))
}

func freeCString(p *C.ALCchar) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

// alcString queries a string token from the native layer.
func alcString(dev *C.ALCdevice, param C.ALCenum) string {
	p := C.alcGetString(dev, param)
	if p == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(p)))
}

// alcStringList queries a NUL-separated, double-NUL-terminated string
// list token (the ALC_ENUMERATION_EXT device list encoding).
func alcStringList(dev *C.ALCdevice, param C.ALCenum) []string {
	p := C.alcGetString(dev, param)
	if p == nil {
		return nil
	}

	// Scan for the double-NUL terminator, then parse the copied bytes.
	base := unsafe.Pointer(p)
	n := 0
	for {
		b0 := *(*byte)(unsafe.Pointer(uintptr(base) + uintptr(n)))
		b1 := *(*byte)(unsafe.Pointer(uintptr(base) + uintptr(n) + 1))
		if b0 == 0 && b1 == 0 {
			break
		}
		n++
	}

	return parseStringList(C.GoBytes(base, C.int(n+1)))
}

// alcLastError drains the error state of a device handle. A nil handle
// reads the process-global error state, which is all that is readable
// while no device is open.
func alcLastError(dev *C.ALCdevice) ErrorCode {
	return ErrorCode(C.alcGetError(dev))
}

// alcHasExtension probes an ALC context extension by name.
func alcHasExtension(name string) bool {
	cName := cString(name)
	defer freeCString(cName)
	return C.alcIsExtensionPresent(nil, cName) == C.ALC_TRUE
}

// alHasExtension probes an AL extension by name. Without a current
// context the native layer reports false, which is the correct answer
// for a process that never created one.
func alHasExtension(name string) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return C.alIsExtensionPresent((*C.ALchar)(unsafe.Pointer(cName))) == C.AL_TRUE
}

// parseStringList splits a NUL-separated byte sequence into strings.
// An empty element terminates the list.
func parseStringList(data []byte) []string {
	var out []string
	start := 0
	for i, b := range data {
		if b != 0 {
			continue
		}
		if i == start {
			break // empty element: end of list
		}
		out = append(out, string(data[start:i]))
		start = i + 1
	}
	return out
}
