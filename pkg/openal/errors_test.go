package openal

import "testing"

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrNone, "ALC_NO_ERROR"},
		{ErrInvalidDevice, "ALC_INVALID_DEVICE"},
		{ErrInvalidContext, "ALC_INVALID_CONTEXT"},
		{ErrInvalidEnum, "ALC_INVALID_ENUM"},
		{ErrInvalidValue, "ALC_INVALID_VALUE"},
		{ErrOutOfMemory, "ALC_OUT_OF_MEMORY"},
		{ErrorCode(0xFFFF), "ALC_ERROR(0xFFFF)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.code.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDeviceError(t *testing.T) {
	if err := deviceError(ErrNone, "any"); err != nil {
		t.Errorf("deviceError(ErrNone) = %v, want nil", err)
	}

	err := deviceError(ErrOutOfMemory, "OpenAL Soft")
	devErr, ok := err.(*DeviceError)
	if !ok {
		t.Fatalf("deviceError returned %T, want *DeviceError", err)
	}
	if devErr.Code != ErrOutOfMemory {
		t.Errorf("Code = %v, want ErrOutOfMemory", devErr.Code)
	}
	expected := `openal: ALC_OUT_OF_MEMORY (device "OpenAL Soft")`
	if devErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", devErr.Error(), expected)
	}

	bare := deviceError(ErrInvalidValue, "")
	if bare.Error() != "openal: ALC_INVALID_VALUE" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "openal: ALC_INVALID_VALUE")
	}
}

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected []string
	}{
		{name: "nil", data: nil, expected: nil},
		{name: "single terminator", data: []byte{0}, expected: nil},
		{name: "one device", data: []byte("OpenAL Soft\x00\x00"), expected: []string{"OpenAL Soft"}},
		{
			name:     "two devices",
			data:     []byte("Built-in Microphone\x00USB Audio\x00\x00"),
			expected: []string{"Built-in Microphone", "USB Audio"},
		},
		{name: "missing final terminator", data: []byte("dev\x00"), expected: []string{"dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseStringList(tt.data)
			if len(got) != len(tt.expected) {
				t.Fatalf("parseStringList = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("parseStringList[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCapabilityRegistry(t *testing.T) {
	calls := 0
	RegisterCapability("TEST_fake_capability", func() bool {
		calls++
		return true
	})

	if !HasCapability("TEST_fake_capability") {
		t.Error("expected registered capability to be present")
	}
	// Second query must come from the cache.
	HasCapability("TEST_fake_capability")
	if calls != 1 {
		t.Errorf("probe ran %d times, want 1", calls)
	}

	if HasCapability("TEST_never_registered") {
		t.Error("unregistered capability reported present")
	}

	// Re-registering discards the cached answer.
	RegisterCapability("TEST_fake_capability", func() bool { return false })
	if HasCapability("TEST_fake_capability") {
		t.Error("re-registered probe result not honored")
	}
}
