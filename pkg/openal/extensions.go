package openal

import (
	"sort"
	"sync"
)

// The extension registry answers "is this optional native capability
// present" by name. Extensions register a probe function; the probe
// runs at most once and its answer is cached. This replaces runtime
// type inspection with an explicit capability table.

type probeFunc func() bool

var (
	registryMu sync.Mutex
	registry   = make(map[string]probeFunc)
	probed     = make(map[string]bool)
)

// RegisterCapability adds a named capability probe. Registering a name
// twice replaces the probe and discards any cached answer.
func RegisterCapability(name string, probe func() bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = probe
	delete(probed, name)
}

// HasCapability reports whether a registered capability is present,
// running its probe on first use. Unregistered names report false.
func HasCapability(name string) bool {
	registryMu.Lock()
	defer registryMu.Unlock()

	if present, ok := probed[name]; ok {
		return present
	}
	probe, ok := registry[name]
	if !ok {
		return false
	}
	present := probe()
	probed[name] = present
	return present
}

// CapabilityNames returns all registered capability names, sorted.
func CapabilityNames() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	for _, name := range []string{
		"ALC_ENUMERATION_EXT",
		"ALC_ENUMERATE_ALL_EXT",
		"ALC_EXT_CAPTURE",
		"ALC_EXT_EFX",
		"ALC_EXT_thread_local_context",
	} {
		RegisterCapability(name, func(n string) probeFunc {
			return func() bool { return alcHasExtension(n) }
		}(name))
	}

	for _, name := range []string{
		"AL_EXT_FLOAT32",
		"AL_EXT_DOUBLE",
		"AL_EXT_MULAW",
		"AL_EXT_ALAW",
		"AL_EXT_IMA4",
		"AL_EXT_MCFORMATS",
		"AL_SOFT_loop_points",
	} {
		RegisterCapability(name, func(n string) probeFunc {
			return func() bool { return alHasExtension(n) }
		}(name))
	}
}
