package openal

import "fmt"

// Format identifies a sample format for capture and buffer data.
// Values are transcribed from AL/al.h and the extension headers.
type Format int32

// Core PCM formats from AL/al.h.
const (
	FormatMono8    Format = 0x1100
	FormatMono16   Format = 0x1101
	FormatStereo8  Format = 0x1102
	FormatStereo16 Format = 0x1103
)

// Extension formats. Availability depends on the runtime; probe the
// matching capability (AL_EXT_FLOAT32, AL_EXT_MULAW, ...) before use.
const (
	FormatMonoIMA4      Format = 0x1300
	FormatStereoIMA4    Format = 0x1301
	FormatMonoFloat32   Format = 0x10010
	FormatStereoFloat32 Format = 0x10011
	FormatMonoDouble    Format = 0x10012
	FormatStereoDouble  Format = 0x10013
	FormatMonoMuLaw     Format = 0x10014
	FormatStereoMuLaw   Format = 0x10015
	FormatMonoALaw      Format = 0x10016
	FormatStereoALaw    Format = 0x10017
	FormatQuad16        Format = 0x1205
	Format51Chn16       Format = 0x120B
	Format61Chn16       Format = 0x120E
	Format71Chn16       Format = 0x1211
)

// SampleSize returns the size in bytes of one sample in this format.
// Compressed and unrecognized formats report 1 byte, so capacity checks
// built on this value under-detect oversized reads for those formats.
func (f Format) SampleSize() int {
	switch f {
	case FormatMono8:
		return 1
	case FormatMono16:
		return 2
	case FormatStereo8:
		return 2
	case FormatStereo16:
		return 4
	default:
		return 1
	}
}

// Channels returns the channel count for the core PCM formats and 0
// for everything else.
func (f Format) Channels() int {
	switch f {
	case FormatMono8, FormatMono16:
		return 1
	case FormatStereo8, FormatStereo16:
		return 2
	default:
		return 0
	}
}

// BitsPerSample returns the per-channel bit depth for the core PCM
// formats and 0 for everything else.
func (f Format) BitsPerSample() int {
	switch f {
	case FormatMono8, FormatStereo8:
		return 8
	case FormatMono16, FormatStereo16:
		return 16
	default:
		return 0
	}
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatMono8:
		return "mono8"
	case FormatMono16:
		return "mono16"
	case FormatStereo8:
		return "stereo8"
	case FormatStereo16:
		return "stereo16"
	case FormatMonoIMA4:
		return "mono-ima4"
	case FormatStereoIMA4:
		return "stereo-ima4"
	case FormatMonoFloat32:
		return "mono-float32"
	case FormatStereoFloat32:
		return "stereo-float32"
	case FormatMonoDouble:
		return "mono-double"
	case FormatStereoDouble:
		return "stereo-double"
	case FormatMonoMuLaw:
		return "mono-mulaw"
	case FormatStereoMuLaw:
		return "stereo-mulaw"
	case FormatMonoALaw:
		return "mono-alaw"
	case FormatStereoALaw:
		return "stereo-alaw"
	case FormatQuad16:
		return "quad16"
	case Format51Chn16:
		return "5.1chn16"
	case Format61Chn16:
		return "6.1chn16"
	case Format71Chn16:
		return "7.1chn16"
	default:
		return fmt.Sprintf("unknown(0x%X)", int32(f))
	}
}

// ParseFormat converts a format name as used in config files and the
// API ("mono16", "stereo8", ...) into a Format value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "mono8":
		return FormatMono8, nil
	case "mono16":
		return FormatMono16, nil
	case "stereo8":
		return FormatStereo8, nil
	case "stereo16":
		return FormatStereo16, nil
	default:
		return 0, fmt.Errorf("%w: unknown sample format %q", ErrInvalidArgument, s)
	}
}

// CommonSampleRates lists rates worth probing when querying what a
// capture device supports.
var CommonSampleRates = []int{
	8000, 11025, 16000, 22050, 32000, 44100, 48000, 88200, 96000, 192000,
}
