// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and sample conversion helpers
package audio

import "fmt"

// Unit-range scaling factor for 16-bit samples
const maxInt16 = 32767.0

// Format describes the shape of a PCM stream
type Format struct {
	SampleRate int
	Channels   int
}

// String formats as "44100Hz 2ch"
func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch", f.SampleRate, f.Channels)
}

// Valid reports whether the format describes a playable stream
func (f Format) Valid() bool {
	return f.SampleRate > 0 && f.Channels > 0
}

// Int16ToFloat32 rescales fixed-point samples to unit-range floats.
// Allocates a fresh buffer so the caller may hand it off without copying.
func Int16ToFloat32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / maxInt16
	}
	return out
}

// Float32ToInt16 rescales unit-range floats back to fixed point,
// clamping anything outside [-1, 1]
func Float32ToInt16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		out[i] = int16(s * maxInt16)
	}
	return out
}

// ConvertChannels rewrites an interleaved buffer from one channel layout to
// another. Mono to stereo duplicates, stereo to mono averages; any other
// combination is unsupported.
func ConvertChannels(samples []float32, from, to int) ([]float32, error) {
	if from == to {
		return samples, nil
	}

	switch {
	case from == 1 && to == 2:
		out := make([]float32, len(samples)*2)
		for i, s := range samples {
			out[i*2] = s
			out[i*2+1] = s
		}
		return out, nil

	case from == 2 && to == 1:
		frames := len(samples) / 2
		out := make([]float32, frames)
		for i := 0; i < frames; i++ {
			out[i] = (samples[i*2] + samples[i*2+1]) / 2
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported channel conversion: %d -> %d", from, to)
	}
}
