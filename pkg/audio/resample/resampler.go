// ABOUTME: Linear resampler for converting audio sample rates
// ABOUTME: Interpolates interleaved float32 samples with cross-chunk continuity
package resample

// Resampler converts interleaved float32 samples between rates using
// linear interpolation. The final frame of every chunk is carried over
// so interpolation stays continuous across chunk boundaries.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	step       float64 // input frames consumed per output frame
	position   float64
	last       []float32 // final frame of the previous chunk
	primed     bool
}

// New creates a resampler for interleaved audio with the given channel count.
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		step:       float64(inputRate) / float64(outputRate),
		last:       make([]float32, channels),
	}
}

// Resample fills output with input converted to the output rate and returns
// the number of samples written. Size output with OutputLen so the chunk is
// consumed fully.
func (r *Resampler) Resample(input, output []float32) int {
	inFrames := len(input) / r.channels
	if inFrames == 0 {
		return 0
	}
	outFrames := len(output) / r.channels

	// The previous chunk's final frame acts as frame zero of a virtual
	// stream so reads can straddle the chunk boundary.
	virtual := inFrames
	if r.primed {
		virtual++
	}

	outIdx := 0
	for outIdx < outFrames {
		v := int(r.position)
		if v >= virtual-1 {
			break
		}

		frac := float32(r.position - float64(v))
		for ch := 0; ch < r.channels; ch++ {
			s0 := r.frameAt(input, v, ch)
			s1 := r.frameAt(input, v+1, ch)
			output[outIdx*r.channels+ch] = s0 + (s1-s0)*frac
		}

		outIdx++
		r.position += r.step
	}

	r.position -= float64(virtual - 1)
	if r.position < 0 {
		r.position = 0
	}
	copy(r.last, input[(inFrames-1)*r.channels:])
	r.primed = true

	return outIdx * r.channels
}

func (r *Resampler) frameAt(input []float32, v, ch int) float32 {
	if r.primed {
		if v == 0 {
			return r.last[ch]
		}
		v--
	}
	return input[v*r.channels+ch]
}

// OutputLen returns a buffer length in samples guaranteed to hold everything
// Resample can produce from inputLen samples.
func (r *Resampler) OutputLen(inputLen int) int {
	frames := inputLen / r.channels
	outFrames := int(float64(frames+1)/r.step) + 2
	return outFrames * r.channels
}

// Reset clears carried state so the next chunk starts a fresh stream.
func (r *Resampler) Reset() {
	r.position = 0
	r.primed = false
	for i := range r.last {
		r.last[i] = 0
	}
}
