// ABOUTME: Second-order IIR filter sections (audio EQ cookbook)
// ABOUTME: Lowpass, highpass, peaking and low-shelf responses with per-channel state
package fx

import "math"

// Biquad is a single second-order IIR section in transposed direct form II.
// Coefficients are normalized (a0 divided out) and fixed at construction;
// the two history registers are kept per channel so interleaved streams can
// be filtered channel-independently.
type Biquad struct {
	b0, b1, b2 float32
	a1, a2     float32
	z1, z2     []float32
}

const (
	minFilterFreq = 20.0
	maxFreqRatio  = 0.45 // of the sample rate, keeps coefficients Nyquist-safe
	minQ          = 0.1
	minSlope      = 0.1
)

// clampFreq keeps the corner frequency inside the stable range
func clampFreq(freq, sampleRate float64) float64 {
	max := sampleRate * maxFreqRatio
	if freq < minFilterFreq {
		return minFilterFreq
	}
	if freq > max {
		return max
	}
	return freq
}

func newBiquad(channels int) *Biquad {
	if channels < 1 {
		channels = 1
	}
	return &Biquad{
		z1: make([]float32, channels),
		z2: make([]float32, channels),
	}
}

// setCoefficients normalizes by a0 and stores the result
func (b *Biquad) setCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	b.b0 = float32(b0 / a0)
	b.b1 = float32(b1 / a0)
	b.b2 = float32(b2 / a0)
	b.a1 = float32(a1 / a0)
	b.a2 = float32(a2 / a0)
}

// NewLowpass creates a lowpass section with the given corner frequency and Q
func NewLowpass(sampleRate, freq, q float64, channels int) *Biquad {
	freq = clampFreq(freq, sampleRate)
	q = math.Max(q, minQ)

	w0 := 2 * math.Pi * freq / sampleRate
	sinw0, cosw0 := math.Sincos(w0)
	alpha := sinw0 / (2 * q)

	b := newBiquad(channels)
	b.setCoefficients(
		(1-cosw0)/2,
		1-cosw0,
		(1-cosw0)/2,
		1+alpha,
		-2*cosw0,
		1-alpha,
	)
	return b
}

// NewHighpass creates a highpass section with the given corner frequency and Q
func NewHighpass(sampleRate, freq, q float64, channels int) *Biquad {
	freq = clampFreq(freq, sampleRate)
	q = math.Max(q, minQ)

	w0 := 2 * math.Pi * freq / sampleRate
	sinw0, cosw0 := math.Sincos(w0)
	alpha := sinw0 / (2 * q)

	b := newBiquad(channels)
	b.setCoefficients(
		(1+cosw0)/2,
		-(1 + cosw0),
		(1+cosw0)/2,
		1+alpha,
		-2*cosw0,
		1-alpha,
	)
	return b
}

// NewPeaking creates a peaking EQ section centered on freq with the given
// bandwidth Q and gain in decibels
func NewPeaking(sampleRate, freq, q, gainDB float64, channels int) *Biquad {
	freq = clampFreq(freq, sampleRate)
	q = math.Max(q, minQ)

	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sampleRate
	sinw0, cosw0 := math.Sincos(w0)
	alpha := sinw0 / (2 * q)

	b := newBiquad(channels)
	b.setCoefficients(
		1+alpha*a,
		-2*cosw0,
		1-alpha*a,
		1+alpha/a,
		-2*cosw0,
		1-alpha/a,
	)
	return b
}

// NewLowShelf creates a low-shelf section with the given corner frequency,
// shelf slope and gain in decibels
func NewLowShelf(sampleRate, freq, slope, gainDB float64, channels int) *Biquad {
	freq = clampFreq(freq, sampleRate)
	slope = math.Max(slope, minSlope)

	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sampleRate
	sinw0, cosw0 := math.Sincos(w0)
	alpha := sinw0 / 2 * math.Sqrt((a+1/a)*(1/slope-1)+2)
	twoSqrtAAlpha := 2 * math.Sqrt(a) * alpha

	b := newBiquad(channels)
	b.setCoefficients(
		a*((a+1)-(a-1)*cosw0+twoSqrtAAlpha),
		2*a*((a-1)-(a+1)*cosw0),
		a*((a+1)-(a-1)*cosw0-twoSqrtAAlpha),
		(a+1)+(a-1)*cosw0+twoSqrtAAlpha,
		-2*((a-1)+(a+1)*cosw0),
		(a+1)+(a-1)*cosw0-twoSqrtAAlpha,
	)
	return b
}

// Process filters one sample on the given channel, mutating only that
// channel's history registers
func (b *Biquad) Process(channel int, x float32) float32 {
	y := b.b0*x + b.z1[channel]
	b.z1[channel] = b.b1*x - b.a1*y + b.z2[channel]
	b.z2[channel] = b.b2*x - b.a2*y
	return y
}
