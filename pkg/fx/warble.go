// ABOUTME: Tape-style pitch wobble via a modulated fractional delay line
// ABOUTME: Two sine LFOs (wow and flutter) sweep the read position each sample
package fx

import "math"

const (
	wowRateHz          = 0.52
	flutterRateHz      = 6.7
	flutterPhaseOffset = 0.7 // radians, decorrelates the two LFOs

	warbleBaseDelayMs   = 3.9
	wowDepthMs          = 0.95
	flutterDepthMs      = 0.22
	warbleHistoryMs     = 8.0
	warbleHistoryGuard  = 4
	warbleMinHistoryLen = 32

	// phase accumulates in seconds; wrapping bounds float error growth and
	// is inaudible because both LFOs are periodic
	phaseWrapSeconds = 60.0
)

// Warble delays its input by a slowly modulated fractional number of
// samples, producing wow (slow) and flutter (fast) pitch variation. All
// channels share one write cursor and LFO phase; history is per channel.
type Warble struct {
	bufs         [][]float32
	writeIndex   int
	phase        float64
	sampleRate   float64
	baseDelay    float64
	wowDepth     float64
	flutterDepth float64
}

// NewWarble sizes the history for ~8ms of delay plus guard samples.
// Sample rate is floored at 8kHz and channels at 1.
func NewWarble(sampleRate float64, channels int) *Warble {
	sr := math.Max(sampleRate, 8000)
	if channels < 1 {
		channels = 1
	}

	length := int(math.Ceil(sr*warbleHistoryMs/1000)) + warbleHistoryGuard
	if length < warbleMinHistoryLen {
		length = warbleMinHistoryLen
	}

	bufs := make([][]float32, channels)
	for ch := range bufs {
		bufs[ch] = make([]float32, length)
	}

	return &Warble{
		bufs:         bufs,
		sampleRate:   sr,
		baseDelay:    sr * warbleBaseDelayMs / 1000,
		wowDepth:     sr * wowDepthMs / 1000,
		flutterDepth: sr * flutterDepthMs / 1000,
	}
}

// Process returns the delayed sample for the given channel and records x
// in the history. The read position is linearly interpolated between its
// two neighboring samples; the write happens after the read so the buffer
// always holds the newest value last. Unknown channels and degenerate
// buffers pass through untouched.
func (w *Warble) Process(channel int, x float32) float32 {
	if channel >= len(w.bufs) {
		return x
	}
	buf := w.bufs[channel]
	length := len(buf)
	if length < 3 {
		return x
	}

	wow := math.Sin(2*math.Pi*wowRateHz*w.phase) * w.wowDepth
	flutter := math.Sin(2*math.Pi*flutterRateHz*w.phase+flutterPhaseOffset) * w.flutterDepth

	// keep the read pointer at least one sample behind the write pointer
	// and clear of the slot about to be overwritten
	delay := w.baseDelay + wow + flutter
	maxDelay := math.Max(float64(length-3), 1)
	if delay < 1 {
		delay = 1
	} else if delay > maxDelay {
		delay = maxDelay
	}

	readPos := float64(w.writeIndex) - delay
	i0 := math.Floor(readPos)
	frac := float32(readPos - i0)

	idx0 := int(i0) % length
	if idx0 < 0 {
		idx0 += length
	}
	idx1 := (idx0 + 1) % length

	out := buf[idx0]*(1-frac) + buf[idx1]*frac
	buf[w.writeIndex] = x
	return out
}

// AdvanceFrame moves the shared write cursor and LFO phase forward by one
// sample period. Call once per interleaved frame, after every channel in
// that frame has been processed.
func (w *Warble) AdvanceFrame() {
	w.writeIndex = (w.writeIndex + 1) % len(w.bufs[0])
	w.phase += 1 / w.sampleRate
	if w.phase > phaseWrapSeconds {
		w.phase = 0
	}
}
