// ABOUTME: Tests for the warble delay line
// ABOUTME: Verifies constant-delay behavior, clamping, passthrough and phase wrap
package fx

import (
	"math"
	"testing"
)

// TestZeroDepthIsConstantDelay forces both LFO depths to zero, turning the
// warble into a fixed fractional delay of exactly baseDelay samples. The
// impulse response must be the two-tap linear interpolation split around
// that delay and nothing else.
func TestZeroDepthIsConstantDelay(t *testing.T) {
	w := NewWarble(44100, 1)
	w.wowDepth = 0
	w.flutterDepth = 0

	// 44100 * 3.9 / 1000 = 171.99 samples
	delay := w.baseDelay
	lo := int(math.Floor(delay))
	frac := delay - float64(lo)

	const n = 250
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var x float32
		if i == 0 {
			x = 1.0
		}
		out[i] = w.Process(0, x)
		w.AdvanceFrame()
	}

	// A delay of lo+frac samples splits the impulse between taps lo and
	// lo+1, weighted toward the fractional side.
	for i, v := range out {
		var want float64
		switch i {
		case lo:
			want = 1 - frac
		case lo + 1:
			want = frac
		default:
			want = 0
		}
		if math.Abs(float64(v)-want) > 1e-4 {
			t.Errorf("sample %d: expected %.5f, got %v", i, want, v)
		}
	}
}

func TestProcessUnknownChannelPassesThrough(t *testing.T) {
	w := NewWarble(44100, 1)

	if got := w.Process(3, 0.7); got != 0.7 {
		t.Errorf("unknown channel should pass through, got %v", got)
	}

	// Passthrough must not touch the history either.
	for _, v := range w.bufs[0] {
		if v != 0 {
			t.Fatal("history written for out-of-range channel")
		}
	}
}

// TestDelayClampKeepsReadsInBounds blows the modulation depth far past the
// buffer size; the clamp must keep every read inside the history so the
// output can never exceed what was written.
func TestDelayClampKeepsReadsInBounds(t *testing.T) {
	w := NewWarble(44100, 1)
	w.wowDepth = 1e6
	w.flutterDepth = 1e6

	for i := 0; i < 2000; i++ {
		out := w.Process(0, 0.5)
		if out < -0.5001 || out > 0.5001 {
			t.Fatalf("sample %d escaped input range: %v", i, out)
		}
		w.AdvanceFrame()
	}
}

func TestPhaseWrap(t *testing.T) {
	w := NewWarble(8000, 1)
	w.phase = 60.0001

	w.AdvanceFrame()
	if w.phase != 0 {
		t.Errorf("phase should wrap to 0 past 60s, got %v", w.phase)
	}

	w.AdvanceFrame()
	if w.phase != 1.0/8000 {
		t.Errorf("phase should accumulate from 0 after wrap, got %v", w.phase)
	}
}

func TestConstructionFloors(t *testing.T) {
	w := NewWarble(0, 0)

	if len(w.bufs) != 1 {
		t.Errorf("channels should floor at 1, got %d", len(w.bufs))
	}
	if w.sampleRate != 8000 {
		t.Errorf("sample rate should floor at 8000, got %v", w.sampleRate)
	}

	// ceil(8000 * 8 / 1000) + 4 guard samples
	if len(w.bufs[0]) != 68 {
		t.Errorf("expected 68-sample history at 8kHz, got %d", len(w.bufs[0]))
	}
}

func TestHistorySizedForPeakDelay(t *testing.T) {
	// Worst case modulated delay: base + wow + flutter depths. The history
	// must hold it with the interpolation guard to spare.
	for _, sr := range []float64{8000, 22050, 44100, 48000, 96000} {
		w := NewWarble(sr, 1)
		peak := w.baseDelay + w.wowDepth + w.flutterDepth
		if float64(len(w.bufs[0])-3) < peak {
			t.Errorf("sr=%v: history %d too small for peak delay %v", sr, len(w.bufs[0]), peak)
		}
	}
}
