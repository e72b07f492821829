// ABOUTME: Effects processor assembling the per-preset DSP chain
// ABOUTME: Rebuilds filter stages on configuration change and processes buffers in place
package fx

import "math"

// StageKind tags a filter stage in the active chain
type StageKind int

const (
	StageHighpass StageKind = iota
	StageLowShelf
	StagePeaking
	StageLowpass
)

// String returns a short name for logs
func (k StageKind) String() string {
	switch k {
	case StageHighpass:
		return "highpass"
	case StageLowShelf:
		return "lowshelf"
	case StagePeaking:
		return "peaking"
	case StageLowpass:
		return "lowpass"
	default:
		return "unknown"
	}
}

type filterStage struct {
	kind StageKind
	bq   *Biquad
}

// Processor applies a preset effect chain to interleaved float32 buffers.
// The chain (filter stages, warble, dynamics) is a pure function of
// (sampleRate, channels, preset) and is rebuilt, never mutated, when any of
// the three changes. A Processor is not safe for concurrent use; each
// playback worker owns its own.
type Processor struct {
	sampleRate int
	channels   int
	preset     Preset
	configured bool

	stages    []filterStage
	warble    *Warble
	warbleMix float32

	drive         float32
	saturationMix float32
	compThreshold float32
	compRatio     float32
	makeup        float32
}

// NewProcessor returns a processor configured for the Clean preset at
// 44.1kHz stereo
func NewProcessor() *Processor {
	p := &Processor{}
	p.Configure(44100, 2, PresetClean)
	return p
}

// Configure rebuilds the chain for the given stream shape and preset.
// Idempotent: identical inputs leave the chain and its filter history
// untouched, so calling it once per decoded frame is free on a stable
// stream. Channel count is floored at 1 and sample rate at 8kHz.
func (p *Processor) Configure(sampleRate, channels int, preset Preset) {
	if sampleRate < 8000 {
		sampleRate = 8000
	}
	if channels < 1 {
		channels = 1
	}

	if p.configured && p.sampleRate == sampleRate && p.channels == channels && p.preset == preset {
		return
	}

	p.sampleRate = sampleRate
	p.channels = channels
	p.preset = preset
	p.configured = true
	p.rebuild()
}

// rebuild derives the stage list and dynamics parameters from the active
// preset. Fresh filter state means fresh (silent) history; the short
// transient on a preset switch is the accepted cost.
func (p *Processor) rebuild() {
	sr := float64(p.sampleRate)
	ch := p.channels

	p.stages = nil
	p.warble = nil
	p.warbleMix = 0
	p.drive = 1
	p.saturationMix = 0
	p.compThreshold = 1
	p.compRatio = 1
	p.makeup = 1

	switch p.preset {
	case PresetCassette:
		p.stages = []filterStage{
			{StageHighpass, NewHighpass(sr, 105, 0.75, ch)},
			{StagePeaking, NewPeaking(sr, 2700, 1.35, -3.1, ch)},
			{StageLowpass, NewLowpass(sr, 6400, 0.82, ch)},
		}
		p.warble = NewWarble(sr, ch)
		p.warbleMix = 0.62
		p.drive = 1.42
		p.saturationMix = 0.44
		p.compThreshold = 0.67
		p.compRatio = 2.9
		p.makeup = 1.08

	case PresetBass:
		p.stages = []filterStage{
			{StageHighpass, NewHighpass(sr, 26, 0.707, ch)},
			{StageLowShelf, NewLowShelf(sr, 92, 0.9, 7.4, ch)},
			{StagePeaking, NewPeaking(sr, 180, 1.0, 4.0, ch)},
			{StageLowpass, NewLowpass(sr, 9300, 0.8, ch)},
		}
		p.drive = 1.36
		p.saturationMix = 0.36
		p.compThreshold = 0.69
		p.compRatio = 2.7
		p.makeup = 1.1

	case PresetRadio:
		p.stages = []filterStage{
			{StageHighpass, NewHighpass(sr, 360, 0.85, ch)},
			{StagePeaking, NewPeaking(sr, 1750, 1.65, 6.8, ch)},
			{StageLowpass, NewLowpass(sr, 3300, 0.85, ch)},
		}
		p.drive = 1.8
		p.saturationMix = 0.58
		p.compThreshold = 0.6
		p.compRatio = 4.4
		p.makeup = 1.12
	}

	// floors shared by every preset; keep the math safe even if a preset
	// table entry goes pathological
	p.drive = float32(math.Max(float64(p.drive), 0.001))
	p.compThreshold = float32(math.Max(float64(p.compThreshold), 0.0001))
	p.compRatio = float32(math.Max(float64(p.compRatio), 1.0))
}

// ProcessBuffer transforms interleaved samples in place. Clean is a strict
// no-op so untouched streams stay bit-identical. For other presets each
// sample runs the filter stages in order, then warble, saturation,
// compression, makeup gain and a hard clamp to [-1, 1].
func (p *Processor) ProcessBuffer(samples []float32) {
	if p.preset == PresetClean {
		return
	}

	channels := p.channels
	for base := 0; base < len(samples); base += channels {
		end := base + channels
		if end > len(samples) {
			end = len(samples)
		}

		for i := base; i < end; i++ {
			ch := i - base
			v := samples[i]

			for _, st := range p.stages {
				v = st.bq.Process(ch, v)
			}

			if p.warble != nil {
				w := p.warble.Process(ch, v)
				v += (w - v) * p.warbleMix
			}

			sat := float32(math.Tanh(float64(v*p.drive))) / p.drive
			v += (sat - v) * p.saturationMix

			v = compress(v, p.compThreshold, p.compRatio)
			v *= p.makeup

			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			samples[i] = v
		}

		if p.warble != nil {
			p.warble.AdvanceFrame()
		}
	}
}

// compress applies hard-knee, sign-symmetric, memoryless limiting: inside
// the threshold samples pass unchanged, above it the overshoot is divided
// by the ratio. No attack or release envelopes.
func compress(x, threshold, ratio float32) float32 {
	mag := x
	if mag < 0 {
		mag = -mag
	}
	if mag <= threshold {
		return x
	}

	compressed := threshold + (mag-threshold)/ratio
	if x < 0 {
		return -compressed
	}
	return compressed
}

// Stages returns the kinds of the active filter stages in processing order
func (p *Processor) Stages() []StageKind {
	kinds := make([]StageKind, len(p.stages))
	for i, st := range p.stages {
		kinds[i] = st.kind
	}
	return kinds
}

// Preset returns the active preset
func (p *Processor) Preset() Preset {
	return p.preset
}

// SampleRate returns the configured sample rate
func (p *Processor) SampleRate() int {
	return p.sampleRate
}

// Channels returns the configured channel count
func (p *Processor) Channels() int {
	return p.channels
}
