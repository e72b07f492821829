// ABOUTME: Audio effects package implementing the preset DSP chain
// ABOUTME: Provides biquad filters, tape warble, saturation and compression
// Package fx implements the real-time effects chain applied to decoded
// audio before playback.
//
// A Processor is configured from a named Preset plus the stream's sample
// rate and channel count, and transforms interleaved float32 buffers in
// place. The chain runs, per sample: biquad filter stages (high-pass,
// low-shelf, peaking, low-pass as the preset dictates), a modulated
// fractional-delay warble, tanh soft saturation, memoryless compression,
// makeup gain and a hard clamp to [-1, 1].
//
// The Clean preset bypasses the chain entirely and preserves buffers
// bit-for-bit.
//
// Example:
//
//	proc := fx.NewProcessor()
//	proc.Configure(44100, 2, fx.PresetCassette)
//	proc.ProcessBuffer(samples)
package fx
