// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts float32 PCM between sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation over interleaved float32 samples and keeps one
// frame of history so conversion stays continuous across chunk boundaries.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	out := make([]float32, r.OutputLen(len(in)))
//	n := r.Resample(in, out)
//	play(out[:n])
package resample
