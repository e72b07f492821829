// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample/channel conversion functions
// Package audio provides fundamental audio types and utilities for the
// playback pipeline.
//
// This package defines core types used throughout the marconio library:
//   - Format: Describes a PCM stream shape (sample rate, channel count)
//
// It also provides utilities for moving samples between representations:
//   - int16 ↔ unit-range float32 conversions
//   - mono ↔ stereo channel-layout conversions
//
// Example:
//
//	format := audio.Format{
//	    SampleRate: 44100,
//	    Channels:   2,
//	}
//
//	// Rescale decoded fixed-point samples to floats
//	floats := audio.Int16ToFloat32(samples)
package audio
