// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Sink interface with device and in-memory implementations
// Package output provides audio playback sinks.
//
// Oto plays through the default audio device using a single shared device
// context per process. Memory records samples in-process for tests and
// examples.
//
// Example:
//
//	sink := output.NewOto()
//	format, err := sink.Open(audio.Format{SampleRate: 44100, Channels: 2})
//	err = sink.Enqueue(samples)
package output
