// ABOUTME: Audio decoder package for the streaming pipeline
// ABOUTME: Provides the FrameDecoder interface plus MP3 and raw PCM implementations
// Package decode turns compressed byte streams into interleaved PCM frames.
//
// Decoders implement the FrameDecoder interface and report the stream
// format alongside every frame, so callers never assume a fixed sample
// rate or channel count. Three outcomes matter to the playback loop:
// io.EOF ends the stream, ErrNoData means try again shortly, and any
// other error marks one undecodable frame.
//
// MP3 is the supported broadcast format. The PCM decoder reads raw
// s16le and exists for injected custom sources and test fixtures.
//
// Example:
//
//	dec, err := decode.NewMP3(resp.Body)
//	samples, sampleRate, channels, err := dec.ReadFrame()
package decode
