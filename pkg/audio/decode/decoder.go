// ABOUTME: FrameDecoder interface definition
// ABOUTME: Common contract for all audio stream decoders
package decode

import "errors"

// ErrNoData marks a transient decode condition: the decoder could not
// produce a frame yet but the stream is still live. Callers should wait
// briefly and retry rather than treat it as a failure.
var ErrNoData = errors.New("decoder needs more data")

// FrameDecoder pulls interleaved PCM frames from an audio stream.
type FrameDecoder interface {
	// ReadFrame returns the next block of interleaved 16-bit samples and
	// the format they were decoded at. io.EOF means the stream ended
	// cleanly, ErrNoData means retry shortly, and any other error marks a
	// single undecodable frame.
	ReadFrame() (samples []int16, sampleRate, channels int, err error)
}
