// ABOUTME: Audio sink interface definition
// ABOUTME: Common interface for audio playback destinations
package output

import "github.com/foureyes/marconio-go/pkg/audio"

// Sink is a playback destination for interleaved float32 samples.
type Sink interface {
	// Open prepares the sink and returns the format actually in effect.
	// A device pinned by an earlier session may keep its own format, in
	// which case the caller converts before enqueueing.
	Open(format audio.Format) (audio.Format, error)

	// Enqueue hands one block of samples to the sink without blocking on
	// the device. The sink takes ownership of the slice.
	Enqueue(samples []float32) error

	// Queued reports how many enqueued blocks have not yet been consumed.
	Queued() int

	// Stop halts playback and discards anything still queued.
	Stop() error
}
