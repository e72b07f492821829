// ABOUTME: WAV file recorder fed by the manager's sample tap
// ABOUTME: Pins the stream format on the first block and drops mismatches
package tap

import (
	"fmt"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"

	"github.com/foureyes/marconio-go/pkg/audio"
)

const (
	recordBitDepth = 16
	wavFormatPCM   = 1
)

// Recorder writes raw decoded samples to a WAV file. The encoder is created
// lazily on the first block, when the stream format is known; blocks in any
// other format are dropped.
type Recorder struct {
	mu       sync.Mutex
	f        *os.File
	enc      *wav.Encoder
	path     string
	format   audio.Format
	written  int
	dropped  int
	writeErr error
	closed   bool
}

// NewRecorder creates a recorder writing to path. The WAV header stays
// incomplete until Close finalizes it.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording file: %w", err)
	}
	return &Recorder{f: f, path: path}, nil
}

// Tap receives one block of raw samples. It matches the manager tap
// signature, so it can be installed with SetTap(rec.Tap).
func (r *Recorder) Tap(samples []float32, channels, sampleRate int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.writeErr != nil {
		return
	}

	format := audio.Format{SampleRate: sampleRate, Channels: channels}
	if !format.Valid() {
		return
	}

	if r.enc == nil {
		r.format = format
		r.enc = wav.NewEncoder(r.f, sampleRate, recordBitDepth, channels, wavFormatPCM)
		log.Debug().Msgf("Recording %s at %s", r.path, r.format)
	}
	if format != r.format {
		r.dropped++
		return
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: recordBitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range audio.Float32ToInt16(samples) {
		buf.Data[i] = int(s)
	}

	if err := r.enc.Write(buf); err != nil {
		r.writeErr = fmt.Errorf("write recording: %w", err)
		return
	}
	r.written += len(samples)
}

// Path returns the file being written.
func (r *Recorder) Path() string {
	return r.path
}

// Format returns the pinned stream format, or the zero Format before the
// first block arrives.
func (r *Recorder) Format() audio.Format {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.format
}

// Written returns the number of samples recorded so far.
func (r *Recorder) Written() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// Close finalizes the WAV header and closes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.dropped > 0 {
		log.Warn().Msgf("Dropped %d mismatched blocks while recording %s", r.dropped, r.path)
	}

	if r.enc != nil {
		if err := r.enc.Close(); err != nil {
			r.f.Close()
			return fmt.Errorf("finalize recording: %w", err)
		}
	}
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("close recording file: %w", err)
	}
	return r.writeErr
}
