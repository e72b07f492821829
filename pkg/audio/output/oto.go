// ABOUTME: Oto-based audio sink implementation
// ABOUTME: Feeds a pull-model device player from a queue of processed blocks
package output

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"

	"github.com/foureyes/marconio-go/pkg/audio"
)

const deviceBufferDuration = 100 * time.Millisecond

// The process gets exactly one device context. oto cannot reinitialize, so
// the first session's format pins it and later sessions convert to match.
var (
	deviceMu     sync.Mutex
	deviceCtx    *oto.Context
	deviceFormat audio.Format
)

// Oto plays samples on the default audio device. The device player pulls
// s16le bytes from an internal queue; when the queue runs dry it reads
// silence so the stream keeps its timing.
type Oto struct {
	mu      sync.Mutex
	queue   [][]byte
	pos     int // consumed bytes of the head block
	stopped bool
	ready   bool
	player  *oto.Player
	format  audio.Format
}

// NewOto creates an unopened device sink.
func NewOto() *Oto {
	return &Oto{}
}

// Open attaches the sink to the shared device context, creating it on first
// use, and returns the format the device actually runs at.
func (o *Oto) Open(format audio.Format) (audio.Format, error) {
	if !format.Valid() {
		return audio.Format{}, fmt.Errorf("invalid output format: %s", format)
	}

	deviceMu.Lock()
	defer deviceMu.Unlock()

	if deviceCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   deviceBufferDuration,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return audio.Format{}, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan

		deviceCtx = ctx
		deviceFormat = format
		log.Debug().Msgf("Audio device initialized: %s", format)
	} else if deviceFormat != format {
		log.Warn().Msgf("Audio device pinned at %s, requested %s; continuing with device format", deviceFormat, format)
	}

	player := deviceCtx.NewPlayer(o)

	o.mu.Lock()
	o.format = deviceFormat
	o.player = player
	o.ready = true
	o.mu.Unlock()

	player.Play()

	return deviceFormat, nil
}

// Enqueue converts samples to the device byte format and queues them.
func (o *Oto) Enqueue(samples []float32) error {
	block := make([]byte, len(samples)*2)
	for i, s := range audio.Float32ToInt16(samples) {
		binary.LittleEndian.PutUint16(block[i*2:], uint16(s))
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.stopped:
		return fmt.Errorf("output stopped")
	case !o.ready:
		return fmt.Errorf("output not initialized")
	}
	o.queue = append(o.queue, block)
	return nil
}

// Queued reports the number of blocks the device has not consumed yet.
func (o *Oto) Queued() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

// Read feeds the device player. Pads with silence when the queue is empty.
func (o *Oto) Read(p []byte) (int, error) {
	o.mu.Lock()
	n := 0
	for n < len(p) && len(o.queue) > 0 {
		copied := copy(p[n:], o.queue[0][o.pos:])
		n += copied
		o.pos += copied
		if o.pos == len(o.queue[0]) {
			o.queue = o.queue[1:]
			o.pos = 0
		}
	}
	o.mu.Unlock()

	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// Stop discards queued audio and closes the device player. The shared
// context stays alive for the next session.
func (o *Oto) Stop() error {
	o.mu.Lock()
	o.queue = nil
	o.pos = 0
	o.stopped = true
	o.ready = false
	player := o.player
	o.player = nil
	o.mu.Unlock()

	if player != nil {
		if err := player.Close(); err != nil {
			return fmt.Errorf("failed to close device player: %w", err)
		}
	}
	return nil
}
