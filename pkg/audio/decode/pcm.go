// ABOUTME: Raw PCM stream decoder
// ABOUTME: Reads s16le bytes at a caller-declared format for custom sources
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/foureyes/marconio-go/pkg/audio"
)

const pcmChunkBytes = 8192

// PCM reads raw signed 16-bit little-endian samples. The stream carries no
// header, so the caller declares the format up front and every frame
// reports it unchanged. Partial reads are carried over so sample and
// channel alignment survive arbitrary network chunking.
type PCM struct {
	r      io.Reader
	format audio.Format
	buf    []byte
	rem    int // undecoded tail bytes held from the previous read
}

// NewPCM creates a raw PCM decoder for the declared format.
func NewPCM(r io.Reader, format audio.Format) (*PCM, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("invalid pcm format: %s", format)
	}

	return &PCM{
		r:      r,
		format: format,
		buf:    make([]byte, pcmChunkBytes),
	}, nil
}

// ReadFrame returns the next whole frames available from the stream.
func (d *PCM) ReadFrame() ([]int16, int, int, error) {
	n, err := d.r.Read(d.buf[d.rem:])
	total := d.rem + n

	frameBytes := 2 * d.format.Channels
	usable := total - total%frameBytes

	if usable == 0 {
		d.rem = total
		switch {
		case errors.Is(err, io.EOF):
			// A sub-frame tail means the stream was truncated; drop it.
			return nil, 0, 0, io.EOF
		case err != nil:
			return nil, 0, 0, fmt.Errorf("read pcm stream: %w", err)
		default:
			return nil, 0, 0, ErrNoData
		}
	}

	samples := make([]int16, usable/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(d.buf[i*2:]))
	}

	d.rem = copy(d.buf, d.buf[usable:total])
	return samples, d.format.SampleRate, d.format.Channels, nil
}
