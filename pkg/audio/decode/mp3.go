// ABOUTME: MP3 streaming decoder
// ABOUTME: Wraps hajimehoshi/go-mp3 behind the FrameDecoder interface
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

const (
	mp3ChunkBytes = 8192
	// go-mp3 always renders 16-bit little-endian stereo
	mp3Channels = 2
)

// MP3 decodes an MP3 byte stream into PCM frames.
type MP3 struct {
	dec *mp3.Decoder
	buf []byte
}

// NewMP3 opens a decoder on the stream. The reader is consumed as frames
// are pulled; construction fails if no valid MP3 header can be found.
func NewMP3(r io.Reader) (*MP3, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3 stream: %w", err)
	}

	return &MP3{
		dec: dec,
		buf: make([]byte, mp3ChunkBytes),
	}, nil
}

// ReadFrame decodes the next chunk of samples.
func (d *MP3) ReadFrame() ([]int16, int, int, error) {
	n, err := d.dec.Read(d.buf)
	if n == 0 {
		switch {
		case errors.Is(err, io.EOF):
			return nil, 0, 0, io.EOF
		case err == nil:
			return nil, 0, 0, ErrNoData
		default:
			return nil, 0, 0, fmt.Errorf("decode mp3 frame: %w", err)
		}
	}

	samples := make([]int16, n/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(d.buf[i*2:]))
	}

	return samples, d.dec.SampleRate(), mp3Channels, nil
}
